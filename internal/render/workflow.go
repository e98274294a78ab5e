package render

import "github.com/jorge-barreto/incidentdesk/internal/workflow"

type CategoryOption struct {
	Key      string `json:"key"`
	Label    string `json:"label"`
	Selected bool   `json:"selected"`
}

// WorkflowView is the workflow page: the rendered controller state plus the
// scenario picker.
type WorkflowView struct {
	workflow.ViewModel
	Categories []CategoryOption `json:"categories"`
}

// CategoryOptions lists the scenario picker entries, "random" first.
func CategoryOptions(selected string) []CategoryOption {
	opts := []CategoryOption{{Key: workflow.CategoryRandom, Label: "Random", Selected: selected == workflow.CategoryRandom}}
	for _, key := range workflow.Categories() {
		opts = append(opts, CategoryOption{Key: key, Label: workflow.CategoryLabel(key), Selected: key == selected})
	}
	return opts
}

func WorkflowPage(vm workflow.ViewModel) WorkflowView {
	return WorkflowView{ViewModel: vm, Categories: CategoryOptions(vm.Category)}
}
