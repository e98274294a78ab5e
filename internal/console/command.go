package console

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/jorge-barreto/incidentdesk/internal/workflow"
)

// ErrUnknownCommand is returned by Parse for input it does not recognize.
var ErrUnknownCommand = errors.New("unknown command")

type Action string

const (
	ActRun      Action = "run"
	ActNext     Action = "next"
	ActReset    Action = "reset"
	ActStep     Action = "step"
	ActScenario Action = "scenario"
	ActShow     Action = "show"
	ActHelp     Action = "help"
	ActQuit     Action = "quit"
)

// Command is one parsed input line.
type Command struct {
	Action Action
	// Step is the zero-based target of ActStep.
	Step int
	// Category is the target of ActScenario.
	Category string
}

// Usage lists the accepted commands.
const Usage = "commands: run | next | reset | step N | scenario KEY | show | help | quit"

// Parse turns a line into a Command. A bare number is shorthand for
// "step N"; steps are numbered from 1.
func Parse(line string) (Command, error) {
	fields := strings.Fields(strings.ToLower(line))
	if len(fields) == 0 {
		return Command{}, ErrUnknownCommand
	}

	if n, err := strconv.Atoi(fields[0]); err == nil && len(fields) == 1 {
		return stepCommand(n)
	}

	switch fields[0] {
	case "run", "r":
		return Command{Action: ActRun}, nil
	case "next", "n":
		return Command{Action: ActNext}, nil
	case "reset", "x":
		return Command{Action: ActReset}, nil
	case "show", "status":
		return Command{Action: ActShow}, nil
	case "help", "?":
		return Command{Action: ActHelp}, nil
	case "quit", "q", "exit":
		return Command{Action: ActQuit}, nil
	case "step":
		if len(fields) != 2 {
			return Command{}, fmt.Errorf("step needs a number from 1 to %d", len(workflow.Steps))
		}
		n, err := strconv.Atoi(fields[1])
		if err != nil {
			return Command{}, fmt.Errorf("step %q is not a number", fields[1])
		}
		return stepCommand(n)
	case "scenario":
		if len(fields) != 2 {
			return Command{}, fmt.Errorf("scenario needs one of: %s", strings.Join(categoryKeys(), ", "))
		}
		if !workflow.ValidCategory(fields[1]) {
			return Command{}, fmt.Errorf("unknown scenario %q (one of: %s)", fields[1], strings.Join(categoryKeys(), ", "))
		}
		return Command{Action: ActScenario, Category: fields[1]}, nil
	}
	return Command{}, fmt.Errorf("%w %q", ErrUnknownCommand, fields[0])
}

func stepCommand(n int) (Command, error) {
	if n < 1 || n > len(workflow.Steps) {
		return Command{}, fmt.Errorf("step must be between 1 and %d", len(workflow.Steps))
	}
	return Command{Action: ActStep, Step: n - 1}, nil
}

func categoryKeys() []string {
	return append([]string{workflow.CategoryRandom}, workflow.Categories()...)
}

// Apply performs cmd on c. Show, help and quit are left to the caller.
func Apply(c *workflow.Controller, cmd Command) {
	switch cmd.Action {
	case ActRun:
		c.Run()
	case ActNext:
		c.Next()
	case ActReset:
		c.Reset()
	case ActStep:
		c.GoToStep(cmd.Step)
	case ActScenario:
		c.Select(cmd.Category)
	}
}
