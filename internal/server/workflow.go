package server

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"

	"github.com/jorge-barreto/incidentdesk/internal/render"
	"github.com/jorge-barreto/incidentdesk/internal/workflow"
)

func (s *Server) workflowPage(w http.ResponseWriter, r *http.Request) error {
	vm := s.sessions.Controller(w, r).View()
	p := render.Page{Title: "Workflow", Data: render.WorkflowPage(vm)}
	if vm.Playing {
		p.Refresh = 1
	}
	s.page(w, http.StatusOK, render.PageWorkflow, p)
	return nil
}

// apply performs a named workflow control. arg is the step number (1-based)
// for "step" and the category key for "scenario".
func apply(c *workflow.Controller, action, arg string) error {
	switch action {
	case "run":
		c.Run()
	case "next":
		c.Next()
	case "reset":
		c.Reset()
	case "step":
		n, err := strconv.Atoi(arg)
		if err != nil {
			return badRequest("step %q is not a number", arg)
		}
		c.GoToStep(n - 1)
	case "scenario":
		if !workflow.ValidCategory(arg) {
			return badRequest("unknown scenario %q", arg)
		}
		c.Select(arg)
	default:
		return &httpError{status: http.StatusNotFound, heading: "Not found", msg: fmt.Sprintf("unknown workflow action %q", action)}
	}
	return nil
}

func (s *Server) workflowAction(w http.ResponseWriter, r *http.Request) error {
	action := r.PathValue("action")
	if action == "step" {
		return badRequest("step needs a number")
	}
	c := s.sessions.Controller(w, r)
	if err := apply(c, action, r.FormValue("category")); err != nil {
		return err
	}
	http.Redirect(w, r, "/workflow", http.StatusSeeOther)
	return nil
}

func (s *Server) workflowStep(w http.ResponseWriter, r *http.Request) error {
	c := s.sessions.Controller(w, r)
	if err := apply(c, "step", r.PathValue("n")); err != nil {
		return err
	}
	http.Redirect(w, r, "/workflow", http.StatusSeeOther)
	return nil
}

type apiError struct {
	Error string `json:"error"`
}

func writeJSON(w http.ResponseWriter, status int, v any) error {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

func (s *Server) apiWorkflow(w http.ResponseWriter, r *http.Request) error {
	return writeJSON(w, http.StatusOK, s.sessions.Controller(w, r).View())
}

func (s *Server) apiWorkflowAction(w http.ResponseWriter, r *http.Request) error {
	c := s.sessions.Controller(w, r)
	action := r.PathValue("action")
	arg := r.FormValue("n")
	if action == "scenario" {
		arg = r.FormValue("key")
	}
	if err := apply(c, action, arg); err != nil {
		if he, ok := err.(*httpError); ok {
			return writeJSON(w, he.status, apiError{Error: he.msg})
		}
		return err
	}
	return writeJSON(w, http.StatusOK, c.View())
}
