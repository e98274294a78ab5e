package server

import (
	"errors"
	"fmt"
	"net/http"
	"strconv"

	"github.com/jorge-barreto/incidentdesk/internal/fixtures"
	"github.com/jorge-barreto/incidentdesk/internal/render"
)

func (s *Server) index(w http.ResponseWriter, r *http.Request) error {
	s.page(w, http.StatusOK, render.PageIndex, render.Page{Title: "Home"})
	return nil
}

func (s *Server) incidents(w http.ResponseWriter, r *http.Request) error {
	incs, err := s.loader.Incidents(r.Context())
	if err != nil {
		return err
	}
	rows := render.IncidentRows(incs, s.renderer.Location())
	s.page(w, http.StatusOK, render.PageIncidents, render.Page{Title: "Incidents", Data: rows})
	return nil
}

func (s *Server) incident(w http.ResponseWriter, r *http.Request) error {
	id := r.URL.Query().Get("id")
	inc, err := s.loader.Incident(r.Context(), id)
	switch {
	case errors.Is(err, fixtures.ErrNotFound):
		s.page(w, http.StatusNotFound, render.PageIncident, render.Page{Title: "Incident not found", Data: render.NotFound(id)})
		return nil
	case err != nil:
		return err
	}
	view := render.IncidentDetail(inc, s.renderer.Location())
	s.page(w, http.StatusOK, render.PageIncident, render.Page{Title: view.Title, Data: view})
	return nil
}

func (s *Server) incidentTicket(w http.ResponseWriter, r *http.Request) error {
	inc, err := s.loader.Incident(r.Context(), r.URL.Query().Get("id"))
	if err != nil {
		return err
	}
	w.Header().Set("Content-Type", "text/markdown; charset=utf-8")
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", render.TicketFilename(inc)))
	_, err = fmt.Fprint(w, render.TicketMarkdown(inc, s.renderer.Location()))
	return err
}

func (s *Server) incidentEmail(w http.ResponseWriter, r *http.Request) error {
	inc, err := s.loader.Incident(r.Context(), r.URL.Query().Get("id"))
	if err != nil {
		return err
	}
	return text(w, render.EmailUpdate(inc, s.renderer.Location()))
}

func (s *Server) rca(w http.ResponseWriter, r *http.Request) error {
	rcas, err := s.loader.RCAs(r.Context())
	if err != nil {
		return err
	}
	// A missing or malformed index selects the first RCA.
	i, _ := strconv.Atoi(r.URL.Query().Get("i"))
	s.page(w, http.StatusOK, render.PageRCA, render.Page{Title: "RCA", Data: render.RCAPage(rcas, i)})
	return nil
}

func (s *Server) runbooks(w http.ResponseWriter, r *http.Request) error {
	rbs, err := s.loader.Runbooks(r.Context())
	if err != nil {
		return err
	}
	q := r.URL.Query()
	view := render.RunbooksPage(rbs, q.Get("q"), q.Get("id"))
	s.page(w, http.StatusOK, render.PageRunbooks, render.Page{Title: "Runbooks", Data: view})
	return nil
}

func (s *Server) runbookUpdate(w http.ResponseWriter, r *http.Request) error {
	rbs, err := s.loader.Runbooks(r.Context())
	if err != nil {
		return err
	}
	rb, err := fixtures.FindRunbook(rbs, r.URL.Query().Get("id"))
	if err != nil {
		return err
	}
	return text(w, render.StakeholderUpdate(rb))
}

func (s *Server) status(w http.ResponseWriter, r *http.Request) error {
	st, err := s.loader.Status(r.Context())
	if err != nil {
		return err
	}
	s.page(w, http.StatusOK, render.PageStatus, render.Page{Title: "Status", Data: render.StatusPage(st)})
	return nil
}

func (s *Server) statusUpdate(w http.ResponseWriter, r *http.Request) error {
	st, err := s.loader.Status(r.Context())
	if err != nil {
		return err
	}
	return text(w, render.CustomerUpdate(st))
}

// security degrades instead of failing: a load error renders the dashboard
// with its unavailable placeholders.
func (s *Server) security(w http.ResponseWriter, r *http.Request) error {
	sec, err := s.loader.Security(r.Context())
	if err != nil {
		s.log.Warn("security dashboard degraded", "err", err)
	}
	view := render.SecurityPage(sec, err, r.URL.Query().Get("flow"))
	s.page(w, http.StatusOK, render.PageSecurity, render.Page{Title: "Security", Data: view})
	return nil
}
