package fixtures

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"

	"golang.org/x/sync/errgroup"
)

// Loader decodes fixture documents from a Source. Documents are read fresh
// on every call.
type Loader struct {
	src Source
	log *slog.Logger
}

// NewLoader returns a loader over src. A nil logger uses slog.Default.
func NewLoader(src Source, log *slog.Logger) *Loader {
	if log == nil {
		log = slog.Default()
	}
	return &Loader{src: src, log: log}
}

// Source returns the underlying document source.
func (l *Loader) Source() Source { return l.src }

func load[T any](ctx context.Context, l *Loader, name string) (T, error) {
	var v T
	data, err := l.src.Fetch(ctx, name)
	if err != nil {
		l.log.Warn("fixture fetch failed", "name", name, "err", err)
		return v, err
	}
	if err := json.Unmarshal(data, &v); err != nil {
		l.log.Warn("fixture decode failed", "name", name, "err", err)
		return v, &FetchError{Name: name, Err: fmt.Errorf("decode: %w", err)}
	}
	l.log.Debug("fixture loaded", "name", name, "bytes", len(data))
	return v, nil
}

func (l *Loader) Incidents(ctx context.Context) ([]Incident, error) {
	return load[[]Incident](ctx, l, IncidentsFile)
}

func (l *Loader) RCAs(ctx context.Context) ([]RCA, error) {
	return load[[]RCA](ctx, l, RCAFile)
}

func (l *Loader) Runbooks(ctx context.Context) ([]Runbook, error) {
	return load[[]Runbook](ctx, l, RunbooksFile)
}

func (l *Loader) Status(ctx context.Context) (Status, error) {
	return load[Status](ctx, l, StatusFile)
}

// Security loads the three security documents concurrently. It fails if any
// of them fails.
func (l *Loader) Security(ctx context.Context) (Security, error) {
	var sec Security
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		m, err := load[SecurityMetrics](gctx, l, SecurityMetricsFile)
		sec.Metrics = m
		return err
	})
	g.Go(func() error {
		t, err := load[[]Threat](gctx, l, SecurityThreatsFile)
		sec.Threats = t
		return err
	})
	g.Go(func() error {
		d, err := load[[]Decision](gctx, l, SecurityDecisionsFile)
		sec.Decisions = d
		return err
	})
	if err := g.Wait(); err != nil {
		return Security{}, err
	}
	return sec, nil
}

// Incident loads incidents.json and returns the record with the given id.
func (l *Loader) Incident(ctx context.Context, id string) (Incident, error) {
	incs, err := l.Incidents(ctx)
	if err != nil {
		return Incident{}, err
	}
	return FindIncident(incs, id)
}

// FindIncident returns the first incident whose id matches exactly.
func FindIncident(incs []Incident, id string) (Incident, error) {
	for _, inc := range incs {
		if inc.ID == id {
			return inc, nil
		}
	}
	return Incident{}, fmt.Errorf("incident %q: %w", id, ErrNotFound)
}

// FindRunbook returns the runbook with the given id.
func FindRunbook(rbs []Runbook, id string) (Runbook, error) {
	for _, rb := range rbs {
		if rb.ID == id {
			return rb, nil
		}
	}
	return Runbook{}, fmt.Errorf("runbook %q: %w", id, ErrNotFound)
}
