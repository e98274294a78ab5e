package metrics

import (
	"context"
	"fmt"
	"path/filepath"
	"sort"
	"strconv"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/jorge-barreto/incidentdesk/internal/artifacts"
)

// SLORow is the service-level view of one minute.
type SLORow struct {
	TS             time.Time
	Service        string
	RPS            float64
	RequestsPerMin float64
	ErrorsPerMin   int
	ErrorRate      float64
	Availability   float64
	// BurnRate is the mean error rate over the trailing window divided by
	// the error budget. It is 0 until the window is full.
	BurnRate float64
}

type seriesKey struct {
	ts      time.Time
	service string
}

// AnalyzeSLO sums traffic and errors across regions per (minute, service),
// keeps only minutes present in both, and computes availability and the
// rolling burn rate against objective over window minutes.
func AnalyzeSLO(traffic []TrafficRow, errs []ErrorRow, objective float64, window int) ([]SLORow, error) {
	if objective <= 0 || objective >= 1 {
		return nil, fmt.Errorf("objective must be between 0 and 1 (exclusive), got %v", objective)
	}
	if window < 1 {
		return nil, fmt.Errorf("window must be >= 1, got %d", window)
	}

	rps := make(map[seriesKey]float64)
	for _, r := range traffic {
		rps[seriesKey{r.TS.UTC(), r.Service}] += r.RPS
	}
	errCount := make(map[seriesKey]int)
	for _, r := range errs {
		errCount[seriesKey{r.TS.UTC(), r.Service}] += r.ErrorsPerMin
	}

	keys := make([]seriesKey, 0, len(rps))
	for k := range rps {
		if _, ok := errCount[k]; ok {
			keys = append(keys, k)
		}
	}
	sort.Slice(keys, func(i, j int) bool {
		if !keys[i].ts.Equal(keys[j].ts) {
			return keys[i].ts.Before(keys[j].ts)
		}
		return keys[i].service < keys[j].service
	})

	allowed := 1 - objective
	rows := make([]SLORow, len(keys))
	recent := make(map[string][]float64)
	for i, k := range keys {
		perMin := rps[k] * 60
		n := errCount[k]
		rate := 0.0
		if perMin > 0 {
			rate = float64(n) / perMin
		}
		row := SLORow{
			TS:             k.ts,
			Service:        k.service,
			RPS:            rps[k],
			RequestsPerMin: perMin,
			ErrorsPerMin:   n,
			ErrorRate:      rate,
			Availability:   1 - rate,
		}

		win := append(recent[k.service], rate)
		if len(win) > window {
			win = win[len(win)-window:]
		}
		recent[k.service] = win
		if len(win) == window {
			var sum float64
			for _, v := range win {
				sum += v
			}
			row.BurnRate = sum / float64(window) / allowed
		}
		rows[i] = row
	}
	return rows, nil
}

// BurnColumn names the burn-rate column for a window, e.g. burn_rate_1h.
func BurnColumn(window int) string {
	if window%60 == 0 {
		return fmt.Sprintf("burn_rate_%dh", window/60)
	}
	return fmt.Sprintf("burn_rate_%dm", window)
}

// LoadSLO reads traffic.csv and errors.csv from dir concurrently and
// analyzes them.
func LoadSLO(ctx context.Context, dir string, objective float64, window int) ([]SLORow, error) {
	var (
		traffic []TrafficRow
		errs    []ErrorRow
	)
	g, _ := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		traffic, err = readFile(filepath.Join(dir, TrafficFile), ReadTraffic)
		return err
	})
	g.Go(func() error {
		var err error
		errs, err = readFile(filepath.Join(dir, ErrorsFile), ReadErrors)
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return AnalyzeSLO(traffic, errs, objective, window)
}

// WriteSLO writes rows to dir/slo.csv and returns the path.
func WriteSLO(dir string, rows []SLORow, window int) (string, error) {
	header := []string{"ts", "service", "rps", "requests_per_min", "errors_per_min", "error_rate", "availability", BurnColumn(window)}
	records := make([][]string, len(rows))
	for i, r := range rows {
		records[i] = []string{
			r.TS.Format(tsLayout), r.Service, ftoa(r.RPS), ftoa(r.RequestsPerMin),
			strconv.Itoa(r.ErrorsPerMin), ftoa(r.ErrorRate), ftoa(r.Availability), ftoa(r.BurnRate),
		}
	}
	data, err := encode(header, records)
	if err != nil {
		return "", err
	}
	p := filepath.Join(dir, SLOFile)
	if err := artifacts.WriteFile(p, data); err != nil {
		return "", err
	}
	return p, nil
}
