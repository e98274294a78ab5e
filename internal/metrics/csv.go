package metrics

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/jorge-barreto/incidentdesk/internal/artifacts"
)

// File names written by WriteCSV and WriteSLO.
const (
	TrafficFile   = "traffic.csv"
	ErrorsFile    = "errors.csv"
	LatencyFile   = "latency.csv"
	IncidentsFile = "incidents.csv"
	SLOFile       = "slo.csv"
)

const tsLayout = time.RFC3339

func ftoa(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}

func encode(header []string, rows [][]string) ([]byte, error) {
	var buf bytes.Buffer
	w := csv.NewWriter(&buf)
	if err := w.Write(header); err != nil {
		return nil, err
	}
	if err := w.WriteAll(rows); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// WriteCSV writes the four dataset files into dir and returns their paths.
func (d *Dataset) WriteCSV(dir string) ([]string, error) {
	files := []struct {
		name   string
		header []string
		rows   [][]string
	}{
		{TrafficFile, []string{"ts", "service", "region", "rps"}, d.trafficRecords()},
		{ErrorsFile, []string{"ts", "service", "region", "error_rate", "errors_per_min"}, d.errorRecords()},
		{LatencyFile, []string{"ts", "service", "region", "p50_ms", "p95_ms", "p99_ms"}, d.latencyRecords()},
		{IncidentsFile, []string{"service", "incident_name", "start_ts", "end_ts", "summary", "suspected_cause"}, d.incidentRecords()},
	}

	var paths []string
	for _, f := range files {
		data, err := encode(f.header, f.rows)
		if err != nil {
			return paths, fmt.Errorf("encoding %s: %w", f.name, err)
		}
		p := filepath.Join(dir, f.name)
		if err := artifacts.WriteFile(p, data); err != nil {
			return paths, fmt.Errorf("writing %s: %w", f.name, err)
		}
		paths = append(paths, p)
	}
	return paths, nil
}

func (d *Dataset) trafficRecords() [][]string {
	out := make([][]string, len(d.Traffic))
	for i, r := range d.Traffic {
		out[i] = []string{r.TS.Format(tsLayout), r.Service, r.Region, ftoa(r.RPS)}
	}
	return out
}

func (d *Dataset) errorRecords() [][]string {
	out := make([][]string, len(d.Errors))
	for i, r := range d.Errors {
		out[i] = []string{r.TS.Format(tsLayout), r.Service, r.Region, ftoa(r.ErrorRate), strconv.Itoa(r.ErrorsPerMin)}
	}
	return out
}

func (d *Dataset) latencyRecords() [][]string {
	out := make([][]string, len(d.Latency))
	for i, r := range d.Latency {
		out[i] = []string{r.TS.Format(tsLayout), r.Service, r.Region, ftoa(r.P50), ftoa(r.P95), ftoa(r.P99)}
	}
	return out
}

func (d *Dataset) incidentRecords() [][]string {
	out := make([][]string, len(d.Incidents))
	for i, r := range d.Incidents {
		out[i] = []string{r.Service, r.Name, r.Start.Format(tsLayout), r.End.Format(tsLayout), r.Summary, r.SuspectedCause}
	}
	return out
}

// table is a parsed CSV file addressed by column name.
type table struct {
	name string
	cols map[string]int
	rows [][]string
}

func readTable(name string, r io.Reader, required ...string) (*table, error) {
	records, err := csv.NewReader(r).ReadAll()
	if err != nil {
		return nil, fmt.Errorf("%s: %w", name, err)
	}
	if len(records) == 0 {
		return nil, fmt.Errorf("%s: missing header", name)
	}
	t := &table{name: name, cols: make(map[string]int), rows: records[1:]}
	for i, h := range records[0] {
		t.cols[h] = i
	}
	for _, c := range required {
		if _, ok := t.cols[c]; !ok {
			return nil, fmt.Errorf("%s: missing column %q", name, c)
		}
	}
	return t, nil
}

func (t *table) str(row int, col string) string {
	return t.rows[row][t.cols[col]]
}

func (t *table) timestamp(row int, col string) (time.Time, error) {
	v, err := time.Parse(tsLayout, t.str(row, col))
	if err != nil {
		return time.Time{}, fmt.Errorf("%s: row %d: %s: %w", t.name, row+2, col, err)
	}
	return v, nil
}

func (t *table) float(row int, col string) (float64, error) {
	v, err := strconv.ParseFloat(t.str(row, col), 64)
	if err != nil {
		return 0, fmt.Errorf("%s: row %d: %s: %w", t.name, row+2, col, err)
	}
	return v, nil
}

// ReadTraffic parses a traffic.csv stream.
func ReadTraffic(r io.Reader) ([]TrafficRow, error) {
	t, err := readTable(TrafficFile, r, "ts", "service", "region", "rps")
	if err != nil {
		return nil, err
	}
	out := make([]TrafficRow, len(t.rows))
	for i := range t.rows {
		ts, err := t.timestamp(i, "ts")
		if err != nil {
			return nil, err
		}
		rps, err := t.float(i, "rps")
		if err != nil {
			return nil, err
		}
		out[i] = TrafficRow{TS: ts, Service: t.str(i, "service"), Region: t.str(i, "region"), RPS: rps}
	}
	return out, nil
}

// ReadErrors parses an errors.csv stream.
func ReadErrors(r io.Reader) ([]ErrorRow, error) {
	t, err := readTable(ErrorsFile, r, "ts", "service", "region", "error_rate", "errors_per_min")
	if err != nil {
		return nil, err
	}
	out := make([]ErrorRow, len(t.rows))
	for i := range t.rows {
		ts, err := t.timestamp(i, "ts")
		if err != nil {
			return nil, err
		}
		rate, err := t.float(i, "error_rate")
		if err != nil {
			return nil, err
		}
		n, err := t.float(i, "errors_per_min")
		if err != nil {
			return nil, err
		}
		out[i] = ErrorRow{TS: ts, Service: t.str(i, "service"), Region: t.str(i, "region"), ErrorRate: rate, ErrorsPerMin: int(n)}
	}
	return out, nil
}

func readFile[T any](path string, parse func(io.Reader) (T, error)) (T, error) {
	f, err := os.Open(path)
	if err != nil {
		var zero T
		return zero, err
	}
	defer f.Close()
	return parse(f)
}
