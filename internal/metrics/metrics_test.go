package metrics

import (
	"context"
	"math"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

var end = time.Date(2025, 3, 14, 12, 0, 0, 0, time.UTC)

func smallOptions() Options {
	return Options{
		Service:          "orders-api",
		Regions:          []string{"us-east", "eu-west"},
		Minutes:          240,
		Seed:             42,
		End:              end,
		IncidentStart:    120,
		IncidentDuration: 30,
	}
}

func TestGenerate_Shape(t *testing.T) {
	ds, err := Generate(smallOptions())
	require.NoError(t, err)
	require.Len(t, ds.Traffic, 480)
	require.Len(t, ds.Errors, 480)
	require.Len(t, ds.Latency, 480)
	require.Len(t, ds.Incidents, 1)

	require.Equal(t, end.Add(-239*time.Minute), ds.Traffic[0].TS)
	require.Equal(t, end, ds.Traffic[239].TS)
	require.Equal(t, "us-east", ds.Traffic[0].Region)
	require.Equal(t, "eu-west", ds.Traffic[240].Region)

	inc := ds.Incidents[0]
	require.Equal(t, ds.Traffic[120].TS, inc.Start)
	require.Equal(t, ds.Traffic[150].TS, inc.End)
}

func TestGenerate_Deterministic(t *testing.T) {
	a, err := Generate(smallOptions())
	require.NoError(t, err)
	b, err := Generate(smallOptions())
	require.NoError(t, err)
	require.Equal(t, a, b)

	opts := smallOptions()
	opts.Seed = 7
	c, err := Generate(opts)
	require.NoError(t, err)
	require.NotEqual(t, a.Traffic, c.Traffic)
}

func TestGenerate_Bounds(t *testing.T) {
	ds, err := Generate(smallOptions())
	require.NoError(t, err)
	for i, r := range ds.Traffic {
		require.GreaterOrEqual(t, r.RPS, 1.0, "row %d", i)
	}
	for i, r := range ds.Errors {
		require.GreaterOrEqual(t, r.ErrorRate, 0.0, "row %d", i)
		require.LessOrEqual(t, r.ErrorRate, 0.2, "row %d", i)
		require.GreaterOrEqual(t, r.ErrorsPerMin, 0, "row %d", i)
	}
	for i, r := range ds.Latency {
		require.GreaterOrEqual(t, r.P50, 20.0, "row %d", i)
		require.GreaterOrEqual(t, r.P95, r.P50, "row %d", i)
		require.GreaterOrEqual(t, r.P99, r.P95, "row %d", i)
	}
}

func meanOver[T any](rows []T, from, to int, f func(T) float64) float64 {
	var sum float64
	for _, r := range rows[from:to] {
		sum += f(r)
	}
	return sum / float64(to-from)
}

func TestGenerate_IncidentWindowDegrades(t *testing.T) {
	ds, err := Generate(smallOptions())
	require.NoError(t, err)

	rate := func(r ErrorRow) float64 { return r.ErrorRate }
	before := meanOver(ds.Errors, 60, 120, rate)
	during := meanOver(ds.Errors, 120, 150, rate)
	require.Greater(t, during-before, 0.015)

	p99 := func(r LatencyRow) float64 { return r.P99 }
	require.Greater(t, meanOver(ds.Latency, 120, 150, p99), 1.8*meanOver(ds.Latency, 60, 120, p99))
}

func TestGenerate_RegionBias(t *testing.T) {
	ds, err := Generate(smallOptions())
	require.NoError(t, err)
	p50 := func(r LatencyRow) float64 { return r.P50 }
	east := meanOver(ds.Latency, 0, 120, p50)
	west := meanOver(ds.Latency, 240, 360, p50)
	require.InDelta(t, 1.18, west/east, 0.03)
}

func TestGenerate_Errors(t *testing.T) {
	opts := smallOptions()
	opts.IncidentStart = 240
	_, err := Generate(opts)
	require.ErrorContains(t, err, "outside the 240 generated minutes")

	opts = smallOptions()
	opts.Minutes = -1
	_, err = Generate(opts)
	require.ErrorContains(t, err, "minutes must be > 0")
}

func TestDailyCycle(t *testing.T) {
	require.InDelta(t, 0.6, dailyCycle(0), 1e-9)
	require.InDelta(t, 1.4, dailyCycle(720), 1e-9)
	require.InDelta(t, dailyCycle(10), dailyCycle(10+minutesPerDay), 1e-9)
}

func TestWriteCSV_RoundTripsThroughSLO(t *testing.T) {
	dir := t.TempDir()
	ds, err := Generate(smallOptions())
	require.NoError(t, err)

	paths, err := ds.WriteCSV(dir)
	require.NoError(t, err)
	require.Len(t, paths, 4)

	head, err := os.ReadFile(filepath.Join(dir, LatencyFile))
	require.NoError(t, err)
	require.True(t, strings.HasPrefix(string(head), "ts,service,region,p50_ms,p95_ms,p99_ms\n"))

	inc, err := os.ReadFile(filepath.Join(dir, IncidentsFile))
	require.NoError(t, err)
	require.Contains(t, string(inc), "INC-001: latency + errors during peak traffic")

	rows, err := LoadSLO(context.Background(), dir, 0.999, 60)
	require.NoError(t, err)
	require.Len(t, rows, 240)

	want := ds.Traffic[0].RPS + ds.Traffic[240].RPS
	require.InDelta(t, want, rows[0].RPS, 1e-9)
	require.Equal(t, ds.Errors[0].ErrorsPerMin+ds.Errors[240].ErrorsPerMin, rows[0].ErrorsPerMin)

	p, err := WriteSLO(dir, rows, 60)
	require.NoError(t, err)
	out, err := os.ReadFile(p)
	require.NoError(t, err)
	require.True(t, strings.HasPrefix(string(out),
		"ts,service,rps,requests_per_min,errors_per_min,error_rate,availability,burn_rate_1h\n"))
}

func TestLoadSLO_MissingFile(t *testing.T) {
	_, err := LoadSLO(context.Background(), t.TempDir(), 0.999, 60)
	require.ErrorIs(t, err, os.ErrNotExist)
}

func TestAnalyzeSLO_BurnRate(t *testing.T) {
	base := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)
	var traffic []TrafficRow
	var errs []ErrorRow
	for i := range 5 {
		ts := base.Add(time.Duration(i) * time.Minute)
		for _, region := range []string{"a", "b"} {
			traffic = append(traffic, TrafficRow{TS: ts, Service: "svc", Region: region, RPS: 50})
			errs = append(errs, ErrorRow{TS: ts, Service: "svc", Region: region, ErrorsPerMin: 3 * i})
		}
	}

	rows, err := AnalyzeSLO(traffic, errs, 0.99, 3)
	require.NoError(t, err)
	require.Len(t, rows, 5)

	for i, r := range rows {
		require.Equal(t, 100.0, r.RPS)
		require.Equal(t, 6000.0, r.RequestsPerMin)
		require.Equal(t, 6*i, r.ErrorsPerMin)
		require.InDelta(t, float64(6*i)/6000, r.ErrorRate, 1e-12)
		require.InDelta(t, 1-r.ErrorRate, r.Availability, 1e-12)
	}
	require.Zero(t, rows[0].BurnRate)
	require.Zero(t, rows[1].BurnRate)
	// minutes 0..2: rates 0, 0.001, 0.002 → mean 0.001 / 0.01
	require.InDelta(t, 0.1, rows[2].BurnRate, 1e-9)
	require.InDelta(t, 0.2, rows[3].BurnRate, 1e-9)
}

func TestAnalyzeSLO_InnerJoinAndZeroTraffic(t *testing.T) {
	ts := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)
	traffic := []TrafficRow{
		{TS: ts, Service: "svc", RPS: 0},
		{TS: ts.Add(time.Minute), Service: "svc", RPS: 10},
	}
	errs := []ErrorRow{{TS: ts, Service: "svc", ErrorsPerMin: 4}}

	rows, err := AnalyzeSLO(traffic, errs, 0.999, 1)
	require.NoError(t, err)
	require.Len(t, rows, 1)
	require.Zero(t, rows[0].ErrorRate)
	require.Equal(t, 1.0, rows[0].Availability)
	require.False(t, math.IsNaN(rows[0].BurnRate))
}

func TestAnalyzeSLO_InvalidArgs(t *testing.T) {
	_, err := AnalyzeSLO(nil, nil, 1, 60)
	require.ErrorContains(t, err, "objective")
	_, err = AnalyzeSLO(nil, nil, 0.999, 0)
	require.ErrorContains(t, err, "window")
}

func TestBurnColumn(t *testing.T) {
	require.Equal(t, "burn_rate_1h", BurnColumn(60))
	require.Equal(t, "burn_rate_6h", BurnColumn(360))
	require.Equal(t, "burn_rate_5m", BurnColumn(5))
}

func TestReadTraffic_MissingColumn(t *testing.T) {
	_, err := ReadTraffic(strings.NewReader("ts,service\n"))
	require.ErrorContains(t, err, `missing column "region"`)
}

func TestReadErrors_BadNumber(t *testing.T) {
	in := "ts,service,region,error_rate,errors_per_min\n2025-01-01T00:00:00Z,svc,a,oops,1\n"
	_, err := ReadErrors(strings.NewReader(in))
	require.ErrorContains(t, err, "row 2: error_rate")
}
