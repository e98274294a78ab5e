// Package metrics generates synthetic per-minute service telemetry with a
// single injected incident, and derives an SLO burn-rate view from it.
package metrics

import (
	"fmt"
	"math"
	"math/rand/v2"
	"time"
)

const minutesPerDay = 1440

// Options configures Generate. Zero values select the defaults.
type Options struct {
	Service string
	Regions []string
	// Minutes is the number of per-minute samples per region.
	Minutes int
	Seed    uint64
	// End is the timestamp of the last sample; it is truncated to the minute.
	End time.Time

	// IncidentStart is the sample index where the incident begins.
	IncidentStart    int
	IncidentDuration int
}

// DefaultOptions returns seven days of data for orders-api in three regions
// with an incident on day 3 at 09:00 lasting 90 minutes.
func DefaultOptions() Options {
	return Options{
		Service:          "orders-api",
		Regions:          []string{"us-east", "us-west", "eu-west"},
		Minutes:          7 * minutesPerDay,
		Seed:             42,
		IncidentStart:    3*minutesPerDay + 9*60,
		IncidentDuration: 90,
	}
}

// regionLatencyBias scales latency per region; unknown regions use 1.0.
var regionLatencyBias = map[string]float64{
	"us-east": 1.00,
	"us-west": 1.10,
	"eu-west": 1.18,
}

type TrafficRow struct {
	TS      time.Time
	Service string
	Region  string
	RPS     float64
}

type ErrorRow struct {
	TS           time.Time
	Service      string
	Region       string
	ErrorRate    float64
	ErrorsPerMin int
}

type LatencyRow struct {
	TS      time.Time
	Service string
	Region  string
	P50     float64
	P95     float64
	P99     float64
}

type IncidentRow struct {
	Service        string
	Name           string
	Start          time.Time
	End            time.Time
	Summary        string
	SuspectedCause string
}

// Dataset is the output of one Generate call. Rows are grouped by region in
// Options.Regions order, then by time.
type Dataset struct {
	Traffic   []TrafficRow
	Errors    []ErrorRow
	Latency   []LatencyRow
	Incidents []IncidentRow
}

// dailyCycle is a multiplier in [0.6, 1.4] that bottoms out at midnight and
// peaks at midday.
func dailyCycle(minute int) float64 {
	phase := 2 * math.Pi * float64(minute%minutesPerDay) / minutesPerDay
	return 1.0 + 0.4*math.Sin(phase-math.Pi/2)
}

func normal(rng *rand.Rand, mean, sd float64) float64 {
	return mean + sd*rng.NormFloat64()
}

// beta2x200 samples Beta(2, 200) as the ratio of integer-shape gamma
// variates, each a sum of unit exponentials.
func beta2x200(rng *rand.Rand) float64 {
	x := rng.ExpFloat64() + rng.ExpFloat64()
	var y float64
	for range 200 {
		y += rng.ExpFloat64()
	}
	return x / (x + y)
}

func round(v float64, places int) float64 {
	p := math.Pow(10, float64(places))
	return math.Round(v*p) / p
}

func (o *Options) applyDefaults() {
	d := DefaultOptions()
	if o.Service == "" {
		o.Service = d.Service
	}
	if len(o.Regions) == 0 {
		o.Regions = d.Regions
	}
	if o.Minutes == 0 {
		o.Minutes = d.Minutes
	}
	if o.IncidentDuration == 0 {
		o.IncidentDuration = d.IncidentDuration
	}
	if o.End.IsZero() {
		o.End = time.Now().UTC()
	}
	o.End = o.End.Truncate(time.Minute)
}

// Generate builds a deterministic dataset for opts: the same options and
// seed always produce the same rows.
func Generate(opts Options) (*Dataset, error) {
	opts.applyDefaults()
	if opts.Minutes < 0 {
		return nil, fmt.Errorf("minutes must be > 0, got %d", opts.Minutes)
	}
	if opts.IncidentStart < 0 || opts.IncidentStart >= opts.Minutes {
		return nil, fmt.Errorf("incident start %d is outside the %d generated minutes", opts.IncidentStart, opts.Minutes)
	}
	if opts.IncidentDuration < 0 {
		return nil, fmt.Errorf("incident duration must be > 0, got %d", opts.IncidentDuration)
	}

	rng := rand.New(rand.NewPCG(opts.Seed, opts.Seed^0x5851f42d4c957f2d))
	n := opts.Minutes
	start := opts.End.Add(-time.Duration(n-1) * time.Minute)
	incStart := opts.IncidentStart
	incEnd := incStart + opts.IncidentDuration
	inIncident := func(i int) bool { return i >= incStart && i < incEnd }

	ts := make([]time.Time, n)
	rps := make([]float64, n)
	errRate := make([]float64, n)
	p50 := make([]float64, n)
	p95 := make([]float64, n)
	p99 := make([]float64, n)

	for i := range n {
		ts[i] = start.Add(time.Duration(i) * time.Minute)
		rps[i] = math.Max(120*dailyCycle(i)+normal(rng, 0, 8), 5)
		if inIncident(i) {
			rps[i] *= 1.35
		}
	}
	for i := range n {
		r := 0.002 + beta2x200(rng)
		if inIncident(i) {
			r += 0.02
		}
		errRate[i] = math.Min(math.Max(r, 0), 0.2)
	}
	for i := range n {
		p50[i] = 90 + 15*dailyCycle(i) + normal(rng, 0, 5)
	}
	for i := range n {
		p95[i] = p50[i]*2.1 + normal(rng, 0, 10)
	}
	for i := range n {
		p99[i] = p50[i]*3.8 + normal(rng, 0, 20)
		if inIncident(i) {
			p50[i] *= 1.6
			p95[i] *= 2.0
			p99[i] *= 2.4
		}
	}

	ds := &Dataset{}
	for _, region := range opts.Regions {
		bias, ok := regionLatencyBias[region]
		if !ok {
			bias = 1.0
		}
		for i := range n {
			rr := math.Max(rps[i]*normal(rng, 1.0, 0.03), 1)
			perMin := rr * 60
			errs := int(math.Max(math.Round(perMin*errRate[i]*normal(rng, 1.0, 0.05)), 0))

			l50 := math.Max(p50[i]*bias*normal(rng, 1.0, 0.02), 20)
			l95 := math.Max(p95[i]*bias*normal(rng, 1.0, 0.03), l50)
			l99 := math.Max(p99[i]*bias*normal(rng, 1.0, 0.04), l95)

			ds.Traffic = append(ds.Traffic, TrafficRow{TS: ts[i], Service: opts.Service, Region: region, RPS: round(rr, 2)})
			ds.Errors = append(ds.Errors, ErrorRow{TS: ts[i], Service: opts.Service, Region: region, ErrorRate: round(errRate[i], 5), ErrorsPerMin: errs})
			ds.Latency = append(ds.Latency, LatencyRow{TS: ts[i], Service: opts.Service, Region: region, P50: round(l50, 2), P95: round(l95, 2), P99: round(l99, 2)})
		}
	}

	ds.Incidents = []IncidentRow{{
		Service:        opts.Service,
		Name:           "INC-001: latency + errors during peak traffic",
		Start:          ts[incStart],
		End:            ts[min(incEnd, n-1)],
		Summary:        "Traffic spike coincides with elevated tail latency and higher error rates.",
		SuspectedCause: "Capacity saturation and downstream dependency slowness (synthetic).",
	}}
	return ds, nil
}
