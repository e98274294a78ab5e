package workflow

import (
	"fmt"
	"math/rand/v2"
	"sync"
)

// CategoryRandom asks the generator to pick a category uniformly.
const CategoryRandom = "random"

// Scenario is the synthetic incident a workflow run walks through.
type Scenario struct {
	Type        string   `json:"type"`
	Label       string   `json:"label"`
	Severity    string   `json:"severity"`
	Cause       string   `json:"cause"`
	Symptoms    []string `json:"symptoms"`
	Actions     []string `json:"actions"`
	Prevention  []string `json:"prevention"`
	RunbookName string   `json:"runbook"`
	IncidentID  string   `json:"incident_id"`
	TicketID    string   `json:"ticket_id"`
	AlertID     string   `json:"alert_id"`
	Service     string   `json:"service"`
	Region      string   `json:"region"`
}

type category struct {
	key        string
	label      string
	severity   string
	cause      string
	symptoms   []string
	actions    []string
	prevention []string
	runbook    string
	services   []string
}

var catalog = []category{
	{
		key:      "network",
		label:    "Network flap (BGP/packet loss)",
		severity: "SEV-1",
		cause:    "BGP route flap on upstream provider causing intermittent packet loss",
		symptoms: []string{
			"p95 latency spike across multiple services",
			"502/504 bursts from edge timeouts",
			"packet loss detected on core uplink",
		},
		actions: []string{
			"Validated packet loss and route changes",
			"Preferred stable path / rerouted traffic",
			"Reduced retries to prevent amplification",
		},
		prevention: []string{
			"Add upstream route-change alerting",
			"Tune retry budgets + circuit breakers",
			"Add multi-path health scoring for egress",
		},
		runbook:  "Network Instability / Packet Loss",
		services: []string{"edge-gateway", "customer-portal", "metrics-pipeline"},
	},
	{
		key:      "deploy",
		label:    "Bad deploy (pool exhaustion)",
		severity: "SEV-2",
		cause:    "Bad deploy introduced connection pool leak leading to exhaustion",
		symptoms: []string{
			"steady rise in latency and saturation",
			"error rate climbs as pool hits max",
			"slow endpoints concentrated on /checkout",
		},
		actions: []string{
			"Rolled back last deploy",
			"Scaled replicas to drain backlog",
			"Raised pool limit temporarily with guardrails",
		},
		prevention: []string{
			"Canary + automated rollback on saturation",
			"Load tests for pool behavior",
			"Dashboards for pool utilization & queue depth",
		},
		runbook:  "Latency + 5xx after Deploy",
		services: []string{"payments-api", "auth-service", "customer-portal"},
	},
	{
		key:      "dns",
		label:    "DNS latency spike",
		severity: "SEV-2",
		cause:    "Misconfigured resolver causing elevated DNS lookup timeouts",
		symptoms: []string{
			"spikes in downstream dependency call time",
			"intermittent auth failures",
			"lookup timeouts recorded in logs",
		},
		actions: []string{
			"Switched resolver to known-good configuration",
			"Reduced DNS TTL to stabilize lookups",
			"Validated success rates + p95 recovery",
		},
		prevention: []string{
			"DNS SLI + alerting on lookup latency",
			"Config drift detection for resolvers",
			"Fallback resolver policy",
		},
		runbook:  "Dependency Latency / DNS",
		services: []string{"auth-service", "customer-portal", "edge-gateway"},
	},
	{
		key:      "cert",
		label:    "Certificate/PKI mismatch",
		severity: "SEV-1",
		cause:    "Certificate chain mismatch after renewal causing handshake failures",
		symptoms: []string{
			"TLS handshake errors surged",
			"client failures in a subset of edge nodes",
			"increase in timeouts due to upstream rejection",
		},
		actions: []string{
			"Reverted to previous known-good cert bundle",
			"Redeployed edge configuration",
			"Validated handshake success rate",
		},
		prevention: []string{
			"Pre-deploy cert chain validation",
			"Staged rollout with canary edge nodes",
			"Alerting on handshake failure rate",
		},
		runbook:  "TLS / Certificate Failure",
		services: []string{"edge-gateway", "auth-service"},
	},
	{
		key:      "db",
		label:    "Database slow query / lock",
		severity: "SEV-2",
		cause:    "Slow query regression + lock contention during peak traffic window",
		symptoms: []string{
			"p95 latency increases with queue depth",
			"DB time dominates traces",
			"timeouts observed on write operations",
		},
		actions: []string{
			"Killed blocking sessions / reduced lock contention",
			"Applied temporary read routing",
			"Indexed hot path query / reverted query change",
		},
		prevention: []string{
			"Query regression tests on hot paths",
			"Lock contention dashboards + alerts",
			"Traffic shaping during peak write events",
		},
		runbook:  "DB Saturation / Lock Contention",
		services: []string{"payments-api", "customer-portal"},
	},
}

// Regions are the deployment regions a scenario can land in.
var Regions = []string{"us-east-1", "us-east-2", "us-west-2", "eu-central-1"}

// Categories returns the scenario category keys in catalog order.
func Categories() []string {
	keys := make([]string, len(catalog))
	for i, c := range catalog {
		keys[i] = c.key
	}
	return keys
}

// CategoryLabel returns the human label for a category key, or "" if unknown.
func CategoryLabel(key string) string {
	if c, ok := lookupCategory(key); ok {
		return c.label
	}
	return ""
}

// ServicesFor returns the services a category may affect.
func ServicesFor(key string) []string {
	if c, ok := lookupCategory(key); ok {
		return append([]string(nil), c.services...)
	}
	return nil
}

// ValidCategory reports whether key is a catalog key or CategoryRandom.
func ValidCategory(key string) bool {
	if key == CategoryRandom {
		return true
	}
	_, ok := lookupCategory(key)
	return ok
}

func lookupCategory(key string) (category, bool) {
	for _, c := range catalog {
		if c.key == key {
			return c, true
		}
	}
	return category{}, false
}

// Generator produces scenarios from a random source.
// It is safe for concurrent use.
type Generator struct {
	mu  sync.Mutex
	rng *rand.Rand
}

// NewGenerator returns a generator drawing from rng.
// A nil rng uses a randomly seeded source.
func NewGenerator(rng *rand.Rand) *Generator {
	if rng == nil {
		rng = rand.New(rand.NewPCG(rand.Uint64(), rand.Uint64()))
	}
	return &Generator{rng: rng}
}

// NewSeededGenerator returns a generator whose output is fully determined by seed.
func NewSeededGenerator(seed uint64) *Generator {
	return NewGenerator(rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15)))
}

// Generate builds a scenario for the given category key. "random" and
// unrecognized keys pick one of the catalog categories uniformly.
func (g *Generator) Generate(key string) Scenario {
	g.mu.Lock()
	defer g.mu.Unlock()

	c, ok := lookupCategory(key)
	if !ok {
		c = catalog[g.rng.IntN(len(catalog))]
	}

	return Scenario{
		Type:        c.key,
		Label:       c.label,
		Severity:    c.severity,
		Cause:       c.cause,
		Symptoms:    append([]string(nil), c.symptoms...),
		Actions:     append([]string(nil), c.actions...),
		Prevention:  append([]string(nil), c.prevention...),
		RunbookName: c.runbook,
		IncidentID:  fmt.Sprintf("INC-%d", 1000+g.rng.IntN(9000)),
		TicketID:    fmt.Sprintf("CHG-%d", 100000+g.rng.IntN(900000)),
		AlertID:     fmt.Sprintf("ALRT-%d", 10000+g.rng.IntN(90000)),
		Service:     c.services[g.rng.IntN(len(c.services))],
		Region:      Regions[g.rng.IntN(len(Regions))],
	}
}
