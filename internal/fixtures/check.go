package fixtures

import (
	"context"
	_ "embed"
	"fmt"

	"cuelang.org/go/cue"
	"cuelang.org/go/cue/cuecontext"
	cueerrors "cuelang.org/go/cue/errors"
	cuejson "cuelang.org/go/encoding/json"
)

//go:embed schema.cue
var schemaSource string

var schemaDefs = map[string]string{
	IncidentsFile:         "#Incidents",
	RCAFile:               "#RCAs",
	RunbooksFile:          "#Runbooks",
	StatusFile:            "#Status",
	SecurityMetricsFile:   "#SecurityMetrics",
	SecurityThreatsFile:   "#Threats",
	SecurityDecisionsFile: "#Decisions",
}

// Problem is one reason a fixture document failed its check.
type Problem struct {
	Name    string `json:"name"`
	Message string `json:"message"`
}

func (p Problem) String() string {
	return p.Name + ": " + p.Message
}

// Checker validates fixture documents against the embedded CUE schema.
type Checker struct {
	ctx    *cue.Context
	schema cue.Value
}

// NewChecker compiles the schema.
func NewChecker() (*Checker, error) {
	ctx := cuecontext.New()
	schema := ctx.CompileString(schemaSource, cue.Filename("schema.cue"))
	if err := schema.Err(); err != nil {
		return nil, fmt.Errorf("compiling fixture schema: %w", err)
	}
	return &Checker{ctx: ctx, schema: schema}, nil
}

// CheckDocument validates one document. Unknown names are only checked for
// well-formed JSON.
func (c *Checker) CheckDocument(name string, data []byte) []Problem {
	expr, err := cuejson.Extract(name, data)
	if err != nil {
		return []Problem{{Name: name, Message: err.Error()}}
	}
	def, ok := schemaDefs[name]
	if !ok {
		return nil
	}

	v := c.ctx.BuildExpr(expr)
	schema := c.schema.LookupPath(cue.ParsePath(def))
	err = schema.Unify(v).Validate(cue.Concrete(true))
	if err == nil {
		return nil
	}
	var problems []Problem
	for _, e := range cueerrors.Errors(err) {
		problems = append(problems, Problem{Name: name, Message: e.Error()})
	}
	return problems
}

// Check fetches every fixture from src and validates it. Fetch failures are
// reported as problems alongside schema violations.
func (c *Checker) Check(ctx context.Context, src Source) []Problem {
	var problems []Problem
	for _, name := range Names {
		data, err := src.Fetch(ctx, name)
		if err != nil {
			problems = append(problems, Problem{Name: name, Message: err.Error()})
			continue
		}
		problems = append(problems, c.CheckDocument(name, data)...)
	}
	return problems
}
