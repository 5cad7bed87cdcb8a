package grading

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/SmackdabDevOps/smackdab-api-grader-sub001/internal/identity"
	"github.com/SmackdabDevOps/smackdab-api-grader-sub001/internal/openapi"
	"github.com/SmackdabDevOps/smackdab-api-grader-sub001/internal/rules"
)

// ScoringEngine names the scoring implementation in result metadata.
const ScoringEngine = "smackdab-grader/2"

// Stage names a pipeline boundary for progress reporting.
type Stage string

const (
	StageFetch     Stage = "fetch"
	StageRules     Stage = "rules"
	StageAggregate Stage = "aggregate"
	StagePersist   Stage = "persist"
)

// Progress is the side-channel progress callback. It is invoked at
// pipeline boundaries and must never alter control flow — the pipeline
// ignores anything it does.
type Progress func(stage Stage, percent int, note string)

// Options configure one grading invocation.
type Options struct {
	// Domain selects the business-domain weight table. Empty or
	// unknown domains resolve every weight to 1.0.
	Domain string
	// Template overrides the scoring template. Zero value means the
	// built-in default.
	Template *Template
	// Progress, when set, receives stage boundary notifications.
	Progress Progress
}

// Result bundles everything one grading invocation produces.
type Result struct {
	APIID       string          `json:"apiId"`
	Grade       GradeResult     `json:"grade"`
	Findings    []rules.Finding `json:"findings"`
	Checkpoints []Checkpoint    `json:"checkpoints"`
	Metadata    Metadata        `json:"metadata"`
}

// Grader is the grading pipeline: registry, weights, and instance
// identity, assembled once at process start and shared by every tool.
type Grader struct {
	registry      *rules.Registry
	resolver      *Resolver
	version       string
	instanceID    string
	instanceStart time.Time
	rulesetHash   string
	now           func() time.Time // test seam
}

// NewGrader builds a Grader around the built-in registry and weight
// tables. version is the server version stamped into metadata.
func NewGrader(version string) *Grader {
	reg := rules.NewRegistry()
	return &Grader{
		registry:      reg,
		resolver:      NewResolver(),
		version:       version,
		instanceID:    uuid.NewString(),
		instanceStart: time.Now().UTC(),
		rulesetHash:   identity.HashLines(reg.Fingerprint()),
		now:           func() time.Time { return time.Now().UTC() },
	}
}

// Registry exposes the rule catalog for the checkpoint and explain
// surfaces.
func (g *Grader) Registry() *rules.Registry { return g.registry }

// RulesetHash is the fingerprint of the active rule catalog.
func (g *Grader) RulesetHash() string { return g.rulesetHash }

// InstanceID identifies this server process.
func (g *Grader) InstanceID() string { return g.instanceID }

// InstanceStart is when this server process came up.
func (g *Grader) InstanceStart() time.Time { return g.instanceStart }

// Version is the server version stamped into metadata.
func (g *Grader) Version() string { return g.version }

// Grade runs every registered rule over the parsed specification and
// aggregates the results. Rules run concurrently — each is a pure
// function of the immutable spec — and the aggregation step is the
// barrier that joins them. On cancellation all partial results are
// discarded and only the context error is returned.
func (g *Grader) Grade(ctx context.Context, spec *openapi.Node, opts Options) (*Result, error) {
	if spec == nil {
		return nil, fmt.Errorf("grading: nil specification")
	}

	tmpl := DefaultTemplate()
	if opts.Template != nil {
		tmpl = *opts.Template
	}
	notify := opts.Progress
	if notify == nil {
		notify = func(Stage, int, string) {}
	}

	all := g.registry.All()
	notify(StageRules, 10, fmt.Sprintf("running %d rules", len(all)))

	type outcome struct {
		id     string
		report rules.Report
	}
	results := make(chan outcome, len(all))

	var wg sync.WaitGroup
	for _, rule := range all {
		wg.Add(1)
		go func(r rules.Rule) {
			defer wg.Done()
			results <- outcome{id: r.Meta().ID, report: r.Check(spec)}
		}(rule)
	}
	wg.Wait()
	close(results)

	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("grading: cancelled: %w", err)
	}

	reports := make(map[string]rules.Report, len(all))
	for o := range results {
		reports[o.id] = o.report
	}

	notify(StageAggregate, 70, "aggregating category scores")

	grade, checkpoints, findings := aggregate(g.registry, g.resolver, tmpl, opts.Domain, reports)
	grade.AutoFailTriggered, grade.AutoFailReasons = evaluateAutoFail(g.registry, opts.Domain, reports, findings)

	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("grading: cancelled: %w", err)
	}

	res := &Result{
		APIID:       identity.APIID(spec),
		Grade:       grade,
		Findings:    findings,
		Checkpoints: checkpoints,
		Metadata: Metadata{
			SpecHash:        identity.SpecHash(spec),
			TemplateHash:    tmpl.Hash(),
			RulesetHash:     g.rulesetHash,
			TemplateVersion: tmpl.Version,
			ToolVersions: map[string]string{
				"apigrader": g.version,
				"ruleset":   rules.RulesetVersion,
			},
			ScoringEngine:     ScoringEngine,
			InstanceID:        g.instanceID,
			InstanceStartTime: g.instanceStart,
			GradedAt:          g.now(),
		},
	}

	notify(StageAggregate, 90, fmt.Sprintf("total %d (%s)", grade.Total, grade.Letter))
	return res, nil
}

// Checkpoints lists every scoring unit in the catalog with its static
// weight, for the list_checkpoints surface.
func (g *Grader) Checkpoints() []Checkpoint {
	var out []Checkpoint
	for _, rule := range g.registry.All() {
		m := rule.Meta()
		out = append(out, Checkpoint{
			CheckpointID: m.ID,
			Category:     m.Category,
			MaxPoints:    m.MaxPoints,
		})
	}
	return out
}
