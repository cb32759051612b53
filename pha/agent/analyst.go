package agent

import (
	"context"
	"fmt"

	"github.com/rs/zerolog"

	"github.com/ZanzyTHEbar/personal-health-agent/pha/gateway"
	"github.com/ZanzyTHEbar/personal-health-agent/pha/health"
)

// Sampling temperatures per operation. Structured output runs cold.
const (
	tempAnalysisPlan = 0.3
	tempProcedure    = 0.2
)

// Analysis is the Analytical agent's two-stage result: the plan always
// precedes the procedure, and both are returned together.
type Analysis struct {
	Query     string `json:"query"`
	Plan      string `json:"analysis_plan"`
	Procedure string `json:"analysis_procedure"`
}

// Analyst is the Analytical role: statistical reasoning over the wearable
// series. Stateless; the snapshot is captured at construction for prompt
// context only.
type Analyst struct {
	gw       gateway.Gateway
	snapshot *health.Snapshot
	system   string
	logger   zerolog.Logger
}

// NewAnalyst creates the Analytical agent over the given snapshot.
func NewAnalyst(gw gateway.Gateway, snapshot *health.Snapshot, logger zerolog.Logger) *Analyst {
	return &Analyst{
		gw:       gw,
		snapshot: snapshot,
		system:   fmt.Sprintf(analyticalSystemPrompt, snapshot.FormatSections()),
		logger:   logger.With().Str("agent", RoleAnalytical.String()).Logger(),
	}
}

// PlanAnalysis produces the structured analysis plan for a query.
func (a *Analyst) PlanAnalysis(ctx context.Context, query string) (string, error) {
	user := fmt.Sprintf(analysisPlanTemplate, query)
	return a.gw.Complete(ctx, a.system, user, gateway.Options{Temperature: tempAnalysisPlan})
}

// BuildProcedure turns a plan into an executable procedure description.
func (a *Analyst) BuildProcedure(ctx context.Context, plan, query string) (string, error) {
	user := fmt.Sprintf(procedureTemplate, query, plan, health.DescribeSeries(a.snapshot))
	return a.gw.Complete(ctx, a.system, user, gateway.Options{Temperature: tempProcedure})
}

// Analyze runs the full two-stage pipeline: plan, then procedure from that
// plan. Stage two always follows stage one for the same query.
func (a *Analyst) Analyze(ctx context.Context, query string) (*Analysis, error) {
	plan, err := a.PlanAnalysis(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("analysis plan failed: %w", err)
	}

	procedure, err := a.BuildProcedure(ctx, plan, query)
	if err != nil {
		return nil, fmt.Errorf("analysis procedure failed: %w", err)
	}

	a.logger.Debug().Int("plan_chars", len(plan)).Int("procedure_chars", len(procedure)).Msg("analysis complete")

	return &Analysis{Query: query, Plan: plan, Procedure: procedure}, nil
}
