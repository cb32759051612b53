// Package compare drives the orchestrated and unified pipelines side by
// side over the same query list and records timing and response size. The
// two sessions share no state, so each query's pair of turns runs
// concurrently.
package compare

import (
	"context"
	"time"

	"github.com/rs/zerolog"
	"github.com/sourcegraph/conc"
	"gonum.org/v1/gonum/stat"

	"github.com/ZanzyTHEbar/personal-health-agent/pha/orchestrator"
	"github.com/ZanzyTHEbar/personal-health-agent/pha/unified"
)

// Row is the measurement for one query across both pipelines.
type Row struct {
	Query string `json:"query"`

	OrchestratedMillis int64  `json:"orchestrated_ms"`
	OrchestratedChars  int    `json:"orchestrated_chars"`
	OrchestratedErr    string `json:"orchestrated_error,omitempty"`

	UnifiedMillis int64  `json:"unified_ms"`
	UnifiedChars  int    `json:"unified_chars"`
	UnifiedErr    string `json:"unified_error,omitempty"`
}

// Report aggregates a comparison run.
type Report struct {
	Rows []Row `json:"rows"`

	MeanOrchestratedMillis float64 `json:"mean_orchestrated_ms"`
	MeanUnifiedMillis      float64 `json:"mean_unified_ms"`
}

// Harness holds one session of each pipeline for a comparison run.
type Harness struct {
	orch   *orchestrator.Orchestrator
	uni    *unified.Agent
	logger zerolog.Logger
}

// New builds a harness over fresh sessions of both pipelines.
func New(orch *orchestrator.Orchestrator, uni *unified.Agent, logger zerolog.Logger) *Harness {
	return &Harness{orch: orch, uni: uni, logger: logger.With().Str("component", "compare").Logger()}
}

// Run feeds every query to both pipelines and reports per-query and mean
// latency. Queries run in order so each session's memory accretes the same
// way it would interactively; within a query the two pipelines run
// concurrently since they share nothing.
func (h *Harness) Run(ctx context.Context, queries []string) *Report {
	report := &Report{Rows: make([]Row, 0, len(queries))}

	for _, query := range queries {
		row := Row{Query: query}

		var wg conc.WaitGroup
		wg.Go(func() {
			started := time.Now()
			result, err := h.orch.ProcessQuery(ctx, query)
			row.OrchestratedMillis = time.Since(started).Milliseconds()
			if err != nil {
				row.OrchestratedErr = err.Error()
				return
			}
			row.OrchestratedChars = len(result.Response)
		})
		wg.Go(func() {
			started := time.Now()
			result, err := h.uni.ProcessQuery(ctx, query)
			row.UnifiedMillis = time.Since(started).Milliseconds()
			if err != nil {
				row.UnifiedErr = err.Error()
				return
			}
			row.UnifiedChars = len(result.Response)
		})
		wg.Wait()

		h.logger.Info().
			Str("query", query).
			Int64("orchestrated_ms", row.OrchestratedMillis).
			Int64("unified_ms", row.UnifiedMillis).
			Msg("query compared")

		report.Rows = append(report.Rows, row)
	}

	report.MeanOrchestratedMillis = meanMillis(report.Rows, func(r Row) int64 { return r.OrchestratedMillis })
	report.MeanUnifiedMillis = meanMillis(report.Rows, func(r Row) int64 { return r.UnifiedMillis })

	return report
}

func meanMillis(rows []Row, pick func(Row) int64) float64 {
	if len(rows) == 0 {
		return 0
	}
	values := make([]float64, len(rows))
	for i, r := range rows {
		values[i] = float64(pick(r))
	}
	return stat.Mean(values, nil)
}
