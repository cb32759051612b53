// Package unified is the single-call baseline: one model call per turn
// doing analysis, expertise, and coaching implicitly from one large system
// prompt, with the same memory-merge and transcript contract as the
// orchestrated pipeline. Exists for side-by-side comparison.
package unified

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/ZanzyTHEbar/personal-health-agent/pha/extract"
	"github.com/ZanzyTHEbar/personal-health-agent/pha/gateway"
	"github.com/ZanzyTHEbar/personal-health-agent/pha/health"
	"github.com/ZanzyTHEbar/personal-health-agent/pha/memory"
)

const (
	tempRespond = 0.6
	tempMemory  = 0.3

	promptHistoryPairs = 5
	summaryRecentTurns = 6
)

// Result is what one unified turn produced.
type Result struct {
	Response string         `json:"response"`
	Memory   *memory.Memory `json:"memory"`
}

// Summary mirrors the orchestrated pipeline's conversation summary.
type Summary struct {
	TotalTurns       int            `json:"total_turns"`
	Memory           *memory.Memory `json:"memory"`
	RecentTranscript []memory.Turn  `json:"recent_transcript"`
}

// Options tunes a session.
type Options struct {
	SeedMemory   bool // preload snapshot conditions/medications into memory
	HistoryPairs int  // transcript pairs surfaced to the prompt
}

// DefaultOptions returns the standard session settings.
func DefaultOptions() Options {
	return Options{SeedMemory: true, HistoryPairs: promptHistoryPairs}
}

// Agent is a single-call session. It owns its own memory and transcript,
// symmetric with the orchestrator. Not safe for concurrent use.
type Agent struct {
	gw           gateway.Gateway
	snapshot     *health.Snapshot
	mem          *memory.Memory
	transcript   *memory.Transcript
	historyPairs int
	logger       zerolog.Logger
}

// New builds a unified session over the given snapshot with default
// options.
func New(gw gateway.Gateway, snapshot *health.Snapshot, logger zerolog.Logger) *Agent {
	return NewWithOptions(gw, snapshot, DefaultOptions(), logger)
}

// NewWithOptions builds a unified session with explicit settings.
func NewWithOptions(gw gateway.Gateway, snapshot *health.Snapshot, opts Options, logger zerolog.Logger) *Agent {
	mem := memory.New()
	if opts.SeedMemory {
		mem.Seed(snapshot.ConditionNames(), snapshot.MedicationNames())
	}
	if opts.HistoryPairs <= 0 {
		opts.HistoryPairs = promptHistoryPairs
	}

	return &Agent{
		gw:           gw,
		snapshot:     snapshot,
		mem:          mem,
		transcript:   memory.NewTranscript(),
		historyPairs: opts.HistoryPairs,
		logger:       logger.With().Str("session_id", uuid.NewString()).Str("pipeline", "unified").Logger(),
	}
}

// ProcessQuery answers a query with one model call, then merges extracted
// facts and appends the exchange, identically to the orchestrated path.
func (a *Agent) ProcessQuery(ctx context.Context, query string) (*Result, error) {
	started := time.Now()

	// The system prompt is rebuilt every turn so it embeds the memory as
	// merged by the previous turn.
	system := fmt.Sprintf(unifiedSystemPrompt, a.snapshot.FormatSections(), a.mem.JSON())
	user := fmt.Sprintf(unifiedTemplate, a.transcript.Format(a.historyPairs), query)

	response, err := a.gw.Complete(ctx, system, user, gateway.Options{Temperature: tempRespond})
	if err != nil {
		return nil, fmt.Errorf("unified call failed: %w", err)
	}

	a.updateMemory(ctx, query, response)
	a.transcript.AppendExchange(query, response)

	a.logger.Info().Dur("elapsed", time.Since(started)).Msg("turn complete")

	return &Result{Response: response, Memory: a.mem.Clone()}, nil
}

// ConversationSummary reports turn count, current memory, and a bounded
// window of recent transcript.
func (a *Agent) ConversationSummary() *Summary {
	return &Summary{
		TotalTurns:       a.transcript.Pairs(),
		Memory:           a.mem.Clone(),
		RecentTranscript: a.transcript.Recent(summaryRecentTurns),
	}
}

func (a *Agent) updateMemory(ctx context.Context, query, response string) {
	reply, err := a.gw.Complete(ctx, memoryExtractionSystemPrompt,
		fmt.Sprintf(memoryExtractionTemplate, a.mem.JSON(), query, response),
		gateway.Options{Temperature: tempMemory})
	if err != nil {
		a.logger.Warn().Err(err).Msg("memory extraction call failed, memory unchanged")
		return
	}

	var delta memory.Delta
	if err := extract.Decode(reply, &delta); err != nil {
		a.logger.Warn().Err(err).Msg("memory delta unparseable, memory unchanged")
		return
	}

	a.mem.Merge(&delta)
}
