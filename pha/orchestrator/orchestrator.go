// Package orchestrator runs the multi-agent pipeline: plan the turn,
// dispatch role agents in fixed order, synthesize a draft, reflect and
// optionally repair, then merge extracted facts into session memory. Every
// stage that parses model output has a fixed fallback so a malformed reply
// degrades the turn instead of wedging it.
package orchestrator

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/sourcegraph/conc/panics"

	"github.com/ZanzyTHEbar/personal-health-agent/pha/agent"
	"github.com/ZanzyTHEbar/personal-health-agent/pha/extract"
	"github.com/ZanzyTHEbar/personal-health-agent/pha/gateway"
	"github.com/ZanzyTHEbar/personal-health-agent/pha/health"
	"github.com/ZanzyTHEbar/personal-health-agent/pha/memory"
)

const (
	tempPlan       = 0.3
	tempReflection = 0.2
	tempRepair     = 0.5
	tempMemory     = 0.3

	// promptHistoryPairs bounds how much transcript the planner sees.
	promptHistoryPairs = 5

	// summaryRecentTurns bounds the raw turns a conversation summary carries.
	summaryRecentTurns = 6
)

const apologyText = "I apologize, I ran into a problem putting together a full answer. " +
	"Could you rephrase your question, or ask about one thing at a time?"

// AgentResult is one entry of the per-turn response bundle: either a text
// result or an error message, never both.
type AgentResult struct {
	Text string `json:"text,omitempty"`
	Err  string `json:"error,omitempty"`
}

// Bundle maps each dispatched agent to its result.
type Bundle map[agent.Role]AgentResult

// Reflection is the quality-check verdict on a draft response.
type Reflection struct {
	Approved              bool     `json:"approved"`
	Issues                []string `json:"issues"`
	SuggestedImprovements string   `json:"suggested_improvements"`
}

// Result is everything a completed turn produced.
type Result struct {
	Response   string         `json:"response"`
	Plan       *Plan          `json:"plan"`
	Agents     Bundle         `json:"agent_responses"`
	Reflection *Reflection    `json:"reflection"`
	Memory     *memory.Memory `json:"memory"`
}

// Summary describes the session so far.
type Summary struct {
	TotalTurns       int            `json:"total_turns"`
	Memory           *memory.Memory `json:"memory"`
	RecentTranscript []memory.Turn  `json:"recent_transcript"`
}

// Options tunes a session.
type Options struct {
	SeedMemory   bool // preload snapshot conditions/medications into memory
	HistoryPairs int  // transcript pairs surfaced to the planner prompt
}

// DefaultOptions returns the standard session settings.
func DefaultOptions() Options {
	return Options{SeedMemory: true, HistoryPairs: promptHistoryPairs}
}

// Orchestrator owns one session's memory and transcript and drives the
// staged pipeline for each query. Not safe for concurrent use; a session
// processes one turn at a time.
type Orchestrator struct {
	gw           gateway.Gateway
	analyst      *agent.Analyst
	expert       *agent.Expert
	coach        *agent.Coach
	mem          *memory.Memory
	transcript   *memory.Transcript
	historyPairs int
	logger       zerolog.Logger
}

// New builds an orchestrator session over the given snapshot with default
// options.
func New(gw gateway.Gateway, snapshot *health.Snapshot, logger zerolog.Logger) *Orchestrator {
	return NewWithOptions(gw, snapshot, DefaultOptions(), logger)
}

// NewWithOptions builds an orchestrator session with explicit settings.
func NewWithOptions(gw gateway.Gateway, snapshot *health.Snapshot, opts Options, logger zerolog.Logger) *Orchestrator {
	logger = logger.With().Str("session_id", uuid.NewString()).Logger()

	mem := memory.New()
	if opts.SeedMemory {
		mem.Seed(snapshot.ConditionNames(), snapshot.MedicationNames())
	}
	if opts.HistoryPairs <= 0 {
		opts.HistoryPairs = promptHistoryPairs
	}

	return &Orchestrator{
		gw:           gw,
		analyst:      agent.NewAnalyst(gw, snapshot, logger),
		expert:       agent.NewExpert(gw, snapshot, logger),
		coach:        agent.NewCoach(gw, snapshot, logger),
		mem:          mem,
		transcript:   memory.NewTranscript(),
		historyPairs: opts.HistoryPairs,
		logger:       logger,
	}
}

// ProcessQuery runs the full pipeline for one user query. It always
// returns a usable result; stage failures degrade the turn rather than
// abort it.
func (o *Orchestrator) ProcessQuery(ctx context.Context, query string) (*Result, error) {
	started := time.Now()

	plan := o.plan(ctx, query)
	o.logger.Info().Str("main_agent", plan.MainAgent).Strs("supporting", plan.SupportingAgents).Msg("plan ready")

	bundle := o.dispatch(ctx, query, plan)

	draft := synthesize(plan, bundle)
	reflection, final := o.reflect(ctx, query, plan, bundle, draft)

	o.updateMemory(ctx, query, final)
	o.transcript.AppendExchange(query, final)

	o.logger.Info().
		Dur("elapsed", time.Since(started)).
		Int("agents_dispatched", len(bundle)).
		Bool("approved", reflection.Approved).
		Msg("turn complete")

	return &Result{
		Response:   final,
		Plan:       plan,
		Agents:     bundle,
		Reflection: reflection,
		Memory:     o.mem.Clone(),
	}, nil
}

// ConversationSummary reports turn count, current memory, and a bounded
// window of recent transcript.
func (o *Orchestrator) ConversationSummary() *Summary {
	return &Summary{
		TotalTurns:       o.transcript.Pairs(),
		Memory:           o.mem.Clone(),
		RecentTranscript: o.transcript.Recent(summaryRecentTurns),
	}
}

func (o *Orchestrator) plan(ctx context.Context, query string) *Plan {
	user := fmt.Sprintf(plannerTemplate, o.transcript.Format(o.historyPairs), query)
	reply, err := o.gw.Complete(ctx, plannerSystemPrompt, user, gateway.Options{Temperature: tempPlan})
	if err != nil {
		o.logger.Warn().Err(err).Msg("intent call failed, using fallback plan")
		return fallbackPlan(query)
	}
	return parsePlan(reply, query, o.logger)
}

// dispatch runs the planned agents in fixed Analytical, Expert, Coach
// order, forwarding earlier outputs as context to later agents. A failing
// or panicking agent becomes an error entry; dispatch continues.
func (o *Orchestrator) dispatch(ctx context.Context, query string, plan *Plan) Bundle {
	bundle := Bundle{}
	var analystPlan, analystText, expertText string

	for _, role := range agent.Roles() {
		task := strings.TrimSpace(plan.TaskFor(role))
		if task == "" {
			continue
		}

		var text string
		var err error
		recovered := panics.Try(func() {
			switch role {
			case agent.RoleAnalytical:
				var analysis *agent.Analysis
				analysis, err = o.analyst.Analyze(ctx, task)
				if err == nil {
					analystPlan = analysis.Plan
					text = fmt.Sprintf("Analysis plan:\n%s\n\nProcedure:\n%s", analysis.Plan, analysis.Procedure)
					analystText = text
				}
			case agent.RoleExpert:
				if analystPlan != "" {
					text, err = o.expert.SynthesizeInsights(ctx, task, analystPlan)
				} else {
					text, err = o.expert.AnswerQuestion(ctx, task)
				}
				if err == nil {
					expertText = text
				}
			case agent.RoleCoach:
				insights := joinNonEmpty(analystText, expertText)
				if wantsGoalTalk(task) {
					text, err = o.coach.IdentifyGoals(ctx, query, insights)
				} else {
					text, err = o.coach.Recommend(ctx, o.mem.Goals, analystText, expertText)
				}
			}
		})
		if recovered != nil {
			err = recovered.AsError()
		}

		if err != nil {
			o.logger.Error().Err(err).Str("agent", role.String()).Msg("agent call failed")
			bundle[role] = AgentResult{Err: err.Error()}
			continue
		}
		bundle[role] = AgentResult{Text: text}
	}

	return bundle
}

// synthesize builds the user-facing draft from the bundle. The main
// agent's text leads, with an apology substituted when that entry is an
// error; a non-erroring Coach contribution is still appended after it.
// Failed supporting agents are dropped silently.
func synthesize(plan *Plan, bundle Bundle) string {
	main := plan.Main()

	entry, ok := bundle[main]
	if main == agent.RoleCoach && ok && entry.Err == "" {
		// Coach output is already a synthesis.
		return entry.Text
	}

	draft := apologyText
	if ok && entry.Err == "" {
		draft = entry.Text
		if main == agent.RoleAnalytical {
			draft = "Based on my analysis:\n\n" + draft
		}
	}

	if main != agent.RoleCoach {
		if coach, ok := bundle[agent.RoleCoach]; ok && coach.Err == "" {
			draft += "\n\n" + coach.Text
		}
	}

	return draft
}

// reflect reviews the draft and, if the reviewer rejects it, issues a
// single repair call. There is no second review of the repaired text.
func (o *Orchestrator) reflect(ctx context.Context, query string, plan *Plan, bundle Bundle, draft string) (*Reflection, string) {
	reflection := &Reflection{Approved: true}

	reply, err := o.gw.Complete(ctx, reflectionSystemPrompt,
		fmt.Sprintf(reflectionTemplate, query, jsonText(plan), jsonText(bundle), draft),
		gateway.Options{Temperature: tempReflection})
	if err != nil {
		o.logger.Warn().Err(err).Msg("reflection call failed, keeping draft")
		return reflection, draft
	}

	if err := extract.Decode(reply, reflection); err != nil {
		o.logger.Warn().Err(err).Msg("reflection unparseable, defaulting to approved")
		return &Reflection{Approved: true}, draft
	}

	if reflection.Approved {
		return reflection, draft
	}

	o.logger.Info().Strs("issues", reflection.Issues).Msg("draft rejected, repairing")

	repaired, err := o.gw.Complete(ctx, repairSystemPrompt,
		fmt.Sprintf(repairTemplate, query, draft, reflection.SuggestedImprovements),
		gateway.Options{Temperature: tempRepair})
	if err != nil || strings.TrimSpace(repaired) == "" {
		o.logger.Warn().Err(err).Msg("repair call failed, keeping draft")
		return reflection, draft
	}

	return reflection, repaired
}

// updateMemory extracts durable facts from the completed exchange and
// merges them. Extraction failure leaves memory untouched for this turn.
func (o *Orchestrator) updateMemory(ctx context.Context, query, response string) {
	reply, err := o.gw.Complete(ctx, memoryExtractionSystemPrompt,
		fmt.Sprintf(memoryExtractionTemplate, o.mem.JSON(), query, response),
		gateway.Options{Temperature: tempMemory})
	if err != nil {
		o.logger.Warn().Err(err).Msg("memory extraction call failed, memory unchanged")
		return
	}

	var delta memory.Delta
	if err := extract.Decode(reply, &delta); err != nil {
		o.logger.Warn().Err(err).Msg("memory delta unparseable, memory unchanged")
		return
	}

	o.mem.Merge(&delta)
}

// wantsGoalTalk detects goal-setting or motivational intent in the Coach's
// assigned task, routing it to goal identification instead of
// recommendations. The fallback plan assigns the raw query as the task, so
// goal-seeking queries route the same way when planning fails.
func wantsGoalTalk(task string) bool {
	t := strings.ToLower(task)
	return strings.Contains(t, "goal") || strings.Contains(t, "motivat")
}

func joinNonEmpty(parts ...string) string {
	kept := parts[:0:0]
	for _, p := range parts {
		if p != "" {
			kept = append(kept, p)
		}
	}
	return strings.Join(kept, "\n\n")
}

func jsonText(v any) string {
	b, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return "{}"
	}
	return string(b)
}
