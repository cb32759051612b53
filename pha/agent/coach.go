package agent

import (
	"context"
	"fmt"
	"strings"

	"github.com/rs/zerolog"

	"github.com/ZanzyTHEbar/personal-health-agent/pha/gateway"
	"github.com/ZanzyTHEbar/personal-health-agent/pha/health"
	"github.com/ZanzyTHEbar/personal-health-agent/pha/memory"
)

const (
	tempIdentifyGoals = 0.7
	tempRecommend     = 0.6
	tempFeedback      = 0.7

	// coachHistoryTurns bounds how many raw transcript turns the coach
	// surfaces into its prompts.
	coachHistoryTurns = 10
)

// Coach is the behavior-coaching role. Unlike the other agents it keeps a
// rolling transcript of its own goal and feedback exchanges; recommendation
// calls read it but do not append.
type Coach struct {
	gw         gateway.Gateway
	system     string
	transcript *memory.Transcript
	logger     zerolog.Logger
}

// NewCoach creates the Coach agent over the given snapshot.
func NewCoach(gw gateway.Gateway, snapshot *health.Snapshot, logger zerolog.Logger) *Coach {
	return &Coach{
		gw:         gw,
		system:     fmt.Sprintf(coachSystemPrompt, snapshot.FormatSections()),
		transcript: memory.NewTranscript(),
		logger:     logger.With().Str("agent", RoleCoach.String()).Logger(),
	}
}

// IdentifyGoals engages the user to surface goals and motivations. The
// exchange is appended to the coach transcript.
func (c *Coach) IdentifyGoals(ctx context.Context, userMessage, healthInsights string) (string, error) {
	if healthInsights == "" {
		healthInsights = "No insights available yet"
	}

	user := fmt.Sprintf(identifyGoalsTemplate, c.history(), userMessage, healthInsights)
	reply, err := c.gw.Complete(ctx, c.system, user, gateway.Options{Temperature: tempIdentifyGoals})
	if err != nil {
		return "", err
	}

	c.transcript.AppendExchange(userMessage, reply)
	c.logger.Debug().Int("history_turns", c.HistoryLen()).Msg("goals exchange recorded")
	return reply, nil
}

// Recommend produces personalized recommendations from the identified
// goals plus whatever the other agents contributed. Does not touch the
// coach transcript.
func (c *Coach) Recommend(ctx context.Context, goals []string, analystText, expertText string) (string, error) {
	if len(goals) == 0 {
		goals = []string{"Improve overall health"}
	}
	if analystText == "" {
		analystText = "No data analysis available"
	}
	if expertText == "" {
		expertText = "No medical insights available"
	}

	bullets := make([]string, len(goals))
	for i, g := range goals {
		bullets[i] = "- " + g
	}

	user := fmt.Sprintf(recommendTemplate, strings.Join(bullets, "\n"), analystText, expertText)
	return c.gw.Complete(ctx, c.system, user, gateway.Options{Temperature: tempRecommend})
}

// HandleFeedback adjusts the coaching in response to user feedback on a
// previous recommendation. The exchange is appended to the coach transcript.
func (c *Coach) HandleFeedback(ctx context.Context, previousRecommendation, feedback string) (string, error) {
	user := fmt.Sprintf(feedbackTemplate, previousRecommendation, feedback, c.history())
	reply, err := c.gw.Complete(ctx, c.system, user, gateway.Options{Temperature: tempFeedback})
	if err != nil {
		return "", err
	}

	c.transcript.AppendExchange(feedback, reply)
	return reply, nil
}

// HistoryLen reports how many raw turns the coach transcript holds.
func (c *Coach) HistoryLen() int {
	return c.transcript.Pairs() * 2
}

func (c *Coach) history() string {
	return c.transcript.Format(coachHistoryTurns / 2)
}
