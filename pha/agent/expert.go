package agent

import (
	"context"
	"fmt"

	"github.com/rs/zerolog"

	"github.com/ZanzyTHEbar/personal-health-agent/pha/gateway"
	"github.com/ZanzyTHEbar/personal-health-agent/pha/health"
)

const (
	tempAnswerQuestion = 0.4
	tempSynthesize     = 0.5
)

// Expert is the domain-expert role: medical knowledge grounded in the
// user's records and labs. Stateless.
type Expert struct {
	gw       gateway.Gateway
	snapshot *health.Snapshot
	system   string
	logger   zerolog.Logger
}

// NewExpert creates the Expert agent over the given snapshot.
func NewExpert(gw gateway.Gateway, snapshot *health.Snapshot, logger zerolog.Logger) *Expert {
	return &Expert{
		gw:       gw,
		snapshot: snapshot,
		system:   fmt.Sprintf(expertSystemPrompt, snapshot.FormatSections()),
		logger:   logger.With().Str("agent", RoleExpert.String()).Logger(),
	}
}

// AnswerQuestion answers a direct health question with personal context.
func (e *Expert) AnswerQuestion(ctx context.Context, question string) (string, error) {
	user := fmt.Sprintf(answerQuestionTemplate, question, summaryBlock(e.snapshot))
	return e.gw.Complete(ctx, e.system, user, gateway.Options{Temperature: tempAnswerQuestion})
}

// SynthesizeInsights combines the records, wearable summary, and an
// optional Analytical-agent plan into personalized insights.
func (e *Expert) SynthesizeInsights(ctx context.Context, query, analysisPlan string) (string, error) {
	if analysisPlan == "" {
		analysisPlan = "No statistical analysis available"
	}
	user := fmt.Sprintf(synthesizeTemplate, query, analysisPlan)
	return e.gw.Complete(ctx, e.system, user, gateway.Options{Temperature: tempSynthesize})
}

func summaryBlock(s *health.Snapshot) string {
	return fmt.Sprintf(
		"Resting HR %.1f bpm, sleep %.1f h, steps %.0f/day, HRV %.1f ms (30-day averages)",
		s.Summary.AvgRestingHeartRate, s.Summary.AvgSleepHours,
		s.Summary.AvgDailySteps, s.Summary.AvgHRV,
	)
}
