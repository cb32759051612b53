package agent

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ZanzyTHEbar/personal-health-agent/pha/gateway"
	"github.com/ZanzyTHEbar/personal-health-agent/pha/health"
)

type recordedCall struct {
	system string
	user   string
	opts   gateway.Options
}

// stubGateway records every call and replays canned replies in order.
type stubGateway struct {
	calls   []recordedCall
	replies []string
	err     error
}

func (s *stubGateway) Complete(_ context.Context, system, user string, opts gateway.Options) (string, error) {
	s.calls = append(s.calls, recordedCall{system: system, user: user, opts: opts})
	if s.err != nil {
		return "", s.err
	}
	if len(s.replies) == 0 {
		return "ok", nil
	}
	reply := s.replies[0]
	s.replies = s.replies[1:]
	return reply, nil
}

func testSnapshot(t *testing.T) *health.Snapshot {
	t.Helper()
	return health.MockSnapshot(7)
}

func TestParseRole(t *testing.T) {
	for in, want := range map[string]Role{
		"Analytical": RoleAnalytical,
		"analyst":    RoleAnalytical,
		"EXPERT":     RoleExpert,
		"medical":    RoleExpert,
		" coach ":    RoleCoach,
	} {
		got, err := ParseRole(in)
		require.NoError(t, err, in)
		assert.Equal(t, want, got, in)
	}

	_, err := ParseRole("astrologer")
	assert.Error(t, err)
}

func TestAnalystTwoStagePipeline(t *testing.T) {
	gw := &stubGateway{replies: []string{"the plan", "the procedure"}}
	a := NewAnalyst(gw, testSnapshot(t), zerolog.Nop())

	result, err := a.Analyze(context.Background(), "how is my sleep trending?")
	require.NoError(t, err)

	require.Len(t, gw.calls, 2)
	assert.InDelta(t, 0.3, gw.calls[0].opts.Temperature, 1e-6)
	assert.InDelta(t, 0.2, gw.calls[1].opts.Temperature, 1e-6)

	// Stage two receives stage one's plan and the available series.
	assert.Contains(t, gw.calls[1].user, "the plan")
	assert.Contains(t, gw.calls[1].user, "sleep_hours")

	assert.Equal(t, "how is my sleep trending?", result.Query)
	assert.Equal(t, "the plan", result.Plan)
	assert.Equal(t, "the procedure", result.Procedure)
}

func TestAnalystPlanFailureStopsPipeline(t *testing.T) {
	gw := &stubGateway{err: errors.New("backend down")}
	a := NewAnalyst(gw, testSnapshot(t), zerolog.Nop())

	_, err := a.Analyze(context.Background(), "query")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "analysis plan failed")
	assert.Len(t, gw.calls, 1)
}

func TestExpertAnswerQuestion(t *testing.T) {
	gw := &stubGateway{replies: []string{"an answer"}}
	e := NewExpert(gw, testSnapshot(t), zerolog.Nop())

	reply, err := e.AnswerQuestion(context.Background(), "is my resting heart rate healthy?")
	require.NoError(t, err)
	assert.Equal(t, "an answer", reply)

	require.Len(t, gw.calls, 1)
	assert.InDelta(t, 0.4, gw.calls[0].opts.Temperature, 1e-6)
	assert.Contains(t, gw.calls[0].user, "is my resting heart rate healthy?")
	assert.Contains(t, gw.calls[0].user, "30-day averages")
	assert.Contains(t, gw.calls[0].system, "Medical Conditions")
}

func TestExpertSynthesizeDefaults(t *testing.T) {
	gw := &stubGateway{}
	e := NewExpert(gw, testSnapshot(t), zerolog.Nop())

	_, err := e.SynthesizeInsights(context.Background(), "q", "")
	require.NoError(t, err)

	require.Len(t, gw.calls, 1)
	assert.InDelta(t, 0.5, gw.calls[0].opts.Temperature, 1e-6)
	assert.Contains(t, gw.calls[0].user, "No statistical analysis available")
}

func TestCoachTranscriptGrowth(t *testing.T) {
	gw := &stubGateway{replies: []string{"what motivates you?", "glad to hear it"}}
	c := NewCoach(gw, testSnapshot(t), zerolog.Nop())

	_, err := c.IdentifyGoals(context.Background(), "I want to sleep better", "")
	require.NoError(t, err)
	assert.Equal(t, 2, c.HistoryLen())

	_, err = c.HandleFeedback(context.Background(), "try a wind-down routine", "that worked well")
	require.NoError(t, err)
	assert.Equal(t, 4, c.HistoryLen())

	// Recommend reads the transcript but never appends.
	_, err = c.Recommend(context.Background(), []string{"Sleep 8 hours"}, "", "")
	require.NoError(t, err)
	assert.Equal(t, 4, c.HistoryLen())
}

func TestCoachIdentifyGoalsPrompt(t *testing.T) {
	gw := &stubGateway{replies: []string{"first reply", "second reply"}}
	c := NewCoach(gw, testSnapshot(t), zerolog.Nop())

	_, err := c.IdentifyGoals(context.Background(), "first message", "some insights")
	require.NoError(t, err)
	assert.Contains(t, gw.calls[0].user, "No previous conversation")
	assert.Contains(t, gw.calls[0].user, "some insights")

	_, err = c.IdentifyGoals(context.Background(), "second message", "")
	require.NoError(t, err)
	assert.Contains(t, gw.calls[1].user, "User: first message")
	assert.Contains(t, gw.calls[1].user, "Assistant: first reply")
	assert.Contains(t, gw.calls[1].user, "No insights available yet")
}

func TestCoachRecommendDefaults(t *testing.T) {
	gw := &stubGateway{}
	c := NewCoach(gw, testSnapshot(t), zerolog.Nop())

	_, err := c.Recommend(context.Background(), nil, "", "")
	require.NoError(t, err)

	require.Len(t, gw.calls, 1)
	assert.InDelta(t, 0.6, gw.calls[0].opts.Temperature, 1e-6)
	assert.Contains(t, gw.calls[0].user, "- Improve overall health")
	assert.Contains(t, gw.calls[0].user, "No data analysis available")
	assert.Contains(t, gw.calls[0].user, "No medical insights available")
}

func TestCoachFeedbackTemperature(t *testing.T) {
	gw := &stubGateway{}
	c := NewCoach(gw, testSnapshot(t), zerolog.Nop())

	_, err := c.HandleFeedback(context.Background(), "walk daily", "too ambitious")
	require.NoError(t, err)

	require.Len(t, gw.calls, 1)
	assert.InDelta(t, 0.7, gw.calls[0].opts.Temperature, 1e-6)
	assert.True(t, strings.Contains(gw.calls[0].user, "too ambitious"))
}
