package compare

import (
	"context"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ZanzyTHEbar/personal-health-agent/pha/gateway"
	"github.com/ZanzyTHEbar/personal-health-agent/pha/health"
	"github.com/ZanzyTHEbar/personal-health-agent/pha/orchestrator"
	"github.com/ZanzyTHEbar/personal-health-agent/pha/unified"
)

type cannedGateway struct{ reply string }

func (c *cannedGateway) Complete(context.Context, string, string, gateway.Options) (string, error) {
	return c.reply, nil
}

func TestRunProducesRowPerQuery(t *testing.T) {
	gw := &cannedGateway{reply: `{"approved": true}`}
	snapshot := health.MockSnapshot(7)
	logger := zerolog.Nop()

	h := New(
		orchestrator.New(gw, snapshot, logger),
		unified.New(gw, snapshot, logger),
		logger,
	)

	queries := []string{"how is my sleep?", "what about my blood pressure?"}
	report := h.Run(context.Background(), queries)

	require.Len(t, report.Rows, 2)
	for i, row := range report.Rows {
		assert.Equal(t, queries[i], row.Query)
		assert.Empty(t, row.OrchestratedErr)
		assert.Empty(t, row.UnifiedErr)
		assert.Greater(t, row.OrchestratedChars, 0)
		assert.Greater(t, row.UnifiedChars, 0)
	}
	assert.GreaterOrEqual(t, report.MeanOrchestratedMillis, float64(0))
}

func TestEmptyQueryList(t *testing.T) {
	gw := &cannedGateway{reply: "ok"}
	snapshot := health.MockSnapshot(7)
	logger := zerolog.Nop()

	h := New(
		orchestrator.New(gw, snapshot, logger),
		unified.New(gw, snapshot, logger),
		logger,
	)

	report := h.Run(context.Background(), nil)
	assert.Empty(t, report.Rows)
	assert.Zero(t, report.MeanOrchestratedMillis)
}
