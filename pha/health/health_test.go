package health

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMockSnapshot_Deterministic(t *testing.T) {
	a := MockSnapshot(7)
	b := MockSnapshot(7)

	assert.Equal(t, a.Summary, b.Summary)
	assert.Equal(t, a.Wearable["resting_heart_rate"], b.Wearable["resting_heart_rate"])
}

func TestMockSnapshot_Shape(t *testing.T) {
	s := MockSnapshot(1)

	require.Len(t, s.Wearable["daily_steps"], 30)
	assert.Greater(t, s.Summary.AvgRestingHeartRate, 40.0)
	assert.Less(t, s.Summary.AvgRestingHeartRate, 100.0)
	assert.Contains(t, []string{"improving", "declining", "stable"}, s.Summary.SleepQualityTrend)
	assert.Contains(t, []string{"high", "moderate", "low"}, s.Summary.ActivityConsistency)
	assert.NotEmpty(t, s.Labs.Results["hba1c"].Unit)
}

func TestNames(t *testing.T) {
	s := MockSnapshot(1)

	assert.Equal(t, []string{"Mild Hypertension", "Seasonal Allergies"}, s.ConditionNames())
	assert.Equal(t, []string{"Lisinopril", "Loratadine"}, s.MedicationNames())
}

func TestFormatSections(t *testing.T) {
	s := MockSnapshot(1)
	text := s.FormatSections()

	assert.Contains(t, text, "**User Profile:**")
	assert.Contains(t, text, "**Medical Conditions:** Mild Hypertension, Seasonal Allergies")
	assert.Contains(t, text, "Lisinopril (10mg daily)")
	assert.Contains(t, text, "**Recent Health Metrics (30-day averages):**")
	assert.Contains(t, text, "**Recent Lab Results (2025-07-14):**")
	assert.Contains(t, text, "resting_heart_rate (30 measurements)")
}

func TestDescribeSeries(t *testing.T) {
	s := MockSnapshot(1)
	desc := DescribeSeries(s)
	assert.Contains(t, desc, "- daily_steps: 30 data points")

	empty := &Snapshot{}
	assert.Equal(t, "No time-series data available", DescribeSeries(empty))
}
