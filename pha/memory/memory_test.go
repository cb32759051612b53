package memory

import (
	"encoding/json"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func rawList(items ...string) []json.RawMessage {
	out := make([]json.RawMessage, len(items))
	for i, s := range items {
		b, _ := json.Marshal(s)
		out[i] = b
	}
	return out
}

// TestMerge_Monotonicity verifies no element is ever removed across merges.
func TestMerge_Monotonicity(t *testing.T) {
	m := New()

	deltas := []*Delta{
		{Goals: rawList("sleep more"), Conditions: rawList("hypertension")},
		{Goals: rawList("run 5k"), KeyMetrics: rawList("resting HR 62")},
		{ActionItems: rawList("book checkup"), Goals: rawList("sleep more")},
	}

	var prevLens [6]int
	for _, d := range deltas {
		before := m.Clone()
		m.Merge(d)

		lens := [6]int{
			len(m.Goals), len(m.Conditions), len(m.Medications),
			len(m.KeyMetrics), len(m.ActionItems), len(m.ProgressNotes),
		}
		for i := range lens {
			assert.GreaterOrEqual(t, lens[i], prevLens[i], "list field %d shrank", i)
		}
		prevLens = lens

		for _, g := range before.Goals {
			assert.Contains(t, m.Goals, g)
		}
		for _, c := range before.Conditions {
			assert.Contains(t, m.Conditions, c)
		}
	}

	assert.Equal(t, []string{"sleep more", "run 5k"}, m.Goals)
}

// TestMerge_Dedup verifies a repeated element does not change list length.
func TestMerge_Dedup(t *testing.T) {
	m := New()
	m.Merge(&Delta{Goals: rawList("sleep more")})
	require.Len(t, m.Goals, 1)

	m.Merge(&Delta{Goals: rawList("sleep more")})
	assert.Len(t, m.Goals, 1)
}

// TestMerge_LifestyleOverwrite verifies last-write-wins on lifestyle keys.
func TestMerge_LifestyleOverwrite(t *testing.T) {
	m := New()
	m.Merge(&Delta{Lifestyle: map[string]string{"exercise": "3x/week"}})
	m.Merge(&Delta{Lifestyle: map[string]string{"exercise": "5x/week"}})

	assert.Equal(t, "5x/week", m.Lifestyle["exercise"])
	assert.Len(t, m.Lifestyle, 1)
}

// TestMerge_NonStringItems verifies object items are reduced to a string form.
func TestMerge_NonStringItems(t *testing.T) {
	m := New()
	m.Merge(&Delta{KeyMetrics: []json.RawMessage{json.RawMessage(`{"hr": 62}`)}})
	require.Len(t, m.KeyMetrics, 1)

	// The same object must dedupe against its own string form.
	m.Merge(&Delta{KeyMetrics: []json.RawMessage{json.RawMessage(`{"hr": 62}`)}})
	assert.Len(t, m.KeyMetrics, 1)
}

func TestMerge_Nil(t *testing.T) {
	m := New()
	m.Merge(nil)
	assert.Empty(t, m.Goals)
}

func TestSeed(t *testing.T) {
	m := New()
	m.Seed([]string{"Mild Hypertension", "Seasonal Allergies"}, []string{"Lisinopril"})
	m.Seed([]string{"Mild Hypertension"}, nil)

	assert.Equal(t, []string{"Mild Hypertension", "Seasonal Allergies"}, m.Conditions)
	assert.Equal(t, []string{"Lisinopril"}, m.Medications)
}

func TestClone_Isolation(t *testing.T) {
	m := New()
	m.Merge(&Delta{Goals: rawList("a"), Lifestyle: map[string]string{"diet": "ok"}})

	c := m.Clone()
	m.Merge(&Delta{Goals: rawList("b"), Lifestyle: map[string]string{"diet": "changed"}})

	assert.Equal(t, []string{"a"}, c.Goals)
	assert.Equal(t, "ok", c.Lifestyle["diet"])
}

// TestTranscript_Window verifies the bounded formatting window.
func TestTranscript_Window(t *testing.T) {
	tr := NewTranscript()
	for i := 0; i < 8; i++ {
		tr.AppendExchange(fmt.Sprintf("q%d", i), fmt.Sprintf("a%d", i))
	}

	assert.Equal(t, 8, tr.Pairs())

	recent := tr.Recent(10)
	require.Len(t, recent, 10)
	assert.Equal(t, "q3", recent[0].Content)
	assert.Equal(t, "a7", recent[9].Content)

	formatted := tr.Format(5)
	assert.Contains(t, formatted, "User: q3")
	assert.Contains(t, formatted, "Assistant: a7")
	assert.NotContains(t, formatted, "q2")
}

func TestTranscript_Empty(t *testing.T) {
	tr := NewTranscript()
	assert.Equal(t, "No previous conversation", tr.Format(5))
	assert.Nil(t, tr.Recent(6))
	assert.Equal(t, 0, tr.Pairs())
}
