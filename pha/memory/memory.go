// Package memory holds the session-scoped conversation state: the accreted
// entity memory and the transcript. Both are owned by exactly one pipeline
// (orchestrator or unified agent) and mutated at fixed points per turn.
package memory

import (
	"encoding/json"
	"fmt"
)

// Memory is the durable cross-turn state. The five list fields are
// append-only and deduplicated by exact string form; Lifestyle merges by
// key overwrite. Nothing is ever removed within a session.
type Memory struct {
	Goals         []string          `json:"goals"`
	Conditions    []string          `json:"conditions"`
	Medications   []string          `json:"medications"`
	KeyMetrics    []string          `json:"key_metrics"`
	ActionItems   []string          `json:"action_items"`
	ProgressNotes []string          `json:"progress_notes"`
	Lifestyle     map[string]string `json:"lifestyle"`
}

// New returns an empty Memory with all collections initialized.
func New() *Memory {
	return &Memory{
		Goals:         []string{},
		Conditions:    []string{},
		Medications:   []string{},
		KeyMetrics:    []string{},
		ActionItems:   []string{},
		ProgressNotes: []string{},
		Lifestyle:     map[string]string{},
	}
}

// Delta is the shape of an LLM memory-extraction result. List elements are
// raw so that non-string items (the model sometimes emits objects) can be
// reduced to their string form before merging.
type Delta struct {
	Goals         []json.RawMessage `json:"goals"`
	Conditions    []json.RawMessage `json:"conditions"`
	Medications   []json.RawMessage `json:"medications"`
	KeyMetrics    []json.RawMessage `json:"key_metrics"`
	ActionItems   []json.RawMessage `json:"action_items"`
	ProgressNotes []json.RawMessage `json:"progress_notes"`
	Lifestyle     map[string]string `json:"lifestyle"`
}

// Merge folds a delta into the memory. This is the single mutation point
// for entity memory; every list append is deduplicated against the string
// form of what is already present, and lifestyle keys overwrite.
func (m *Memory) Merge(d *Delta) {
	if d == nil {
		return
	}

	m.Goals = appendNew(m.Goals, d.Goals)
	m.Conditions = appendNew(m.Conditions, d.Conditions)
	m.Medications = appendNew(m.Medications, d.Medications)
	m.KeyMetrics = appendNew(m.KeyMetrics, d.KeyMetrics)
	m.ActionItems = appendNew(m.ActionItems, d.ActionItems)
	m.ProgressNotes = appendNew(m.ProgressNotes, d.ProgressNotes)

	for k, v := range d.Lifestyle {
		m.Lifestyle[k] = v
	}
}

// Seed preloads conditions and medications from a health-record snapshot.
// Called once at session start, before any turn runs.
func (m *Memory) Seed(conditions, medications []string) {
	m.Conditions = appendNewStrings(m.Conditions, conditions)
	m.Medications = appendNewStrings(m.Medications, medications)
}

// Clone returns a deep copy, used for snapshots handed back to callers so
// later turns cannot mutate what a caller already holds.
func (m *Memory) Clone() *Memory {
	c := &Memory{
		Goals:         append([]string{}, m.Goals...),
		Conditions:    append([]string{}, m.Conditions...),
		Medications:   append([]string{}, m.Medications...),
		KeyMetrics:    append([]string{}, m.KeyMetrics...),
		ActionItems:   append([]string{}, m.ActionItems...),
		ProgressNotes: append([]string{}, m.ProgressNotes...),
		Lifestyle:     make(map[string]string, len(m.Lifestyle)),
	}
	for k, v := range m.Lifestyle {
		c.Lifestyle[k] = v
	}
	return c
}

// JSON renders the memory as indented JSON for prompt embedding.
func (m *Memory) JSON() string {
	b, err := json.MarshalIndent(m, "", "  ")
	if err != nil {
		return "{}"
	}
	return string(b)
}

// appendNew appends the string form of each raw item not already present.
func appendNew(existing []string, items []json.RawMessage) []string {
	if len(items) == 0 {
		return existing
	}

	seen := make(map[string]struct{}, len(existing))
	for _, s := range existing {
		seen[s] = struct{}{}
	}

	for _, item := range items {
		s := stringForm(item)
		if s == "" {
			continue
		}
		if _, ok := seen[s]; ok {
			continue
		}
		seen[s] = struct{}{}
		existing = append(existing, s)
	}

	return existing
}

func appendNewStrings(existing, items []string) []string {
	seen := make(map[string]struct{}, len(existing))
	for _, s := range existing {
		seen[s] = struct{}{}
	}
	for _, s := range items {
		if s == "" {
			continue
		}
		if _, ok := seen[s]; ok {
			continue
		}
		seen[s] = struct{}{}
		existing = append(existing, s)
	}
	return existing
}

// stringForm reduces a raw JSON value to the string used for dedup and
// storage: unquoted for JSON strings, compact source text otherwise.
func stringForm(raw json.RawMessage) string {
	var s string
	if err := json.Unmarshal(raw, &s); err == nil {
		return s
	}
	var v any
	if err := json.Unmarshal(raw, &v); err != nil {
		return ""
	}
	return fmt.Sprintf("%v", v)
}
