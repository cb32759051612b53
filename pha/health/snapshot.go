// Package health defines the read-only health-context snapshot consumed by
// the pipelines, plus a mock generator for development and tests. The core
// only reads name fields and summary statistics; it never validates units
// or reference ranges.
package health

import (
	"fmt"
	"strings"
)

// UserProfile holds basic demographics.
type UserProfile struct {
	Age           int     `json:"age"`
	Gender        string  `json:"gender"`
	HeightCm      float64 `json:"height_cm"`
	WeightKg      float64 `json:"weight_kg"`
	ActivityLevel string  `json:"activity_level"`
}

// Condition is a diagnosed condition record.
type Condition struct {
	Name      string `json:"name"`
	Diagnosed string `json:"diagnosed,omitempty"`
	Severity  string `json:"severity,omitempty"`
}

// Medication is a prescribed medication record.
type Medication struct {
	Name   string `json:"name"`
	Dosage string `json:"dosage,omitempty"`
	Reason string `json:"reason,omitempty"`
}

// Records groups the medical-record portion of the snapshot.
type Records struct {
	Conditions    []Condition  `json:"conditions"`
	Medications   []Medication `json:"medications"`
	Allergies     []string     `json:"allergies"`
	FamilyHistory []string     `json:"family_history"`
}

// Biomarker is one named lab result.
type Biomarker struct {
	Value          float64 `json:"value"`
	Unit           string  `json:"unit"`
	ReferenceRange string  `json:"reference_range,omitempty"`
}

// LabResults holds the most recent lab panel.
type LabResults struct {
	LastTestDate string               `json:"last_test_date"`
	Results      map[string]Biomarker `json:"results"`
}

// MetricsSummary holds 30-day summary statistics over the wearable series.
type MetricsSummary struct {
	AvgRestingHeartRate float64 `json:"avg_resting_heart_rate"`
	AvgSleepHours       float64 `json:"avg_sleep_hours"`
	AvgDailySteps       float64 `json:"avg_daily_steps"`
	AvgHRV              float64 `json:"avg_hrv"`
	SleepQualityTrend   string  `json:"sleep_quality_trend"`
	ActivityConsistency string  `json:"activity_consistency"`
}

// Snapshot is the full health-context record handed to a session at start.
type Snapshot struct {
	Profile  UserProfile          `json:"user_profile"`
	Records  Records              `json:"health_records"`
	Wearable map[string][]float64 `json:"wearable_data"`
	Summary  MetricsSummary       `json:"metrics_summary"`
	Labs     LabResults           `json:"lab_results"`
}

// ConditionNames returns the bare names of all recorded conditions.
func (s *Snapshot) ConditionNames() []string {
	names := make([]string, 0, len(s.Records.Conditions))
	for _, c := range s.Records.Conditions {
		names = append(names, c.Name)
	}
	return names
}

// MedicationNames returns the bare names of all recorded medications.
func (s *Snapshot) MedicationNames() []string {
	names := make([]string, 0, len(s.Records.Medications))
	for _, m := range s.Records.Medications {
		names = append(names, m.Name)
	}
	return names
}

// FormatSections renders the snapshot as the labeled prompt sections used
// by the unified system prompt and the role agents' context blocks.
func (s *Snapshot) FormatSections() string {
	var sections []string

	sections = append(sections, fmt.Sprintf(
		"**User Profile:**\n- Age: %d years\n- Gender: %s\n- Height: %.0f cm\n- Weight: %.0f kg\n- Activity Level: %s",
		s.Profile.Age, s.Profile.Gender, s.Profile.HeightCm, s.Profile.WeightKg, s.Profile.ActivityLevel))

	if names := s.ConditionNames(); len(names) > 0 {
		sections = append(sections, "**Medical Conditions:** "+strings.Join(names, ", "))
	}

	if len(s.Records.Medications) > 0 {
		meds := make([]string, 0, len(s.Records.Medications))
		for _, m := range s.Records.Medications {
			if m.Dosage != "" {
				meds = append(meds, fmt.Sprintf("%s (%s)", m.Name, m.Dosage))
			} else {
				meds = append(meds, m.Name)
			}
		}
		sections = append(sections, "**Medications:** "+strings.Join(meds, ", "))
	}

	if len(s.Records.Allergies) > 0 {
		sections = append(sections, "**Allergies:** "+strings.Join(s.Records.Allergies, ", "))
	}
	if len(s.Records.FamilyHistory) > 0 {
		sections = append(sections, "**Family History:** "+strings.Join(s.Records.FamilyHistory, ", "))
	}

	sections = append(sections, fmt.Sprintf(
		"**Recent Health Metrics (30-day averages):**\n- Resting Heart Rate: %.1f bpm\n- Sleep Duration: %.1f hours\n- Daily Steps: %.0f\n- Heart Rate Variability: %.1f ms\n- Sleep Quality Trend: %s\n- Activity Consistency: %s",
		s.Summary.AvgRestingHeartRate, s.Summary.AvgSleepHours, s.Summary.AvgDailySteps,
		s.Summary.AvgHRV, s.Summary.SleepQualityTrend, s.Summary.ActivityConsistency))

	if len(s.Wearable) > 0 {
		series := make([]string, 0, len(s.Wearable))
		for _, name := range sortedKeys(s.Wearable) {
			series = append(series, fmt.Sprintf("%s (%d measurements)", name, len(s.Wearable[name])))
		}
		sections = append(sections, "**Available Time-Series Data:** "+strings.Join(series, ", "))
	}

	if len(s.Labs.Results) > 0 {
		lines := []string{fmt.Sprintf("**Recent Lab Results (%s):**", s.Labs.LastTestDate)}
		for _, name := range sortedBiomarkerKeys(s.Labs.Results) {
			b := s.Labs.Results[name]
			lines = append(lines, fmt.Sprintf("- %s: %.1f %s", name, b.Value, b.Unit))
		}
		sections = append(sections, strings.Join(lines, "\n"))
	}

	return strings.Join(sections, "\n\n")
}
