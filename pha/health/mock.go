package health

import (
	"fmt"
	"math/rand"
	"sort"
	"strings"

	"gonum.org/v1/gonum/stat"
)

// MockSnapshot generates a deterministic 30-day snapshot for the given
// seed. Series are plausible but synthetic; summary statistics are computed
// from the generated series rather than hardcoded.
func MockSnapshot(seed int64) *Snapshot {
	rng := rand.New(rand.NewSource(seed))

	days := 30
	restingHR := noisySeries(rng, days, 64, 4)
	sleepHours := noisySeries(rng, days, 6.8, 0.9)
	steps := noisySeries(rng, days, 8200, 2400)
	hrv := noisySeries(rng, days, 42, 7)

	summary := MetricsSummary{
		AvgRestingHeartRate: round1(stat.Mean(restingHR, nil)),
		AvgSleepHours:       round1(stat.Mean(sleepHours, nil)),
		AvgDailySteps:       float64(int(stat.Mean(steps, nil))),
		AvgHRV:              round1(stat.Mean(hrv, nil)),
		SleepQualityTrend:   trendLabel(sleepHours),
		ActivityConsistency: consistencyLabel(steps),
	}

	return &Snapshot{
		Profile: UserProfile{
			Age:           42,
			Gender:        "female",
			HeightCm:      168,
			WeightKg:      71,
			ActivityLevel: "moderately active",
		},
		Records: Records{
			Conditions: []Condition{
				{Name: "Mild Hypertension", Diagnosed: "2022-03-15", Severity: "mild"},
				{Name: "Seasonal Allergies", Diagnosed: "2015-06-01", Severity: "mild"},
			},
			Medications: []Medication{
				{Name: "Lisinopril", Dosage: "10mg daily", Reason: "blood pressure"},
				{Name: "Loratadine", Dosage: "10mg as needed", Reason: "allergies"},
			},
			Allergies:     []string{"pollen", "penicillin"},
			FamilyHistory: []string{"type 2 diabetes (father)", "heart disease (grandmother)"},
		},
		Wearable: map[string][]float64{
			"resting_heart_rate": restingHR,
			"sleep_hours":        sleepHours,
			"daily_steps":        steps,
			"hrv":                hrv,
		},
		Summary: summary,
		Labs: LabResults{
			LastTestDate: "2025-07-14",
			Results: map[string]Biomarker{
				"cholesterol_total": {Value: 192, Unit: "mg/dL", ReferenceRange: "<200"},
				"ldl_cholesterol":   {Value: 118, Unit: "mg/dL", ReferenceRange: "<130"},
				"hdl_cholesterol":   {Value: 58, Unit: "mg/dL", ReferenceRange: ">40"},
				"glucose_fasting":   {Value: 94, Unit: "mg/dL", ReferenceRange: "70-100"},
				"hba1c":             {Value: 5.4, Unit: "%", ReferenceRange: "<5.7"},
				"vitamin_d":         {Value: 28, Unit: "ng/mL", ReferenceRange: "30-100"},
			},
		},
	}
}

// noisySeries produces n gaussian samples around mean with the given spread.
func noisySeries(rng *rand.Rand, n int, mean, stddev float64) []float64 {
	out := make([]float64, n)
	for i := range out {
		v := mean + rng.NormFloat64()*stddev
		if v < 0 {
			v = 0
		}
		out[i] = v
	}
	return out
}

// trendLabel compares the last week's mean against the first week's.
func trendLabel(series []float64) string {
	if len(series) < 14 {
		return "stable"
	}
	early := stat.Mean(series[:7], nil)
	late := stat.Mean(series[len(series)-7:], nil)
	switch {
	case late > early*1.05:
		return "improving"
	case late < early*0.95:
		return "declining"
	default:
		return "stable"
	}
}

// consistencyLabel buckets the coefficient of variation of the series.
func consistencyLabel(series []float64) string {
	mean := stat.Mean(series, nil)
	if mean == 0 {
		return "low"
	}
	cv := stat.StdDev(series, nil) / mean
	switch {
	case cv < 0.15:
		return "high"
	case cv < 0.35:
		return "moderate"
	default:
		return "low"
	}
}

func round1(v float64) float64 {
	return float64(int(v*10+0.5)) / 10
}

func sortedKeys(m map[string][]float64) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

func sortedBiomarkerKeys(m map[string]Biomarker) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// DescribeSeries summarizes which series are available, for prompt context.
func DescribeSeries(s *Snapshot) string {
	parts := make([]string, 0, len(s.Wearable))
	for _, name := range sortedKeys(s.Wearable) {
		parts = append(parts, fmt.Sprintf("- %s: %d data points", name, len(s.Wearable[name])))
	}
	if len(parts) == 0 {
		return "No time-series data available"
	}
	return strings.Join(parts, "\n")
}
