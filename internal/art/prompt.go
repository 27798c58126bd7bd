package art

import (
	"fmt"
	"strconv"
	"strings"
)

// Tier classifies a recovery score into its display tier.
func Tier(score float64) string {
	switch {
	case score > 80:
		return "high"
	case score > 50:
		return "medium"
	default:
		return "low"
	}
}

// Metrics are optional health metrics that enrich the prompt. Nil fields
// are omitted from the generated text.
type Metrics struct {
	SleepQuality *float64 // percent
	Strain       *float64 // 0-21
	HRV          *float64 // milliseconds
}

const (
	promptBase    = "Create an abstract digital artwork representing health data with the following elements:"
	promptClosing = "The overall composition should be harmonious yet dynamic, clearly reflecting the health status through abstract visual elements."
)

// BuildPrompt composes the image-generation prompt for a recovery score and
// optional additional metrics.
func BuildPrompt(recoveryScore float64, metrics Metrics) string {
	score := FormatScore(recoveryScore)

	var colorClause string
	switch Tier(recoveryScore) {
	case "high":
		colorClause = fmt.Sprintf("Dominant colors are vibrant greens and blues, representing high recovery (%s%% recovery score).", score)
	case "medium":
		colorClause = fmt.Sprintf("Mix of warm yellows and cool blues, balancing moderate recovery (%s%% recovery score).", score)
	default:
		colorClause = fmt.Sprintf("Subdued reds and greys dominate, indicating low recovery (%s%% recovery score).", score)
	}

	patternClauses := []string{
		"Incorporate flowing, organic shapes to represent flexibility and adaptability.",
		"Use repeating geometric patterns, with their regularity affected by the recovery score.",
		fmt.Sprintf("%s network of interconnected lines symbolizing bodily systems.", pick(recoveryScore > 70, "Dense", "Sparse")),
		fmt.Sprintf("Abstract %s forms representing energy levels.", pick(recoveryScore > 60, "circular", "angular")),
	}

	var metricClauses []string
	if metrics.SleepQuality != nil {
		v := *metrics.SleepQuality
		metricClauses = append(metricClauses, fmt.Sprintf(
			"Represent sleep quality (%s%%) with %s wave-like patterns.",
			FormatScore(v), pick(v > 70, "smooth", "jagged")))
	}
	if metrics.Strain != nil {
		v := *metrics.Strain
		metricClauses = append(metricClauses, fmt.Sprintf(
			"Illustrate physical strain (%s/21) with %s textural elements.",
			FormatScore(v), pick(v > 15, "bold", "subtle")))
	}
	if metrics.HRV != nil {
		v := *metrics.HRV
		metricClauses = append(metricClauses, fmt.Sprintf(
			"Depict heart rate variability (%s ms) using %s fractal-like structures.",
			FormatScore(v), pick(v > 50, "intricate", "simple")))
	}

	parts := []string{promptBase, colorClause, strings.Join(patternClauses, " ")}
	if len(metricClauses) > 0 {
		parts = append(parts, strings.Join(metricClauses, " "))
	}
	parts = append(parts, promptClosing)
	return strings.Join(parts, " ")
}

func pick(cond bool, yes, no string) string {
	if cond {
		return yes
	}
	return no
}

// FormatScore renders a metric value the way it appears in prompts and
// pages: whole numbers without a decimal, otherwise one decimal place.
func FormatScore(value float64) string {
	if value == float64(int64(value)) {
		return strconv.FormatInt(int64(value), 10)
	}
	return strconv.FormatFloat(value, 'f', 1, 64)
}
