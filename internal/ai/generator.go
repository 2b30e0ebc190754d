package ai

import (
	"context"
	"fmt"
	"strings"
)

// MaxSteps is the most steps a generator result may contribute to a task.
const MaxSteps = 5

// StepGenerator produces an ordered list of short step texts for a task title.
// Implementations may fail or time out; callers are expected to substitute
// FallbackSteps so task creation never fails because generation did.
type StepGenerator interface {
	GenerateSteps(ctx context.Context, title, supportMode string) ([]string, error)
}

// FallbackSteps returns the fixed generic decomposition used whenever the
// generator errors or comes back empty. Derived only from the title, no
// external call.
func FallbackSteps(title string) []string {
	return []string{
		fmt.Sprintf("Define the goal of '%s' clearly", title),
		"Identify 3 small achievable actions",
		"Start with the simplest one",
		"Work in a focused time block",
		"Review and adjust progress",
	}
}

// CleanSteps normalizes raw generator output: one step per line, whitespace
// trimmed, leading enumeration ("1.", "2)" etc.) stripped, empties dropped,
// capped at MaxSteps.
func CleanSteps(raw string) []string {
	var steps []string
	for _, line := range strings.Split(raw, "\n") {
		cleaned := strings.TrimSpace(line)
		cleaned = strings.TrimLeft(cleaned, "0123456789.) ")
		cleaned = strings.TrimSpace(cleaned)
		if cleaned == "" {
			continue
		}
		steps = append(steps, cleaned)
		if len(steps) == MaxSteps {
			break
		}
	}
	return steps
}
