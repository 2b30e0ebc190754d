package ai

import (
	"strings"
	"testing"
)

func TestFallbackSteps(t *testing.T) {
	steps := FallbackSteps("Clean kitchen")

	if len(steps) != 5 {
		t.Fatalf("Expected 5 fallback steps, got %d", len(steps))
	}

	for i, step := range steps {
		if step == "" {
			t.Errorf("Fallback step %d is empty", i+1)
		}
	}

	if !strings.Contains(steps[0], "Clean kitchen") {
		t.Errorf("Expected first fallback step to mention the title, got %q", steps[0])
	}

	// Same title must produce the same sequence
	again := FallbackSteps("Clean kitchen")
	for i := range steps {
		if steps[i] != again[i] {
			t.Errorf("Fallback steps not deterministic at index %d: %q vs %q", i, steps[i], again[i])
		}
	}
}

func TestCleanSteps(t *testing.T) {
	t.Run("strips leading numbering", func(t *testing.T) {
		raw := "1. Wash dishes\n2. Wipe counters"
		steps := CleanSteps(raw)

		if len(steps) != 2 {
			t.Fatalf("Expected 2 steps, got %d", len(steps))
		}
		if steps[0] != "Wash dishes" {
			t.Errorf("Expected %q, got %q", "Wash dishes", steps[0])
		}
		if steps[1] != "Wipe counters" {
			t.Errorf("Expected %q, got %q", "Wipe counters", steps[1])
		}
	})

	t.Run("drops blank lines", func(t *testing.T) {
		raw := "1. First\n\n   \n2. Second\n"
		steps := CleanSteps(raw)

		if len(steps) != 2 {
			t.Fatalf("Expected 2 steps, got %d", len(steps))
		}
	})

	t.Run("caps at five steps", func(t *testing.T) {
		raw := "1. a\n2. b\n3. c\n4. d\n5. e\n6. f\n7. g"
		steps := CleanSteps(raw)

		if len(steps) != 5 {
			t.Fatalf("Expected 5 steps, got %d", len(steps))
		}
	})

	t.Run("handles unnumbered lines", func(t *testing.T) {
		raw := "Gather supplies\nStart scrubbing"
		steps := CleanSteps(raw)

		if len(steps) != 2 {
			t.Fatalf("Expected 2 steps, got %d", len(steps))
		}
		if steps[0] != "Gather supplies" {
			t.Errorf("Expected %q, got %q", "Gather supplies", steps[0])
		}
	})

	t.Run("empty input yields no steps", func(t *testing.T) {
		if steps := CleanSteps("   \n \n"); len(steps) != 0 {
			t.Fatalf("Expected 0 steps, got %d", len(steps))
		}
	})
}
