package optimizer

import (
	"testing"
	"time"
)

func TestSmoothingWeights(test *testing.T) {

	pacific, err := time.LoadLocation("America/Los_Angeles")
	if err != nil {
		test.Fatalf("Could not load location: %v", err)
	}

	cfg := DefaultConfig()

	subTests := []struct {
		name     string
		t        time.Time
		expected float64
	}{
		{
			name:     "Start of operating day",
			t:        time.Date(2025, 7, 1, 8, 0, 0, 0, pacific),
			expected: cfg.SmoothingWeightDay,
		},
		{
			name:     "Hour 20 is still daytime",
			t:        time.Date(2025, 7, 1, 20, 59, 0, 0, pacific),
			expected: cfg.SmoothingWeightDay,
		},
		{
			name:     "Hour 21 is night",
			t:        time.Date(2025, 7, 1, 21, 0, 0, 0, pacific),
			expected: cfg.SmoothingWeightNight,
		},
		{
			name:     "Early morning is night",
			t:        time.Date(2025, 7, 1, 7, 59, 0, 0, pacific),
			expected: cfg.SmoothingWeightNight,
		},
		{
			name: "Hour is evaluated in local time",
			// 04:00 UTC is 21:00 PDT the previous evening.
			t:        time.Date(2025, 7, 2, 4, 0, 0, 0, time.UTC),
			expected: cfg.SmoothingWeightNight,
		},
	}

	for _, subTest := range subTests {
		test.Run(subTest.name, func(test *testing.T) {
			got := SmoothingWeights([]time.Time{subTest.t}, pacific, cfg)
			if len(got) != 1 || got[0] != subTest.expected {
				test.Errorf("expected weight %v, got %v", subTest.expected, got)
			}
		})
	}
}
