package rafting

import (
	"testing"
	"time"
)

func mustParseTime(test *testing.T, value string) time.Time {
	test.Helper()
	t, err := time.Parse(time.RFC3339, value)
	if err != nil {
		test.Fatalf("Could not parse time %q: %v", value, err)
	}
	return t
}

func TestLaborDay(test *testing.T) {

	subTests := []struct {
		year     int
		expected string
	}{
		{year: 2024, expected: "2024-09-02"},
		{year: 2025, expected: "2025-09-01"},
		{year: 2026, expected: "2026-09-07"},
	}

	for _, subTest := range subTests {
		got := LaborDay(subTest.year).Format("2006-01-02")
		if got != subTest.expected {
			test.Errorf("LaborDay(%d): expected %s, got %s", subTest.year, subTest.expected, got)
		}
	}
}

func TestMemorialDayWeekendStart(test *testing.T) {

	subTests := []struct {
		year     int
		expected string
	}{
		{year: 2024, expected: "2024-05-25"},
		{year: 2025, expected: "2025-05-24"},
		{year: 2026, expected: "2026-05-23"},
	}

	for _, subTest := range subTests {
		got := MemorialDayWeekendStart(subTest.year).Format("2006-01-02")
		if got != subTest.expected {
			test.Errorf("MemorialDayWeekendStart(%d): expected %s, got %s", subTest.year, subTest.expected, got)
		}
	}
}

func TestWindowContains(test *testing.T) {

	pacific, err := time.LoadLocation("America/Los_Angeles")
	if err != nil {
		test.Fatalf("Could not load location: %v", err)
	}

	subTests := []struct {
		name      string
		waterYear WaterYearType
		t         string
		expected  bool
	}{
		{
			name:      "Wet weekday mid-window",
			waterYear: Wet,
			t:         "2025-07-09T10:00:00-07:00", // Wednesday
			expected:  true,
		},
		{
			name:      "Wet weekday after window",
			waterYear: Wet,
			t:         "2025-07-09T13:00:00-07:00",
			expected:  false,
		},
		{
			name:      "Wet Monday is a release day in the main season",
			waterYear: Wet,
			t:         "2025-07-07T10:00:00-07:00",
			expected:  true,
		},
		{
			name:      "Labor Day itself keeps the main-season schedule",
			waterYear: Wet,
			t:         "2025-09-01T10:00:00-07:00", // Monday
			expected:  true,
		},
		{
			name:      "Wet Monday drops after Labor Day",
			waterYear: Wet,
			t:         "2025-09-08T10:00:00-07:00",
			expected:  false,
		},
		{
			name:      "Weekend window start is inclusive",
			waterYear: Wet,
			t:         "2025-07-12T08:00:00-07:00", // Saturday
			expected:  true,
		},
		{
			name:      "Weekend window end is inclusive",
			waterYear: Wet,
			t:         "2025-07-13T12:00:00-07:00", // Sunday
			expected:  true,
		},
		{
			name:      "Before the season opens",
			waterYear: Wet,
			t:         "2025-05-01T10:00:00-07:00",
			expected:  false,
		},
		{
			name:      "Season opening Saturday",
			waterYear: Wet,
			t:         "2025-05-24T09:00:00-07:00",
			expected:  true,
		},
		{
			name:      "After the season closes",
			waterYear: Wet,
			t:         "2025-10-01T10:00:00-07:00",
			expected:  false,
		},
		{
			name:      "Early-release Saturday starts at four",
			waterYear: Wet,
			t:         "2025-06-28T05:00:00-07:00",
			expected:  true,
		},
		{
			name:      "Ordinary Saturday has no early start",
			waterYear: Wet,
			t:         "2025-06-14T05:00:00-07:00",
			expected:  false,
		},
		{
			name:      "Dry Monday is not a release day",
			waterYear: Dry,
			t:         "2025-07-07T10:00:00-07:00",
			expected:  false,
		},
		{
			name:      "Dry weekday window ends at eleven",
			waterYear: Dry,
			t:         "2025-07-09T11:30:00-07:00", // Wednesday
			expected:  false,
		},
		{
			name:      "Critical keeps only Saturdays after Labor Day",
			waterYear: Critical,
			t:         "2025-09-13T10:00:00-07:00", // Saturday
			expected:  true,
		},
		{
			name:      "Critical drops Sundays after Labor Day",
			waterYear: Critical,
			t:         "2025-09-14T10:00:00-07:00",
			expected:  false,
		},
		{
			name:      "Extreme critical has no releases after Labor Day",
			waterYear: ExtremeCritical,
			t:         "2025-09-10T09:00:00-07:00", // Wednesday
			expected:  false,
		},
		{
			name:      "Unknown water year type yields no windows",
			waterYear: WaterYearType("Bogus"),
			t:         "2025-07-09T10:00:00-07:00",
			expected:  false,
		},
	}

	for _, subTest := range subTests {
		test.Run(subTest.name, func(test *testing.T) {
			calendar := NewCalendar(subTest.waterYear, pacific)
			got := calendar.WindowContains(mustParseTime(test, subTest.t))
			if got != subTest.expected {
				test.Errorf("expected %v, got %v", subTest.expected, got)
			}
		})
	}
}

func TestFlags(test *testing.T) {

	pacific, err := time.LoadLocation("America/Los_Angeles")
	if err != nil {
		test.Fatalf("Could not load location: %v", err)
	}

	calendar := NewCalendar(Wet, pacific)
	times := []time.Time{
		mustParseTime(test, "2025-07-09T10:00:00-07:00"),
		mustParseTime(test, "2025-07-09T15:00:00-07:00"),
	}
	flags := calendar.Flags(times)
	if len(flags) != 2 || !flags[0] || flags[1] {
		test.Errorf("unexpected flags: %v", flags)
	}
}
