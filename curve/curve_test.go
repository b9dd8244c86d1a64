package curve

import (
	"math"
	"testing"
)

func TestValueAt(test *testing.T) {

	c := Curve{Points: []Point{{X: 0, Y: 0}, {X: 10, Y: 100}, {X: 20, Y: 100}}}

	subTests := []struct {
		name     string
		x        float64
		expected float64
	}{
		{name: "At first point", x: 0, expected: 0},
		{name: "Midway up the first segment", x: 5, expected: 50},
		{name: "At interior breakpoint", x: 10, expected: 100},
		{name: "On the flat segment", x: 15, expected: 100},
		{name: "At last point", x: 20, expected: 100},
	}

	for _, subTest := range subTests {
		test.Run(subTest.name, func(test *testing.T) {
			got := c.ValueAt(subTest.x)
			if math.Abs(got-subTest.expected) > 1e-9 {
				test.Errorf("expected %v, got %v", subTest.expected, got)
			}
		})
	}

	if !math.IsNaN(c.ValueAt(-1)) || !math.IsNaN(c.ValueAt(21)) {
		test.Errorf("expected NaN outside the curve span")
	}
}

func TestSample(test *testing.T) {

	// A linear function is reproduced exactly by any sampling.
	line := func(x float64) float64 { return 3*x + 1 }
	c := Sample(line, 0, 10, 5)

	if len(c.Points) != 5 {
		test.Fatalf("expected 5 points, got %d", len(c.Points))
	}
	for _, x := range []float64{0, 2.5, 7.1, 10} {
		if math.Abs(c.ValueAt(x)-line(x)) > 1e-9 {
			test.Errorf("at %v: expected %v, got %v", x, line(x), c.ValueAt(x))
		}
	}
}

func TestSampleDegenerateSpan(test *testing.T) {

	c := Sample(func(x float64) float64 { return x }, 5, 5, 3)

	if len(c.Points) != 3 {
		test.Fatalf("expected 3 points, got %d", len(c.Points))
	}
	if c.Points[0].X != 5 || c.Points[len(c.Points)-1].X != 6 {
		test.Errorf("expected the span widened to [5, 6], got [%v, %v]",
			c.Points[0].X, c.Points[len(c.Points)-1].X)
	}
}

func TestSampleMinimumPoints(test *testing.T) {

	c := Sample(func(x float64) float64 { return x }, 0, 1, 0)
	if len(c.Points) != 2 {
		test.Errorf("expected at least 2 points, got %d", len(c.Points))
	}
}
