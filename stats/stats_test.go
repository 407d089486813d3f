package stats

import (
	"errors"
	"math"
	"testing"
)

func approx(a, b float64) bool {
	return math.Abs(a-b) < 1e-9
}

func TestMean(t *testing.T) {
	got, err := Mean([]float64{1, 2, 3, math.NaN(), 6})
	if err != nil {
		t.Fatalf("Mean() error = %v", err)
	}
	if !approx(got, 3) {
		t.Errorf("Mean() = %v, want 3", got)
	}
}

func TestMean_Empty(t *testing.T) {
	_, err := Mean([]float64{math.NaN()})
	if !errors.Is(err, ErrEmpty) {
		t.Errorf("Mean() error = %v, want ErrEmpty", err)
	}
}

func TestQuantile(t *testing.T) {
	xs := []float64{4, 1, 3, 2}
	tests := []struct {
		q    float64
		want float64
	}{
		{0, 1},
		{0.5, 2.5},
		{1, 4},
		{0.25, 1.75},
	}
	for _, tt := range tests {
		got, err := Quantile(xs, tt.q)
		if err != nil {
			t.Fatalf("Quantile(%v) error = %v", tt.q, err)
		}
		if !approx(got, tt.want) {
			t.Errorf("Quantile(%v) = %v, want %v", tt.q, got, tt.want)
		}
	}
}

func TestQuantile_OutOfRange(t *testing.T) {
	if _, err := Quantile([]float64{1}, 1.5); !errors.Is(err, ErrQuantileRange) {
		t.Errorf("Quantile(1.5) error = %v, want ErrQuantileRange", err)
	}
}

func TestStd(t *testing.T) {
	got, err := Std([]float64{2, 4, 4, 4, 5, 5, 7, 9})
	if err != nil {
		t.Fatalf("Std() error = %v", err)
	}
	if !approx(got, 2.138089935299395) {
		t.Errorf("Std() = %v", got)
	}
	if _, err := Std([]float64{1}); !errors.Is(err, ErrInsufficientData) {
		t.Errorf("Std(single) error = %v, want ErrInsufficientData", err)
	}
}

func TestMinMax(t *testing.T) {
	xs := []float64{3, -1, math.NaN(), 8}
	lo, _ := Min(xs)
	hi, _ := Max(xs)
	if lo != -1 || hi != 8 {
		t.Errorf("Min/Max = %v/%v, want -1/8", lo, hi)
	}
}

func TestCorr(t *testing.T) {
	got, err := Corr([]float64{1, 2, 3}, []float64{2, 4, 6})
	if err != nil {
		t.Fatalf("Corr() error = %v", err)
	}
	if !approx(got, 1) {
		t.Errorf("Corr() = %v, want 1", got)
	}
	if _, err := Corr([]float64{1}, []float64{1, 2}); !errors.Is(err, ErrLengthMismatch) {
		t.Errorf("Corr() error = %v, want ErrLengthMismatch", err)
	}
}

func TestRound(t *testing.T) {
	if got := Round(3.14159, 2); got != 3.14 {
		t.Errorf("Round() = %v, want 3.14", got)
	}
	if got := Round(-2.5, 0); got != -3 {
		t.Errorf("Round() = %v, want -3", got)
	}
}

func TestPctChange(t *testing.T) {
	got := PctChange([]float64{100, 110, 99})
	if !math.IsNaN(got[0]) {
		t.Errorf("PctChange()[0] = %v, want NaN", got[0])
	}
	if !approx(got[1], 0.1) || !approx(got[2], -0.1) {
		t.Errorf("PctChange() = %v", got)
	}
}
