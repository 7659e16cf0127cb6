package predict

import (
	"errors"
	"math"
	"strings"
	"testing"
	"time"
)

func seriesDaily(start time.Time, prices ...float64) []Point {
	pts := make([]Point, len(prices))
	for i, p := range prices {
		pts[i] = Point{At: start.AddDate(0, 0, i), Price: p}
	}
	return pts
}

func almostEqual(a, b float64) bool {
	return math.Abs(a-b) < 1e-9
}

func TestPredictInsufficientData(t *testing.T) {
	start := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	for _, n := range []int{0, 1, 2} {
		prices := make([]float64, n)
		for i := range prices {
			prices[i] = 10
		}
		_, err := Predict(seriesDaily(start, prices...), "", DefaultOptions())
		var insufficient *InsufficientDataError
		if !errors.As(err, &insufficient) {
			t.Fatalf("n=%d: expected InsufficientDataError, got %v", n, err)
		}
		if insufficient.Available != n {
			t.Fatalf("n=%d: Available = %d", n, insufficient.Available)
		}
	}
}

func TestPredictFlatSeries(t *testing.T) {
	start := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	f, err := Predict(seriesDaily(start, 10, 10, 10), "", DefaultOptions())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if f.Trend != "stable" {
		t.Fatalf("trend = %q, want stable", f.Trend)
	}
	if f.TrendMagnitude != 0 {
		t.Fatalf("magnitude = %v, want 0", f.TrendMagnitude)
	}
	if f.PredictedPrice1Day != 10 || f.PredictedPrice7Days != 10 {
		t.Fatalf("forecasts = %v / %v, want 10 / 10", f.PredictedPrice1Day, f.PredictedPrice7Days)
	}
	if f.Confidence != 100 {
		t.Fatalf("confidence = %v, want 100 for a zero-variance series", f.Confidence)
	}
	if f.PriceVariance != 0 {
		t.Fatalf("variance = %v, want 0", f.PriceVariance)
	}
	if f.Recommendation != "Price stable - buy when convenient" {
		t.Fatalf("recommendation = %q", f.Recommendation)
	}
	if f.HistoricalDataPoints != 3 {
		t.Fatalf("data points = %d", f.HistoricalDataPoints)
	}
}

func TestPredictLinearSeriesBlendsAtSevenPoints(t *testing.T) {
	start := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	f, err := Predict(seriesDaily(start, 1, 2, 3, 4, 5, 6, 7), "", DefaultOptions())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if f.Trend != "increasing" {
		t.Fatalf("trend = %q, want increasing", f.Trend)
	}
	if !almostEqual(f.TrendMagnitude, 1) {
		t.Fatalf("magnitude = %v, want 1", f.TrendMagnitude)
	}
	if f.CurrentPrice != 7 {
		t.Fatalf("current = %v, want 7", f.CurrentPrice)
	}
	// regression says 8, moving average of all seven points is 4:
	// 0.7*8 + 0.3*4 = 6.8
	if !almostEqual(f.PredictedPrice1Day, 6.8) {
		t.Fatalf("1-day forecast = %v, want 6.8", f.PredictedPrice1Day)
	}
	if !almostEqual(f.PredictedPrice7Days, 14) {
		t.Fatalf("7-day forecast = %v, want 14 (unblended)", f.PredictedPrice7Days)
	}
	if f.Confidence != 100 {
		t.Fatalf("confidence = %v, want 100 for a perfect fit", f.Confidence)
	}
	if !almostEqual(f.MovingAverage, 4) {
		t.Fatalf("moving average = %v, want 4", f.MovingAverage)
	}
}

func TestPredictNoBlendBelowSevenPoints(t *testing.T) {
	start := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	f, err := Predict(seriesDaily(start, 1, 2, 3, 4, 5), "", DefaultOptions())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !almostEqual(f.PredictedPrice1Day, 6) {
		t.Fatalf("1-day forecast = %v, want pure regression value 6", f.PredictedPrice1Day)
	}
}

func TestPredictFractionalDaySpacing(t *testing.T) {
	start := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	pts := []Point{
		{At: start, Price: 10},
		{At: start.Add(12 * time.Hour), Price: 11},
		{At: start.Add(24 * time.Hour), Price: 12},
	}
	f, err := Predict(pts, "", DefaultOptions())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	// slope is 2 per day; last observation sits at day 1.0
	if !almostEqual(f.TrendMagnitude, 2) {
		t.Fatalf("magnitude = %v, want 2", f.TrendMagnitude)
	}
	if !almostEqual(f.PredictedPrice1Day, 14) {
		t.Fatalf("1-day forecast = %v, want 14", f.PredictedPrice1Day)
	}
	if !almostEqual(f.PredictedPrice7Days, 26) {
		t.Fatalf("7-day forecast = %v, want 26", f.PredictedPrice7Days)
	}
}

func TestPredictZeroTimeSpread(t *testing.T) {
	at := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	pts := []Point{{At: at, Price: 5}, {At: at, Price: 10}, {At: at, Price: 15}}
	f, err := Predict(pts, "", DefaultOptions())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if f.Trend != "stable" || f.TrendMagnitude != 0 {
		t.Fatalf("degenerate series must be flat, got trend %q magnitude %v", f.Trend, f.TrendMagnitude)
	}
	if !almostEqual(f.PredictedPrice1Day, 10) {
		t.Fatalf("1-day forecast = %v, want the mean 10", f.PredictedPrice1Day)
	}
	if f.Confidence != 0 {
		t.Fatalf("confidence = %v, want 0 when the flat fit explains nothing", f.Confidence)
	}
}

func TestRecommendationThresholds(t *testing.T) {
	cases := []struct {
		name      string
		predicted float64
		want      string
	}{
		{"drop beyond 5 percent", 94.99, "Buy now - price expected to increase significantly"},
		{"drop of exactly 5 percent", 95, "Good time to buy - price may increase soon"},
		{"drop between 2 and 5 percent", 97.5, "Good time to buy - price may increase soon"},
		{"drop of exactly 2 percent", 98, "Price stable - buy when convenient"},
		{"no change", 100, "Price stable - buy when convenient"},
		{"rise of exactly 2 percent", 102, "Price stable - buy when convenient"},
		{"rise between 2 and 5 percent", 102.5, "Consider waiting - price may decrease"},
		{"rise of exactly 5 percent", 105, "Consider waiting - price may decrease"},
		{"rise beyond 5 percent", 105.01, "Wait - price expected to decrease significantly"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := recommendation(100, tc.predicted); got != tc.want {
				t.Fatalf("recommendation(100, %v) = %q, want %q", tc.predicted, got, tc.want)
			}
		})
	}
}

func TestExplanationStoreContext(t *testing.T) {
	start := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)

	f, err := Predict(seriesDaily(start, 10, 10, 10), "BigBasket", DefaultOptions())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !strings.Contains(f.Explanation, "at BigBasket") {
		t.Fatalf("explanation missing store context: %q", f.Explanation)
	}
	if !strings.Contains(f.Explanation, "remain stable") {
		t.Fatalf("expected stable wording, got %q", f.Explanation)
	}

	f, err = Predict(seriesDaily(start, 10, 10, 10), "", DefaultOptions())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if strings.Contains(f.Explanation, " at ") {
		t.Fatalf("explanation should omit store context: %q", f.Explanation)
	}
}

func TestPredictZeroCurrentPrice(t *testing.T) {
	start := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)

	f, err := Predict(seriesDaily(start, 0, 0, 0), "", DefaultOptions())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if f.Recommendation != "Price stable - buy when convenient" {
		t.Fatalf("recommendation = %q", f.Recommendation)
	}
	for _, s := range []string{f.Explanation, f.Recommendation} {
		if strings.Contains(s, "NaN") || strings.Contains(s, "Inf") {
			t.Fatalf("non-finite text leaked: %q", s)
		}
	}

	// A free sample trending toward a real price must not divide by zero.
	f, err = Predict(seriesDaily(start, 2, 1, 0), "", DefaultOptions())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if f.Recommendation != "Price stable - buy when convenient" {
		t.Fatalf("recommendation = %q", f.Recommendation)
	}
	if strings.Contains(f.Explanation, "NaN") || strings.Contains(f.Explanation, "Inf") {
		t.Fatalf("non-finite text leaked: %q", f.Explanation)
	}
}

func TestPredictDecreasingTrend(t *testing.T) {
	start := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	f, err := Predict(seriesDaily(start, 100, 90, 80), "", DefaultOptions())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if f.Trend != "decreasing" {
		t.Fatalf("trend = %q, want decreasing", f.Trend)
	}
	if f.Recommendation != "Buy now - price expected to increase significantly" {
		t.Fatalf("recommendation = %q", f.Recommendation)
	}
	if !strings.Contains(f.Explanation, "decrease") {
		t.Fatalf("explanation = %q", f.Explanation)
	}
}
