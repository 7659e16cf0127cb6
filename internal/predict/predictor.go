// Package predict fits a single-feature least-squares line over a product's
// price history and turns it into a short-horizon forecast with a
// human-readable explanation and recommendation.
package predict

import (
	"fmt"
	"math"
	"time"
)

// MinPoints is the minimum history depth for a fit.
const MinPoints = 3

// Point is one (timestamp, price) observation; series must be ordered
// ascending by time.
type Point struct {
	At    time.Time
	Price float64
}

// Options carries the tuning constants. They are historical defaults carried
// over from the first version of the model, not calibrated values.
type Options struct {
	RegressionWeight float64 // weight of the regression forecast in the blend
	MovingAvgWeight  float64 // weight of the moving average in the blend
	BlendMinPoints   int     // series length at which blending kicks in
}

func DefaultOptions() Options {
	return Options{RegressionWeight: 0.7, MovingAvgWeight: 0.3, BlendMinPoints: 7}
}

// InsufficientDataError reports a series too short to fit.
type InsufficientDataError struct {
	Available int
}

func (e *InsufficientDataError) Error() string {
	return fmt.Sprintf("not enough historical data for prediction: need at least %d price records, have %d", MinPoints, e.Available)
}

type Forecast struct {
	CurrentPrice         float64 `json:"current_price"`
	PredictedPrice1Day   float64 `json:"predicted_price_1_day"`
	PredictedPrice7Days  float64 `json:"predicted_price_7_days"`
	Trend                string  `json:"trend"`
	TrendMagnitude       float64 `json:"trend_magnitude"`
	Confidence           float64 `json:"confidence"`
	PriceVariance        float64 `json:"price_variance"`
	MovingAverage        float64 `json:"moving_average"`
	Explanation          string  `json:"explanation"`
	Recommendation       string  `json:"recommendation"`
	HistoricalDataPoints int     `json:"historical_data_points"`
}

// Predict fits price = intercept + slope*day over elapsed fractional days and
// evaluates the line one and seven days past the last observation. With at
// least BlendMinPoints observations the 1-day forecast is blended with the
// moving average of the most recent window.
func Predict(points []Point, storeName string, opts Options) (*Forecast, error) {
	n := len(points)
	if n < MinPoints {
		return nil, &InsufficientDataError{Available: n}
	}
	if opts.BlendMinPoints <= 0 {
		opts = DefaultOptions()
	}

	days := make([]float64, n)
	prices := make([]float64, n)
	for i, p := range points {
		days[i] = p.At.Sub(points[0].At).Seconds() / 86400
		prices[i] = p.Price
	}

	slope, intercept := fitLine(days, prices)

	trend := "stable"
	switch {
	case slope > 0:
		trend = "increasing"
	case slope < 0:
		trend = "decreasing"
	}

	lastDay := days[n-1]
	currentPrice := round2(prices[n-1])
	nextDayPrice := round2(intercept + slope*(lastDay+1))
	sevenDayPrice := round2(intercept + slope*(lastDay+7))

	confidence := confidenceScore(days, prices, slope, intercept)

	window := opts.BlendMinPoints
	if window > n {
		window = n
	}
	movingAvg := mean(prices[n-window:])
	if n >= opts.BlendMinPoints {
		nextDayPrice = round2(opts.RegressionWeight*nextDayPrice + opts.MovingAvgWeight*movingAvg)
	}

	variance := populationVariance(prices)
	std := math.Sqrt(variance)

	return &Forecast{
		CurrentPrice:         currentPrice,
		PredictedPrice1Day:   nextDayPrice,
		PredictedPrice7Days:  sevenDayPrice,
		Trend:                trend,
		TrendMagnitude:       round4(math.Abs(slope)),
		Confidence:           confidence,
		PriceVariance:        round2(variance),
		MovingAverage:        round2(movingAvg),
		Explanation:          explanation(currentPrice, nextDayPrice, std, storeName, n),
		Recommendation:       recommendation(currentPrice, nextDayPrice),
		HistoricalDataPoints: n,
	}, nil
}

// fitLine is the closed-form two-variable ordinary least squares fit. A series
// with zero time spread degenerates to a flat line through the mean.
func fitLine(xs, ys []float64) (slope, intercept float64) {
	xm := mean(xs)
	ym := mean(ys)

	var sxx, sxy float64
	for i := range xs {
		dx := xs[i] - xm
		sxx += dx * dx
		sxy += dx * (ys[i] - ym)
	}
	if sxx == 0 {
		return 0, ym
	}
	slope = sxy / sxx
	return slope, ym - slope*xm
}

// confidenceScore is the coefficient of determination as a percentage,
// clamped to [0,100] and rounded to one decimal. A zero-variance series is
// defined as confidence 100: the flat fit reproduces every point.
func confidenceScore(xs, ys []float64, slope, intercept float64) float64 {
	ym := mean(ys)
	var ssRes, ssTot float64
	for i := range ys {
		fitted := intercept + slope*xs[i]
		ssRes += (ys[i] - fitted) * (ys[i] - fitted)
		ssTot += (ys[i] - ym) * (ys[i] - ym)
	}

	r2 := 1.0
	if ssTot != 0 {
		r2 = 1 - ssRes/ssTot
	}
	pct := math.Max(0, math.Min(100, r2*100))
	return math.Round(pct*10) / 10
}

func explanation(currentPrice, predictedPrice, std float64, storeName string, dataPoints int) string {
	change := predictedPrice - currentPrice
	percent := 0.0
	if currentPrice != 0 {
		percent = change / currentPrice * 100
	}

	storeContext := ""
	if storeName != "" {
		storeContext = fmt.Sprintf(" at %s", storeName)
	}

	switch {
	case math.Abs(percent) < 1:
		return fmt.Sprintf("Price is expected to remain stable%s. Historical data shows low volatility (₹%.2f standard deviation) based on %d price records.",
			storeContext, std, dataPoints)
	case percent > 0:
		return fmt.Sprintf("Price is expected to increase by ₹%.2f (%.1f%%)%s. This trend is based on %d historical price points with a standard deviation of ₹%.2f.",
			math.Abs(change), math.Abs(percent), storeContext, dataPoints, std)
	default:
		return fmt.Sprintf("Price is expected to decrease by ₹%.2f (%.1f%%)%s. Historical data shows moderate volatility (₹%.2f standard deviation) from %d price records.",
			math.Abs(change), math.Abs(percent), storeContext, std, dataPoints)
	}
}

// recommendation classifies the forecast-vs-current percent change, checking
// the extreme thresholds first. All comparisons are strict: exactly -5%
// lands in the -2% branch and exactly ±2% counts as stable. A zero current
// price has no meaningful percent change and is treated as stable.
func recommendation(currentPrice, predictedPrice float64) string {
	if currentPrice == 0 {
		return "Price stable - buy when convenient"
	}
	percent := (predictedPrice - currentPrice) / currentPrice * 100

	switch {
	case percent < -5:
		return "Buy now - price expected to increase significantly"
	case percent > 5:
		return "Wait - price expected to decrease significantly"
	case percent < -2:
		return "Good time to buy - price may increase soon"
	case percent > 2:
		return "Consider waiting - price may decrease"
	default:
		return "Price stable - buy when convenient"
	}
}

func mean(vals []float64) float64 {
	var sum float64
	for _, v := range vals {
		sum += v
	}
	return sum / float64(len(vals))
}

func populationVariance(vals []float64) float64 {
	m := mean(vals)
	var sum float64
	for _, v := range vals {
		sum += (v - m) * (v - m)
	}
	return sum / float64(len(vals))
}

func round2(v float64) float64 { return math.Round(v*100) / 100 }
func round4(v float64) float64 { return math.Round(v*10000) / 10000 }
