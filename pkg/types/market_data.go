package types

import "time"

type OHLCV struct {
	Open      float64
	High      float64
	Low       float64
	Close     float64
	Volume    float64
	Timestamp time.Time
}

// MinuteOfDay returns the bar's time of day as minutes since midnight.
func (o OHLCV) MinuteOfDay() int {
	return o.Timestamp.Hour()*60 + o.Timestamp.Minute()
}

// Weekday returns the day of week the bar opened on.
func (o OHLCV) Weekday() time.Weekday {
	return o.Timestamp.Weekday()
}
