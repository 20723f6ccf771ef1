package models

import "time"

// Bar is one daily observation for a ticker.
type Bar struct {
	Ticker string
	Date   time.Time
	Close  float64
}
