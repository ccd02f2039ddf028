package model

// PriceHistoryRecord is one trading day of end-of-day prices as returned by
// the market-data provider. The provider schema is passed through the data
// proxy untouched; this type only reads the fields the client displays.
// Fields the provider omits or sends in an unexpected shape read as zero.
type PriceHistoryRecord struct {
	Date          string  `json:"date"`
	Open          float64 `json:"open"`
	High          float64 `json:"high"`
	Low           float64 `json:"low"`
	Close         float64 `json:"close"`
	AdjustedClose float64 `json:"adjusted_close"`
	Volume        float64 `json:"volume"`
}

// PriceHistory is a chronologically ordered sequence of daily records.
// An empty history is valid: the provider had no data for the range.
type PriceHistory []PriceHistoryRecord

// Latest returns the most recent record, used for the summary header.
// It returns false when the history is empty.
func (h PriceHistory) Latest() (PriceHistoryRecord, bool) {
	if len(h) == 0 {
		return PriceHistoryRecord{}, false
	}
	return h[len(h)-1], true
}
