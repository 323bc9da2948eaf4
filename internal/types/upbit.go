package types

// RawTrade is one closed order from the Upbit order-history API, trimmed to
// the fields the reconciler reads. Upbit serializes numbers as strings.
// DoneAt is empty for orders that never fully settled (canceled with
// partial executions), so CreatedAt is the fallback timestamp.
type RawTrade struct {
	UUID           string `json:"uuid"`
	Market         string `json:"market"`
	Side           string `json:"side"`
	OrdType        string `json:"ord_type"`
	Price          string `json:"price"`
	ExecutedVolume string `json:"executed_volume"`
	ExecutedFunds  string `json:"executed_funds"`
	CreatedAt      string `json:"created_at"`
	DoneAt         string `json:"done_at"`
}
