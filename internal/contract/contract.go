// Package contract extracts the structured reply record from raw completion
// output. The completion service promises a single JSON object but delivers
// natural language with no structural guarantee, so extraction is a salvage
// operation that never fails past its boundary.
package contract

import (
	"encoding/json"
	"strings"
)

// Response is the structured record the completion service is instructed to
// return: the customer-facing reply plus sentiment metadata for the turn.
type Response struct {
	Reply     string  `json:"reply"`
	Sentiment string  `json:"sentiment"`
	Score     float64 `json:"score"`
}

// Extract pulls a Response out of raw completion text. Stages, first success
// wins: parse the whole trimmed text; parse the substring between the first
// '{' and the last '}'; wrap non-empty text as a neutral Response with the
// raw text as the reply. Empty text yields (nil, false).
func Extract(text string) (*Response, bool) {
	text = strings.TrimSpace(text)
	if text == "" {
		return nil, false
	}

	var resp Response
	if err := json.Unmarshal([]byte(text), &resp); err == nil {
		return &resp, true
	}

	start := strings.Index(text, "{")
	end := strings.LastIndex(text, "}")
	if start != -1 && end > start {
		resp = Response{}
		if err := json.Unmarshal([]byte(text[start:end+1]), &resp); err == nil {
			return &resp, true
		}
	}

	return &Response{Reply: text, Sentiment: "NEUTRO", Score: 0.0}, true
}
