package model

import "strings"

// Triple is one extracted relationship: subject --relation--> object,
// with the extraction service's confidence in [0,1].
type Triple struct {
	Subject    string  `json:"subject"`
	Relation   string  `json:"relation"`
	Object     string  `json:"object"`
	Confidence float64 `json:"confidence"`
}

// Key identifies a triple for deduplication and graph merging.
// Confidence is deliberately excluded; triples that differ only in
// confidence are the same edge.
func (t Triple) Key() string {
	return t.Subject + "\x1f" + t.Relation + "\x1f" + t.Object
}

// Complete reports whether the triple carries all three required fields.
// Incomplete extractions are discarded rather than failing a batch.
func (t Triple) Complete() bool {
	return t.Subject != "" && t.Relation != "" && t.Object != ""
}

// Normalize is the single case and whitespace policy for entity names and
// relation labels: inner whitespace collapsed to single spaces, lower-cased.
// Every identity comparison (cache dedupe, graph MERGE) uses this form.
func Normalize(s string) string {
	return strings.ToLower(strings.Join(strings.Fields(s), " "))
}

// ClampConfidence forces a confidence into [0,1]. Out-of-range values from
// the extraction service must not propagate downstream.
func ClampConfidence(c float64) float64 {
	if c < 0 {
		return 0
	}
	if c > 1 {
		return 1
	}
	return c
}
