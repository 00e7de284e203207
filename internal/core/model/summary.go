package model

// LoadError records a triple that could not be written to the graph.
// The load continues past it; errors are reported, not thrown away.
type LoadError struct {
	Triple Triple `json:"triple"`
	Err    string `json:"error"`
}

// LoadSummary reports what a graph load actually did. Replaying the same
// triple set must yield zero created counts.
type LoadSummary struct {
	EntitiesCreated      int         `json:"entities_created"`
	EntitiesReused       int         `json:"entities_reused"`
	RelationshipsCreated int         `json:"relationships_created"`
	RelationshipsMerged  int         `json:"relationships_merged"`
	Failed               []LoadError `json:"failed,omitempty"`
}

// DocumentFailure marks a document whose extraction failed. The run
// continues with the remaining corpus.
type DocumentFailure struct {
	DocID string `json:"doc_id"`
	Err   string `json:"error"`
}

// RunSummary is the user-visible result of one pipeline run.
type RunSummary struct {
	RunID             string            `json:"run_id"`
	Documents         int               `json:"documents"`
	CacheHits         int               `json:"cache_hits"`
	CacheMisses       int               `json:"cache_misses"`
	TriplesExtracted  int               `json:"triples_extracted"`
	DuplicatesRemoved int               `json:"duplicates_removed"`
	StopWordsRemoved  int               `json:"stop_words_removed"`
	Failures          []DocumentFailure `json:"failures,omitempty"`
	Load              LoadSummary       `json:"load"`
}
