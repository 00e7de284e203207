// Package filter cleans the aggregate triple set before loading: exact
// duplicates are collapsed and triples whose subject is a bare stop word
// (pronouns, articles) are dropped, since they merge unrelated statements
// into meaningless hub nodes like "it" or "they".
package filter

import "github.com/agenthands/graphene/internal/core/model"

var stopWords = map[string]struct{}{}

func init() {
	for _, w := range []string{
		"a", "an", "the", "this", "that", "these", "those",
		"i", "you", "he", "she", "it", "we", "they",
		"me", "him", "her", "us", "them",
		"my", "your", "his", "its", "our", "their",
		"mine", "yours", "hers", "ours", "theirs",
		"myself", "yourself", "himself", "herself", "itself", "ourselves", "themselves",
		"who", "whom", "whose", "which", "what",
		"someone", "something", "anyone", "anything",
		"everyone", "everything", "nobody", "nothing", "none",
		"one", "some", "any", "all", "both", "each", "few", "many", "most", "other", "others", "such",
		"here", "there",
	} {
		stopWords[w] = struct{}{}
	}
}

// Duplicates collapses triples sharing the same (subject, relation, object)
// key, keeping the maximum confidence observed. First-seen order is
// preserved. Returns the kept triples and the number removed.
func Duplicates(triples []model.Triple) ([]model.Triple, int) {
	kept := make([]model.Triple, 0, len(triples))
	index := make(map[string]int, len(triples))
	removed := 0

	for _, t := range triples {
		key := t.Key()
		if i, ok := index[key]; ok {
			if t.Confidence > kept[i].Confidence {
				kept[i].Confidence = t.Confidence
			}
			removed++
			continue
		}
		index[key] = len(kept)
		kept = append(kept, t)
	}

	return kept, removed
}

// StopWords removes triples whose entire subject is a stop word. Subjects
// are expected to be normalized already.
func StopWords(triples []model.Triple) ([]model.Triple, int) {
	kept := make([]model.Triple, 0, len(triples))
	removed := 0

	for _, t := range triples {
		if _, ok := stopWords[t.Subject]; ok {
			removed++
			continue
		}
		kept = append(kept, t)
	}

	return kept, removed
}
