// Package sentence splits raw document text into sentences for
// per-sentence extraction calls. The OpenIE service performs markedly
// better on single sentences than on whole documents.
package sentence

import "strings"

func isTerminal(r rune) bool {
	return r == '.' || r == '!' || r == '?'
}

// Split cuts text at sentence-final punctuation followed by whitespace, and
// at blank lines. Trailing text without terminal punctuation is kept as a
// final sentence. Empty segments are dropped.
func Split(text string) []string {
	var sentences []string
	var b strings.Builder

	flush := func() {
		if s := strings.TrimSpace(b.String()); s != "" {
			sentences = append(sentences, s)
		}
		b.Reset()
	}

	runes := []rune(text)
	for i, r := range runes {
		b.WriteRune(r)
		if isTerminal(r) {
			if i+1 >= len(runes) || runes[i+1] == ' ' || runes[i+1] == '\t' || runes[i+1] == '\n' || runes[i+1] == '\r' {
				flush()
			}
			continue
		}
		if r == '\n' && i+1 < len(runes) && runes[i+1] == '\n' {
			flush()
		}
	}
	flush()

	return sentences
}
