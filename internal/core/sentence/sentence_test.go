package sentence

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSplitBasic(t *testing.T) {
	got := Split("The agency announced the policy. The press reported it.")

	assert.Equal(t, []string{
		"The agency announced the policy.",
		"The press reported it.",
	}, got)
}

func TestSplitMixedTerminators(t *testing.T) {
	got := Split("Really? Yes! It is done.")

	assert.Equal(t, []string{"Really?", "Yes!", "It is done."}, got)
}

func TestSplitKeepsDecimalNumbers(t *testing.T) {
	got := Split("Growth reached 3.5 percent. Markets rallied.")

	assert.Equal(t, []string{
		"Growth reached 3.5 percent.",
		"Markets rallied.",
	}, got)
}

func TestSplitParagraphBreak(t *testing.T) {
	got := Split("First paragraph without period\n\nSecond paragraph.")

	assert.Equal(t, []string{
		"First paragraph without period",
		"Second paragraph.",
	}, got)
}

func TestSplitTrailingTextWithoutPunctuation(t *testing.T) {
	got := Split("A complete sentence. a trailing fragment")

	assert.Equal(t, []string{"A complete sentence.", "a trailing fragment"}, got)
}

func TestSplitEmpty(t *testing.T) {
	assert.Empty(t, Split(""))
	assert.Empty(t, Split("   \n\n  "))
}
