package prompt

import (
	"fmt"
	"unicode/utf8"
)

const (
	// MaxChars bounds how much document text is sent to the model.
	MaxChars = 12000
	// DefaultEquityCr is the equity, in crore, assumed for ROE when the
	// document does not state it.
	DefaultEquityCr = 7389
)

const template = `Read the following financial press release or statement and extract the key financial values:
- Total Revenue
- EBITDA
- PAT (Net Profit)
- EPS
- Any other useful financial numbers
Then calculate: PAT Margin, EBITDA Margin, ROE (assume %d Cr equity if not found), and interpret the financial health.

Text:
"""
%s
"""
`

// Payload is the prompt sent to the model together with what was cut to
// build it.
type Payload struct {
	Prompt        string
	Text          string
	OriginalChars int
	Truncated     bool
}

// Truncate returns the first MaxChars characters of text.
func Truncate(text string) (string, bool) {
	if utf8.RuneCountInString(text) <= MaxChars {
		return text, false
	}

	n := 0
	for i := range text {
		if n == MaxChars {
			return text[:i], true
		}
		n++
	}
	return text, false
}

// Build embeds the truncated text in the extraction instructions. The model
// is not told when text was dropped.
func Build(text string) Payload {
	truncated, cut := Truncate(text)
	return Payload{
		Prompt:        fmt.Sprintf(template, DefaultEquityCr, truncated),
		Text:          truncated,
		OriginalChars: utf8.RuneCountInString(text),
		Truncated:     cut,
	}
}
