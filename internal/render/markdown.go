// Package render turns model output into display HTML.
package render

import (
	"bytes"
	"strings"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"
)

var md = goldmark.New(
	goldmark.WithExtensions(extension.GFM),
)

// Markdown converts analysis text to HTML. Raw HTML in the input is not
// passed through.
func Markdown(text string) (string, error) {
	var buf bytes.Buffer
	if err := md.Convert([]byte(cleanFences(text)), &buf); err != nil {
		return "", err
	}
	return buf.String(), nil
}

// cleanFences strips an outer ``` or ```markdown block that some models wrap
// their whole answer in.
func cleanFences(input string) string {
	cleaned := strings.TrimSpace(input)
	if !strings.HasPrefix(cleaned, "```") || !strings.HasSuffix(cleaned, "```") || len(cleaned) < 6 {
		return input
	}

	cleaned = strings.TrimSuffix(strings.TrimPrefix(cleaned, "```"), "```")
	cleaned = strings.TrimPrefix(cleaned, "markdown")
	return strings.TrimSpace(cleaned)
}
