package prompt

import (
	"strings"
	"testing"
	"unicode/utf8"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTruncate(t *testing.T) {
	t.Run("short text is unchanged", func(t *testing.T) {
		out, cut := Truncate("Revenue 100 Cr")
		assert.Equal(t, "Revenue 100 Cr", out)
		assert.False(t, cut)
	})

	t.Run("exactly at the limit is unchanged", func(t *testing.T) {
		text := strings.Repeat("a", MaxChars)
		out, cut := Truncate(text)
		assert.Equal(t, text, out)
		assert.False(t, cut)
	})

	t.Run("long text keeps the first MaxChars characters", func(t *testing.T) {
		text := strings.Repeat("a", MaxChars) + "TAIL"
		out, cut := Truncate(text)
		assert.Equal(t, strings.Repeat("a", MaxChars), out)
		assert.True(t, cut)
	})

	t.Run("counts characters not bytes", func(t *testing.T) {
		text := strings.Repeat("₹", MaxChars+5)
		out, cut := Truncate(text)
		assert.True(t, cut)
		assert.Equal(t, MaxChars, utf8.RuneCountInString(out))
		assert.True(t, utf8.ValidString(out))
	})

	t.Run("empty text", func(t *testing.T) {
		out, cut := Truncate("")
		assert.Empty(t, out)
		assert.False(t, cut)
	})
}

func TestBuild(t *testing.T) {
	t.Run("embeds text between quote fences", func(t *testing.T) {
		p := Build("Total Revenue 5,000 Cr\n")

		assert.Contains(t, p.Prompt, "\"\"\"\nTotal Revenue 5,000 Cr\n\n\"\"\"")
		assert.False(t, p.Truncated)
		assert.Equal(t, "Total Revenue 5,000 Cr\n", p.Text)
	})

	t.Run("names the metrics and ratios", func(t *testing.T) {
		p := Build("x")
		for _, want := range []string{"Total Revenue", "EBITDA", "PAT (Net Profit)", "EPS", "PAT Margin", "EBITDA Margin", "ROE", "assume 7389 Cr equity"} {
			assert.Contains(t, p.Prompt, want)
		}
	})

	t.Run("embedded text is bounded regardless of input size", func(t *testing.T) {
		text := strings.Repeat("0123456789", 5000)
		p := Build(text)

		require.True(t, p.Truncated)
		assert.Equal(t, 50000, p.OriginalChars)
		assert.Equal(t, text[:MaxChars], p.Text)
		assert.Contains(t, p.Prompt, text[:MaxChars]+"\n\"\"\"")
		assert.NotContains(t, p.Prompt, text[:MaxChars+1])
	})

	t.Run("prompt does not mention truncation", func(t *testing.T) {
		p := Build(strings.Repeat("x", MaxChars*2))
		assert.NotContains(t, strings.ToLower(p.Prompt), "truncat")
	})
}
