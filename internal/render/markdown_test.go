package render

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMarkdown(t *testing.T) {
	t.Run("renders headings and lists", func(t *testing.T) {
		html, err := Markdown("### Ratios\n\n- PAT Margin: 12%\n- EBITDA Margin: 20%\n")
		require.NoError(t, err)

		assert.Contains(t, html, "<h3>Ratios</h3>")
		assert.Contains(t, html, "<li>PAT Margin: 12%</li>")
	})

	t.Run("renders GFM tables", func(t *testing.T) {
		html, err := Markdown("| Metric | Value |\n|---|---|\n| EPS | 4.2 |\n")
		require.NoError(t, err)

		assert.Contains(t, html, "<table>")
		assert.Contains(t, html, "<td>EPS</td>")
	})

	t.Run("unwraps an outer markdown fence", func(t *testing.T) {
		html, err := Markdown("```markdown\n**Healthy** balance sheet\n```")
		require.NoError(t, err)

		assert.Contains(t, html, "<strong>Healthy</strong>")
		assert.NotContains(t, html, "<code>")
	})

	t.Run("raw html is not passed through", func(t *testing.T) {
		html, err := Markdown("<script>alert(1)</script>")
		require.NoError(t, err)

		assert.NotContains(t, html, "<script>")
	})
}
