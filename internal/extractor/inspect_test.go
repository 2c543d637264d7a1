package extractor

import (
	"testing"

	"github.com/Sourabh71/AI-Analyst/internal/pdftest"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestInspect(t *testing.T) {
	t.Run("reads a plain document", func(t *testing.T) {
		info, err := Inspect(pdftest.Build([]string{"Profit and Loss", "Notes"}))
		require.NoError(t, err)
		assert.False(t, info.Encrypted)
		assert.Empty(t, info.Title)
	})

	t.Run("rejects non PDF input", func(t *testing.T) {
		info, err := Inspect([]byte("plain text upload"))
		assert.Error(t, err)
		assert.Nil(t, info)
	})
}
