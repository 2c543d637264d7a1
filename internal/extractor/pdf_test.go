package extractor

import (
	"errors"
	"strings"
	"testing"

	"github.com/Sourabh71/AI-Analyst/internal/pdftest"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExtractText(t *testing.T) {
	t.Run("concatenates pages in order with newline after each", func(t *testing.T) {
		doc := &fakeDocument{texts: []string{"Page one", "Page two", "Page three"}}
		assert.Equal(t, "Page one\nPage two\nPage three\n", ExtractText(doc, nil))
	})

	t.Run("pages without text contribute nothing", func(t *testing.T) {
		doc := &fakeDocument{texts: []string{"", "Revenue 100", "", "PAT 10"}}
		assert.Equal(t, "Revenue 100\nPAT 10\n", ExtractText(doc, nil))
	})

	t.Run("failing page is skipped", func(t *testing.T) {
		doc := &fakeDocument{
			texts: []string{"first", "unreadable", "third"},
			errs:  map[int]error{2: errBrokenPage},
		}
		assert.Equal(t, "first\nthird\n", ExtractText(doc, nil))
	})

	t.Run("document without any text yields empty string", func(t *testing.T) {
		doc := &fakeDocument{texts: []string{"", ""}}
		assert.Empty(t, ExtractText(doc, nil))
	})

	t.Run("text is not trimmed", func(t *testing.T) {
		doc := &fakeDocument{texts: []string{"  padded  "}}
		assert.Equal(t, "  padded  \n", ExtractText(doc, nil))
	})
}

func TestOpen(t *testing.T) {
	t.Run("garbage is a DocumentOpenError", func(t *testing.T) {
		_, err := Open([]byte("this is not a pdf"))
		require.Error(t, err)

		var openErr *DocumentOpenError
		assert.True(t, errors.As(err, &openErr))
	})

	t.Run("empty input is a DocumentOpenError", func(t *testing.T) {
		_, err := Open(nil)

		var openErr *DocumentOpenError
		assert.True(t, errors.As(err, &openErr))
	})

	t.Run("generated PDF opens with its page count", func(t *testing.T) {
		doc, err := Open(pdftest.Build([]string{"Balance Sheet", "", "Cash Flow"}))
		require.NoError(t, err)
		assert.Equal(t, 3, doc.NumPage())
	})
}

func TestExtractTextFromGeneratedPDF(t *testing.T) {
	doc, err := Open(pdftest.Build([]string{"Consolidated Balance Sheet", "", "Total Revenue"}))
	require.NoError(t, err)

	text := ExtractText(doc, nil)

	assert.Contains(t, text, "Consolidated Balance Sheet")
	assert.Contains(t, text, "Total Revenue")
	assert.Less(t, strings.Index(text, "Consolidated"), strings.Index(text, "Total Revenue"))
}

func TestPageExtractionError(t *testing.T) {
	err := &PageExtractionError{Page: 4, Err: errBrokenPage}
	assert.Equal(t, "page 4: broken content stream", err.Error())
	assert.ErrorIs(t, err, errBrokenPage)
}
