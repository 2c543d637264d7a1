package extractor

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/Sourabh71/AI-Analyst/internal/utils"

	"github.com/ledongthuc/pdf"
)

// Document is an opened PDF. Pages are numbered from 1.
type Document interface {
	NumPage() int
	PageText(n int) (string, error)
	PageLines(n int) ([]Line, error)
}

// DocumentOpenError means the upload could not be parsed as a PDF at all.
type DocumentOpenError struct {
	Err error
}

func (e *DocumentOpenError) Error() string {
	return fmt.Sprintf("failed to open PDF: %v", e.Err)
}

func (e *DocumentOpenError) Unwrap() error {
	return e.Err
}

// PageExtractionError is reported for a single page and never aborts a scan.
type PageExtractionError struct {
	Page int
	Err  error
}

func (e *PageExtractionError) Error() string {
	return fmt.Sprintf("page %d: %v", e.Page, e.Err)
}

func (e *PageExtractionError) Unwrap() error {
	return e.Err
}

type pdfDocument struct {
	reader   *pdf.Reader
	numPages int
}

// Open parses data as a PDF. Any failure, including a panic inside the PDF
// library, is returned as *DocumentOpenError.
func Open(data []byte) (doc Document, err error) {
	defer func() {
		if r := recover(); r != nil {
			doc = nil
			err = &DocumentOpenError{Err: fmt.Errorf("pdf reader panic: %v", r)}
		}
	}()

	if len(data) == 0 {
		return nil, &DocumentOpenError{Err: fmt.Errorf("empty document")}
	}

	reader, err := pdf.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return nil, &DocumentOpenError{Err: err}
	}

	return &pdfDocument{reader: reader, numPages: reader.NumPage()}, nil
}

func (d *pdfDocument) NumPage() int {
	return d.numPages
}

func (d *pdfDocument) PageText(n int) (text string, err error) {
	defer recoverPage(n, &err)

	page := d.reader.Page(n)
	if page.V.IsNull() {
		return "", nil
	}
	return page.GetPlainText(nil)
}

// PageLines reads the positioned glyphs of page n and groups them into lines.
func (d *pdfDocument) PageLines(n int) (lines []Line, err error) {
	defer recoverPage(n, &err)

	page := d.reader.Page(n)
	if page.V.IsNull() {
		return nil, nil
	}

	content := page.Content()
	glyphs := make([]Fragment, 0, len(content.Text))
	for _, t := range content.Text {
		glyphs = append(glyphs, Fragment{X: t.X, Y: t.Y, W: t.W, FontSize: t.FontSize, S: t.S})
	}
	return GroupLines(glyphs), nil
}

func recoverPage(n int, err *error) {
	if r := recover(); r != nil {
		*err = &PageExtractionError{Page: n, Err: fmt.Errorf("pdf reader panic: %v", r)}
	}
}

// ExtractText concatenates the text of every page in order, each followed by
// a newline. Pages without text, or whose text cannot be read, contribute
// nothing.
func ExtractText(doc Document, logger *utils.Logger) string {
	if logger == nil {
		logger = utils.NopLogger()
	}

	var textBuilder strings.Builder

	for i := 1; i <= doc.NumPage(); i++ {
		text, err := doc.PageText(i)
		if err != nil {
			logger.Warn("Skipping page, text extraction failed", "page", i, "error", err)
			continue
		}
		if text == "" {
			continue
		}

		textBuilder.WriteString(text)
		textBuilder.WriteString("\n")
	}

	return textBuilder.String()
}
