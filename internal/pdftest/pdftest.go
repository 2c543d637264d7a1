// Package pdftest generates small PDFs for tests.
package pdftest

import (
	"bytes"
	"fmt"
	"strings"
)

var escaper = strings.NewReplacer(`\`, `\\`, "(", `\(`, ")", `\)`)

// helveticaWidths are the Helvetica advance widths for codes 32 to 126, in
// thousandths of the font size.
var helveticaWidths = []int{
	278, 278, 355, 556, 556, 889, 667, 191, 333, 333, 389, 584, 278, 333, 278, 278,
	556, 556, 556, 556, 556, 556, 556, 556, 556, 556, 278, 278, 584, 584, 584, 556,
	1015, 667, 667, 722, 722, 667, 611, 778, 722, 278, 500, 667, 556, 833, 722, 778,
	667, 778, 722, 667, 611, 722, 667, 944, 667, 667, 611, 278, 278, 278, 469, 556,
	333, 556, 556, 500, 556, 556, 278, 556, 556, 222, 222, 500, 222, 833, 556, 556,
	556, 556, 333, 500, 278, 556, 500, 722, 500, 500, 500, 334, 260, 334, 584,
}

// TextWidth is the advance of s in Helvetica at fontSize.
func TextWidth(s string, fontSize float64) float64 {
	var w int
	for i := 0; i < len(s); i++ {
		if c := int(s[i]); c >= 32 && c <= 126 {
			w += helveticaWidths[c-32]
		}
	}
	return float64(w) / 1000 * fontSize
}

// Run is a string drawn with its baseline starting at X, Y.
type Run struct {
	X, Y float64
	Text string
}

// Build writes a minimal uncompressed PDF with one page per entry. Empty
// entries produce pages without text.
func Build(pages []string) []byte {
	contents := make([]string, len(pages))
	for i, text := range pages {
		if text != "" {
			contents[i] = fmt.Sprintf("BT /F1 12 Tf 72 720 Td (%s) Tj ET", escaper.Replace(text))
		}
	}
	return write(contents)
}

// BuildRuns writes one page per entry, placing every run with a relative Td
// move from the previous one, the way most producers lay out text.
func BuildRuns(pages [][]Run, fontSize float64) []byte {
	contents := make([]string, len(pages))
	for i, runs := range pages {
		if len(runs) == 0 {
			continue
		}

		var b strings.Builder
		fmt.Fprintf(&b, "BT /F1 %g Tf", fontSize)
		var x, y float64
		for _, r := range runs {
			fmt.Fprintf(&b, " %g %g Td (%s) Tj", r.X-x, r.Y-y, escaper.Replace(r.Text))
			x, y = r.X, r.Y
		}
		b.WriteString(" ET")
		contents[i] = b.String()
	}
	return write(contents)
}

func write(contents []string) []byte {
	var objects []string
	objects = append(objects, "<< /Type /Catalog /Pages 2 0 R >>")

	kids := make([]string, len(contents))
	for i := range contents {
		kids[i] = fmt.Sprintf("%d 0 R", 4+2*i)
	}
	objects = append(objects, fmt.Sprintf("<< /Type /Pages /Kids [%s] /Count %d /MediaBox [0 0 612 792] >>", strings.Join(kids, " "), len(contents)))

	widths := make([]string, len(helveticaWidths))
	for i, w := range helveticaWidths {
		widths[i] = fmt.Sprint(w)
	}
	objects = append(objects, fmt.Sprintf("<< /Type /Font /Subtype /Type1 /BaseFont /Helvetica /Encoding /WinAnsiEncoding /FirstChar 32 /LastChar 126 /Widths [%s] >>", strings.Join(widths, " ")))

	for i, content := range contents {
		objects = append(objects, fmt.Sprintf("<< /Type /Page /Parent 2 0 R /Resources << /Font << /F1 3 0 R >> >> /Contents %d 0 R >>", 5+2*i))
		objects = append(objects, fmt.Sprintf("<< /Length %d >>\nstream\n%s\nendstream", len(content), content))
	}

	var buf bytes.Buffer
	buf.WriteString("%PDF-1.4\n")
	offsets := make([]int, len(objects))
	for i, obj := range objects {
		offsets[i] = buf.Len()
		fmt.Fprintf(&buf, "%d 0 obj\n%s\nendobj\n", i+1, obj)
	}

	xref := buf.Len()
	fmt.Fprintf(&buf, "xref\n0 %d\n", len(objects)+1)
	buf.WriteString("0000000000 65535 f \n")
	for _, off := range offsets {
		fmt.Fprintf(&buf, "%010d 00000 n \n", off)
	}
	fmt.Fprintf(&buf, "trailer\n<< /Size %d /Root 1 0 R >>\nstartxref\n%d\n%%%%EOF\n", len(objects)+1, xref)

	return buf.Bytes()
}
