package extractor

import (
	"errors"
)

// fakeDocument serves canned page content. A non-nil entry in errs makes the
// matching page fail.
type fakeDocument struct {
	texts []string
	lines [][]Line
	errs  map[int]error
}

func (d *fakeDocument) NumPage() int {
	if d.lines != nil {
		return len(d.lines)
	}
	return len(d.texts)
}

func (d *fakeDocument) PageText(n int) (string, error) {
	if err := d.errs[n]; err != nil {
		return "", err
	}
	return d.texts[n-1], nil
}

func (d *fakeDocument) PageLines(n int) ([]Line, error) {
	if err := d.errs[n]; err != nil {
		return nil, err
	}
	return d.lines[n-1], nil
}

var errBrokenPage = errors.New("broken content stream")

// frag builds a fragment whose width is proportional to its length.
func frag(x float64, s string) Fragment {
	return Fragment{X: x, W: float64(len(s)) * 5, FontSize: 10, S: s}
}
