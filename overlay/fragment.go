package overlay

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"text/template"

	sprig "github.com/go-task/slim-sprig/v3"
)

// Slide references one snapshot from a fragment.
type Slide struct {
	Index int
	Name  string
}

// FragmentValues is available to fragment template.
type FragmentValues struct {
	Title  string
	Prefix string
	Base   string
	Number int
	Slides []Slide
}

// FragmentWriter produces presentation include files.
type FragmentWriter struct {
	dir  string
	base string
	ext  string
	tmpl *template.Template
}

func newFragmentWriter(dir, base, ext, text string) (*FragmentWriter, error) {
	tmpl, err := template.New("fragment").Funcs(sprig.FuncMap()).Parse(text)
	if err != nil {
		return nil, fmt.Errorf("unable to parse fragment template: %w", err)
	}
	return &FragmentWriter{dir: dir, base: base, ext: ext, tmpl: tmpl}, nil
}

// FileName returns path of fragment file number.
func (w *FragmentWriter) FileName(number int) string {
	return filepath.Join(w.dir, w.base+strconv.Itoa(number)+w.ext)
}

// Write creates fragment file number referencing snapshots from..to
// (inclusive). Empty range produces file without slides.
func (w *FragmentWriter) Write(number int, title, prefix string, from, to int) (string, error) {
	values := FragmentValues{
		Title:  title,
		Prefix: prefix,
		Base:   w.base,
		Number: number,
	}
	for i := from; i <= to; i++ {
		values.Slides = append(values.Slides, Slide{Index: i, Name: w.base + strconv.Itoa(i)})
	}

	buf := new(bytes.Buffer)
	if err := w.tmpl.Execute(buf, values); err != nil {
		return "", fmt.Errorf("unable to expand fragment template: %w", err)
	}

	name := w.FileName(number)
	if err := os.WriteFile(name, buf.Bytes(), 0644); err != nil {
		return "", err
	}
	return name, nil
}
