// Package svg wraps parsed SVG document and finds elements in it.
package svg

import (
	"bytes"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"regexp"
	"strings"

	"github.com/beevik/etree"
	"golang.org/x/net/html/charset"
)

const (
	AttrID    = "id"
	AttrLabel = "inkscape:label"
	AttrStyle = "style"

	TagSVG   = "svg"
	TagGroup = "g"
	TagPath  = "path"
	TagText  = "text"
)

// Document is parsed SVG tree. Elements keep their identity while
// attributes are changed in place, document order is preserved.
type Document struct {
	tree   *etree.Document
	source string
}

// NewTree returns empty etree document with read settings used for drawings.
func NewTree() *etree.Document {
	doc := etree.NewDocument()
	doc.ReadSettings = etree.ReadSettings{
		// drawings saved with legacy encodings are converted on read
		CharsetReader: charset.NewReaderLabel,
		Permissive:    true,
		PreserveCData: true,
	}
	return doc
}

var encodingDecl = regexp.MustCompile(`encoding\s*=\s*("[^"]*"|'[^']*')`)

// DeclareUTF8 rewrites encoding in the XML declaration of tree. Content is
// always decoded to UTF-8 on read and written back as is.
func DeclareUTF8(tree *etree.Document) {
	for _, tok := range tree.Child {
		pi, ok := tok.(*etree.ProcInst)
		if !ok || pi.Target != "xml" {
			continue
		}
		pi.Inst = encodingDecl.ReplaceAllString(pi.Inst, `encoding="UTF-8"`)
		return
	}
}

// Parse reads document from r, source names where it came from.
func Parse(r io.Reader, source string) (*Document, error) {
	tree := NewTree()
	if _, err := tree.ReadFrom(r); err != nil {
		return nil, fmt.Errorf("unable to parse %s: %w", source, err)
	}
	if tree.Root() == nil {
		return nil, fmt.Errorf("unable to parse %s: document has no root element", source)
	}
	DeclareUTF8(tree)
	return &Document{tree: tree, source: source}, nil
}

// ParseBytes is Parse for in-memory data.
func ParseBytes(data []byte, source string) (*Document, error) {
	return Parse(bytes.NewReader(data), source)
}

// Load reads document from file.
func Load(path string) (*Document, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return Parse(f, path)
}

// Source returns name the document was loaded from.
func (d *Document) Source() string {
	return d.source
}

// BaseName returns file name of the source without directory and ".svg"
// extension. Artifacts produced from the document are named after it.
func (d *Document) BaseName() string {
	name := filepath.Base(filepath.FromSlash(d.source))
	if ext := filepath.Ext(name); strings.EqualFold(ext, ".svg") {
		name = strings.TrimSuffix(name, ext)
	}
	return name
}

// Root returns document element.
func (d *Document) Root() *etree.Element {
	return d.tree.Root()
}

// WriteTo serializes document.
func (d *Document) WriteTo(w io.Writer) (int64, error) {
	return d.tree.WriteTo(w)
}

// Bytes returns serialized document.
func (d *Document) Bytes() ([]byte, error) {
	return d.tree.WriteToBytes()
}

// Save serializes document to file, replacing it.
func (d *Document) Save(path string) error {
	if err := d.tree.WriteToFile(path); err != nil {
		return fmt.Errorf("unable to save %s: %w", path, err)
	}
	return nil
}
