package svg

import (
	"archive/zip"
	"bytes"
	"os"
	"path/filepath"
	"slices"
	"strings"
	"testing"
)

const sampleSVG = "../testdata/layers.svg"

func loadSample(t *testing.T) *Document {
	t.Helper()
	doc, err := Load(sampleSVG)
	if err != nil {
		t.Fatalf("load sample: %v", err)
	}
	return doc
}

func TestFindLayer(t *testing.T) {
	doc := loadSample(t)

	tests := []struct {
		label string
		id    string
	}{
		{"Background", "layer1"},
		{"Step 1", "layer2"},
		{"Step 2", "layer3"},
		{"Step 10", "layer4"},
		{"Step 3", ""},
		{"", ""},
	}
	for _, tt := range tests {
		t.Run(tt.label, func(t *testing.T) {
			el := doc.FindLayer(tt.label)
			if tt.id == "" {
				if el != nil {
					t.Fatalf("FindLayer(%q) = %v, want nil", tt.label, el.SelectAttrValue("id", ""))
				}
				return
			}
			if el == nil {
				t.Fatalf("FindLayer(%q) = nil", tt.label)
			}
			if got := el.SelectAttrValue("id", ""); got != tt.id {
				t.Errorf("FindLayer(%q) id = %q, want %q", tt.label, got, tt.id)
			}
		})
	}
}

func TestFindLayer_OnlyTopLevel(t *testing.T) {
	doc, err := ParseBytes([]byte(`<svg xmlns:inkscape="http://www.inkscape.org/namespaces/inkscape">
  <g id="outer"><g inkscape:label="Inner" id="inner"/></g>
</svg>`), "nested.svg")
	if err != nil {
		t.Fatal(err)
	}
	if el := doc.FindLayer("Inner"); el != nil {
		t.Error("nested group must not be found as a layer")
	}
}

func TestFindByID(t *testing.T) {
	doc := loadSample(t)

	if el := doc.FindByID("svg1"); el == nil || el.Tag != TagSVG {
		t.Error("document element must be found by id")
	}
	if el := doc.FindByID("dot"); el == nil || el.Tag != "circle" {
		t.Errorf("FindByID(dot) = %v", el)
	}
	// duplicated identifier: first in document order wins
	if el := doc.FindByID("arrow"); el == nil || el.Tag != TagPath {
		t.Errorf("FindByID(arrow) must return the path, got %v", el)
	}
	if el := doc.FindByID("nonexistent"); el != nil {
		t.Errorf("FindByID(nonexistent) = %v, want nil", el)
	}
}

func TestFindByKind(t *testing.T) {
	doc := loadSample(t)

	if el := doc.FindPathByID("arrow"); el == nil || el.Tag != TagPath {
		t.Errorf("FindPathByID(arrow) = %v", el)
	}
	if el := doc.FindTextByID("arrow"); el == nil || el.Tag != TagText || el.Text() != "not a path" {
		t.Errorf("FindTextByID(arrow) = %v", el)
	}
	if el := doc.FindPathByID("caption"); el != nil {
		t.Error("FindPathByID(caption) must not return text element")
	}
	if el := doc.FindTextByID("caption"); el == nil {
		t.Error("FindTextByID(caption) = nil")
	}
}

func TestLayers(t *testing.T) {
	doc := loadSample(t)
	layers := doc.Layers()
	var labels []string
	for _, l := range layers {
		labels = append(labels, l.Label+"="+l.ID)
	}
	want := "Background=layer1,Step 1=layer2,Step 2=layer3,Step 10=layer4"
	if got := strings.Join(labels, ","); got != want {
		t.Errorf("Layers() = %s, want %s", got, want)
	}
	if layers[0].Element != doc.FindLayer("Background") {
		t.Error("layer element must be the same node FindLayer returns")
	}
}

func TestBaseName(t *testing.T) {
	tests := []struct {
		source, want string
	}{
		{"deck.svg", "deck"},
		{"dir/deck.SVG", "deck"},
		{"archive.zip/inner/anim.svg", "anim"},
		{"drawing", "drawing"},
		{"drawing.v2.svg", "drawing.v2"},
	}
	for _, tt := range tests {
		doc := &Document{source: tt.source}
		if got := doc.BaseName(); got != tt.want {
			t.Errorf("BaseName(%q) = %q, want %q", tt.source, got, tt.want)
		}
	}
}

func TestSaveKeepsMutations(t *testing.T) {
	doc := loadSample(t)
	el := doc.FindByID("dot")
	el.CreateAttr("style", "fill:#00ff00")

	// identity survives mutation
	if doc.FindByID("dot") != el {
		t.Fatal("element identity changed after mutation")
	}

	out := filepath.Join(t.TempDir(), "out.svg")
	if err := doc.Save(out); err != nil {
		t.Fatalf("Save() error = %v", err)
	}
	saved, err := Load(out)
	if err != nil {
		t.Fatalf("reload: %v", err)
	}
	if got := saved.FindByID("dot").SelectAttrValue("style", ""); got != "fill:#00ff00" {
		t.Errorf("saved style = %q", got)
	}
	if got := saved.FindLayer("Step 2"); got == nil {
		t.Error("namespaced label lost on save")
	}

	var buf bytes.Buffer
	if _, err := doc.WriteTo(&buf); err != nil {
		t.Fatalf("WriteTo() error = %v", err)
	}
	data, err := doc.Bytes()
	if err != nil {
		t.Fatalf("Bytes() error = %v", err)
	}
	if !bytes.Equal(buf.Bytes(), data) {
		t.Error("WriteTo() and Bytes() differ")
	}
}

func TestSave_BadPath(t *testing.T) {
	doc := loadSample(t)
	if err := doc.Save(filepath.Join(t.TempDir(), "missing", "out.svg")); err == nil {
		t.Error("expected error for unwritable destination")
	}
}

func TestParse_Errors(t *testing.T) {
	if _, err := ParseBytes([]byte(""), "empty.svg"); err == nil {
		t.Error("expected error for empty document")
	}
	if _, err := Load("../testdata/absent.svg"); err == nil {
		t.Error("expected error for absent file")
	}
}

func TestOpen(t *testing.T) {
	t.Run("plain file", func(t *testing.T) {
		doc, err := Open(sampleSVG, nil)
		if err != nil {
			t.Fatalf("Open() error = %v", err)
		}
		if doc.BaseName() != "layers" {
			t.Errorf("BaseName() = %q", doc.BaseName())
		}
	})

	t.Run("inside archive", func(t *testing.T) {
		data, err := os.ReadFile(sampleSVG)
		if err != nil {
			t.Fatal(err)
		}
		arc := filepath.Join(t.TempDir(), "deck.zip")
		f, err := os.Create(arc)
		if err != nil {
			t.Fatal(err)
		}
		w := zip.NewWriter(f)
		fw, err := w.Create("figures/anim.svg")
		if err != nil {
			t.Fatal(err)
		}
		if _, err := fw.Write(data); err != nil {
			t.Fatal(err)
		}
		if err := w.Close(); err != nil {
			t.Fatal(err)
		}
		f.Close()

		doc, err := Open(filepath.Join(arc, "figures", "anim.svg"), nil)
		if err != nil {
			t.Fatalf("Open() error = %v", err)
		}
		if doc.BaseName() != "anim" {
			t.Errorf("BaseName() = %q, want anim", doc.BaseName())
		}
		if doc.FindLayer("Step 1") == nil {
			t.Error("document from archive is incomplete")
		}

		if _, err := Open(filepath.Join(arc, "figures", "absent.svg"), nil); err == nil {
			t.Error("expected error for absent archive entry")
		}
	})

	t.Run("not an archive", func(t *testing.T) {
		if _, err := Open(filepath.Join(sampleSVG, "inner.svg"), nil); err == nil {
			t.Error("expected error for path below regular file")
		}
	})

	t.Run("missing", func(t *testing.T) {
		if _, err := Open(filepath.Join(t.TempDir(), "absent.svg"), nil); err == nil {
			t.Error("expected error for missing source")
		}
	})

	t.Run("directory", func(t *testing.T) {
		if _, err := Open(t.TempDir(), nil); err == nil {
			t.Error("expected error for directory source")
		}
	})
}

func TestSortLayers(t *testing.T) {
	doc := loadSample(t)
	layers := doc.Layers()
	// reverse document order first so sorting has work to do
	slices.Reverse(layers)
	SortLayers(layers)

	var labels []string
	for _, l := range layers {
		labels = append(labels, l.Label)
	}
	want := "Background,Step 1,Step 2,Step 10"
	if got := strings.Join(labels, ","); got != want {
		t.Errorf("SortLayers() = %s, want %s", got, want)
	}
}

func TestVisible(t *testing.T) {
	doc := loadSample(t)
	tests := map[string]bool{
		"layer1": true,
		"layer2": false,
		"layer4": true,
		"rect1":  true,
	}
	for id, want := range tests {
		if got := Visible(doc.FindByID(id)); got != want {
			t.Errorf("Visible(%s) = %v, want %v", id, got, want)
		}
	}
}

func TestString(t *testing.T) {
	out := loadSample(t).String()
	for _, want := range []string{
		"4 layers",
		`  Layer label="Step 1" id="layer2" state="hidden"`,
		`    path id="arrow" style="fill:none;stroke:#000000;stroke-width:2"`,
		`      text id="arrow"`,
		`ID="arrow" used 2 times`,
	} {
		if !strings.Contains(out, want) {
			t.Errorf("String() lacks %q:\n%s", want, out)
		}
	}
}

func TestParse_LegacyEncoding(t *testing.T) {
	// "Слой" in windows-1251
	data := []byte("<?xml version=\"1.0\" encoding=\"windows-1251\"?>\n" +
		"<svg xmlns:inkscape=\"http://www.inkscape.org/namespaces/inkscape\">" +
		"<g inkscape:label=\"\xd1\xeb\xee\xe9\" id=\"l1\"/></svg>")
	doc, err := ParseBytes(data, "legacy.svg")
	if err != nil {
		t.Fatalf("ParseBytes() error = %v", err)
	}
	if doc.FindLayer("Слой") == nil {
		t.Error("label was not decoded")
	}
}

func TestSave_LegacyEncodingDeclaredUTF8(t *testing.T) {
	data := []byte("<?xml version=\"1.0\" encoding='windows-1251' standalone=\"no\"?>\n" +
		"<svg xmlns:inkscape=\"http://www.inkscape.org/namespaces/inkscape\">" +
		"<g inkscape:label=\"\xd1\xeb\xee\xe9\" id=\"l1\"/></svg>")
	doc, err := ParseBytes(data, "legacy.svg")
	if err != nil {
		t.Fatalf("ParseBytes() error = %v", err)
	}

	path := filepath.Join(t.TempDir(), "saved.svg")
	if err := doc.Save(path); err != nil {
		t.Fatalf("Save() error = %v", err)
	}
	saved, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	const head = `<?xml version="1.0" encoding="UTF-8" standalone="no"?>`
	if !bytes.HasPrefix(saved, []byte(head)) {
		t.Errorf("saved declaration = %q, want prefix %q", saved[:min(len(saved), 64)], head)
	}

	reloaded, err := Load(path)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if reloaded.FindLayer("Слой") == nil {
		t.Error("label did not survive save and reload")
	}
}
