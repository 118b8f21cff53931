package scape

import (
	"bytes"
	"testing"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"

	"svgovl/svg"
)

func newScape(t *testing.T, opts ...Option) (*Scape, *observer.ObservedLogs) {
	t.Helper()
	doc, err := svg.Load("../testdata/layers.svg")
	if err != nil {
		t.Fatalf("load sample: %v", err)
	}
	core, logs := observer.New(zapcore.DebugLevel)
	return New(doc, zap.New(core), opts...), logs
}

func styleOf(t *testing.T, s *Scape, id string) string {
	t.Helper()
	el := s.Object(id)
	if el == nil {
		t.Fatalf("no element %q", id)
	}
	return el.SelectAttrValue("style", "")
}

func TestShowHideLayer(t *testing.T) {
	s, _ := newScape(t)

	if !s.ShowLayer(s.Layer("Step 1")) {
		t.Fatal("ShowLayer() reported failure")
	}
	if got := styleOf(t, s, "layer2"); got != "display:inline;" {
		t.Errorf("shown layer style = %q", got)
	}
	s.HideLayer(s.Layer("Step 1"))
	if got := styleOf(t, s, "layer2"); got != "display:none;" {
		t.Errorf("hidden layer style = %q", got)
	}

	// layer without style gets one
	s.HideLayer(s.Layer("Background"))
	if got := styleOf(t, s, "layer1"); got != "display:none;" {
		t.Errorf("hidden background style = %q", got)
	}
}

func TestMissingLayer(t *testing.T) {
	s, logs := newScape(t)
	before, err := s.Document().Bytes()
	if err != nil {
		t.Fatal(err)
	}

	if s.ShowLayer(s.Layer("No such layer")) {
		t.Error("ShowLayer(nil) must report failure")
	}
	if n := logs.FilterMessage("Could not find layer").FilterField(zap.String("label", "No such layer")).Len(); n != 1 {
		t.Errorf("expected one lookup diagnostic, got %d", n)
	}
	if logs.FilterMessage("No layer to change").Len() != 1 {
		t.Error("expected diagnostic for nil layer")
	}

	after, err := s.Document().Bytes()
	if err != nil {
		t.Fatal(err)
	}
	if !bytes.Equal(before, after) {
		t.Error("document changed by operation on missing layer")
	}
}

func TestShowHideByID(t *testing.T) {
	s, _ := newScape(t)

	s.Hide("rect1")
	if got := styleOf(t, s, "rect1"); got != "fill:#eeeeee;stroke:none;display:none;" {
		t.Errorf("style = %q", got)
	}
	s.Show("rect1")
	if got := styleOf(t, s, "rect1"); got != "fill:#eeeeee;stroke:none;display:inline;" {
		t.Errorf("style = %q", got)
	}
	// text without style attribute
	s.Hide("caption")
	if got := styleOf(t, s, "caption"); got != "display:none;" {
		t.Errorf("style = %q", got)
	}
}

func TestHideMissingID(t *testing.T) {
	s, logs := newScape(t)
	before, err := s.Document().Bytes()
	if err != nil {
		t.Fatal(err)
	}

	if s.Hide("nonexistent") {
		t.Error("Hide(nonexistent) must report failure")
	}
	if s.SetAttribute("nonexistent", "x", "1") {
		t.Error("SetAttribute(nonexistent) must report failure")
	}
	if n := logs.FilterMessage("Could not find object").Len(); n != 2 {
		t.Errorf("expected 2 diagnostics, got %d", n)
	}

	after, err := s.Document().Bytes()
	if err != nil {
		t.Fatal(err)
	}
	if !bytes.Equal(before, after) {
		t.Error("document changed by operation on missing element")
	}
}

func TestSetStyleProperty(t *testing.T) {
	s, _ := newScape(t)

	s.SetStyleProperty("arrow", "stroke", "#ff0000")
	if got := styleOf(t, s, "arrow"); got != "fill:none;stroke:#ff0000;stroke-width:2" {
		t.Errorf("style = %q", got)
	}
	// duplicated id: only the first element is changed
	if got := s.Text("arrow").SelectAttrValue("style", ""); got != "" {
		t.Errorf("second element with the same id changed: %q", got)
	}
}

func TestSetStyleProperty_Matching(t *testing.T) {
	// "width" is a suffix of "stroke-width"
	s, _ := newScape(t)
	s.SetStyleProperty("arrow", "width", "5")
	if got := styleOf(t, s, "arrow"); got != "fill:none;stroke:#000000;stroke-width:5;" {
		t.Errorf("substring matching: style = %q", got)
	}

	s, _ = newScape(t, WithExactProperties(true))
	s.SetStyleProperty("arrow", "width", "5")
	if got := styleOf(t, s, "arrow"); got != "fill:none;stroke:#000000;stroke-width:2;width:5;" {
		t.Errorf("exact matching: style = %q", got)
	}
}

func TestSetAttributeProperty(t *testing.T) {
	s, _ := newScape(t)
	s.SetAttributeProperty("dot", "data-anim", "step", "3")
	if got := s.Object("dot").SelectAttrValue("data-anim", ""); got != "step:3;" {
		t.Errorf("data-anim = %q", got)
	}
}

func TestSetAttribute(t *testing.T) {
	s, _ := newScape(t)
	if !s.SetAttribute("dot", "r", "20") {
		t.Fatal("SetAttribute() reported failure")
	}
	if got := s.Object("dot").SelectAttrValue("r", ""); got != "20" {
		t.Errorf("r = %q, want 20", got)
	}
	s.SetAttribute("dot", "style", "fill:blue")
	if got := styleOf(t, s, "dot"); got != "fill:blue" {
		t.Errorf("style replaced = %q", got)
	}
}

func TestPathAndText(t *testing.T) {
	s, _ := newScape(t)
	if el := s.Path("arrow"); el == nil || el.Tag != "path" {
		t.Errorf("Path(arrow) = %v", el)
	}
	if el := s.Text("arrow"); el == nil || el.Tag != "text" {
		t.Errorf("Text(arrow) = %v", el)
	}
}
