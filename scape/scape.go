// Package scape changes visibility and style of SVG elements addressed by
// layer label or identifier. Missing elements are reported to the log and
// otherwise ignored, so a single typo does not abort a long animation.
package scape

import (
	"github.com/beevik/etree"
	"go.uber.org/zap"

	"svgovl/style"
	"svgovl/svg"
)

const (
	Display = "display"
	Inline  = "inline"
	None    = "none"
)

// Scape edits a single document. Not safe for concurrent use.
type Scape struct {
	doc      *svg.Document
	log      *zap.Logger
	matching style.Matching
}

type Option func(*Scape)

// WithExactProperties switches property matching from substring to exact
// names.
func WithExactProperties(exact bool) Option {
	return func(s *Scape) {
		if exact {
			s.matching = style.MatchExact
		} else {
			s.matching = style.MatchSubstring
		}
	}
}

func New(doc *svg.Document, log *zap.Logger, opts ...Option) *Scape {
	s := &Scape{doc: doc, log: log, matching: style.MatchSubstring}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Document returns edited document.
func (s *Scape) Document() *svg.Document {
	return s.doc
}

// Layer returns top level group with this label or nil.
func (s *Scape) Layer(label string) *etree.Element {
	el := s.doc.FindLayer(label)
	if el == nil {
		s.log.Warn("Could not find layer", zap.String("label", label))
	}
	return el
}

// Object returns element of any kind with this id or nil.
func (s *Scape) Object(id string) *etree.Element {
	return s.doc.FindByID(id)
}

// Path returns path element with this id or nil.
func (s *Scape) Path(id string) *etree.Element {
	return s.doc.FindPathByID(id)
}

// Text returns text element with this id or nil.
func (s *Scape) Text(id string) *etree.Element {
	return s.doc.FindTextByID(id)
}

// ShowLayer makes layer element visible, nil layer is ignored.
func (s *Scape) ShowLayer(layer *etree.Element) bool {
	return s.displayLayer(layer, Inline)
}

// HideLayer makes layer element invisible, nil layer is ignored.
func (s *Scape) HideLayer(layer *etree.Element) bool {
	return s.displayLayer(layer, None)
}

func (s *Scape) displayLayer(layer *etree.Element, value string) bool {
	if layer == nil {
		s.log.Warn("No layer to change", zap.String(Display, value))
		return false
	}
	s.merge(layer, svg.AttrStyle, Display, value)
	return true
}

// Show makes element with this id visible.
func (s *Scape) Show(id string) bool {
	return s.SetAttributeProperty(id, svg.AttrStyle, Display, Inline)
}

// Hide makes element with this id invisible.
func (s *Scape) Hide(id string) bool {
	return s.SetAttributeProperty(id, svg.AttrStyle, Display, None)
}

// SetStyleProperty sets property of style attribute of element with this id.
func (s *Scape) SetStyleProperty(id, property, value string) bool {
	return s.SetAttributeProperty(id, svg.AttrStyle, property, value)
}

// SetAttributeProperty sets property:value pair inside declaration kept in
// attribute of element with this id, other pairs are preserved.
func (s *Scape) SetAttributeProperty(id, attribute, property, value string) bool {
	el := s.doc.FindByID(id)
	if el == nil {
		s.log.Warn("Could not find object", zap.String("id", id))
		return false
	}
	s.merge(el, attribute, property, value)
	return true
}

// SetAttribute replaces whole attribute value of element with this id.
func (s *Scape) SetAttribute(id, attribute, value string) bool {
	el := s.doc.FindByID(id)
	if el == nil {
		s.log.Warn("Could not find object", zap.String("id", id))
		return false
	}
	el.CreateAttr(attribute, value)
	return true
}

// Save writes current state of the document to file.
func (s *Scape) Save(path string) error {
	return s.doc.Save(path)
}

func (s *Scape) merge(el *etree.Element, attribute, property, value string) {
	current := el.SelectAttrValue(attribute, "")
	merged := style.Merge(current, property, value, s.matching)
	el.CreateAttr(attribute, merged)
	s.log.Debug("Attribute changed",
		zap.String("id", el.SelectAttrValue(svg.AttrID, "")),
		zap.String("attribute", attribute),
		zap.String("was", current),
		zap.String("now", merged))
}
