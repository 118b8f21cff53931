package svg

import (
	"github.com/beevik/etree"
)

// Layer describes top level group.
type Layer struct {
	Label   string
	ID      string
	Element *etree.Element
}

// topGroups returns group children of the root svg element in document order.
func (d *Document) topGroups() []*etree.Element {
	root := d.Root()
	if root == nil || root.Tag != TagSVG {
		return nil
	}
	var groups []*etree.Element
	for _, el := range root.ChildElements() {
		if el.Tag == TagGroup {
			groups = append(groups, el)
		}
	}
	return groups
}

// FindLayer returns first top level group labeled label or nil.
func (d *Document) FindLayer(label string) *etree.Element {
	for _, g := range d.topGroups() {
		if v := g.SelectAttr(AttrLabel); v != nil && v.Value == label {
			return g
		}
	}
	return nil
}

// Layers lists top level groups in document order.
func (d *Document) Layers() []Layer {
	groups := d.topGroups()
	layers := make([]Layer, 0, len(groups))
	for _, g := range groups {
		layers = append(layers, Layer{
			Label:   g.SelectAttrValue(AttrLabel, ""),
			ID:      g.SelectAttrValue(AttrID, ""),
			Element: g,
		})
	}
	return layers
}

// FindByID returns first element of any kind (document element included)
// with matching identifier. Identifiers are not checked for uniqueness.
func (d *Document) FindByID(id string) *etree.Element {
	return d.find(id, "")
}

// FindPathByID is FindByID limited to path elements.
func (d *Document) FindPathByID(id string) *etree.Element {
	return d.find(id, TagPath)
}

// FindTextByID is FindByID limited to text elements.
func (d *Document) FindTextByID(id string) *etree.Element {
	return d.find(id, TagText)
}

func (d *Document) find(id, tag string) *etree.Element {
	root := d.Root()
	if root == nil {
		return nil
	}
	return walk(root, func(el *etree.Element) bool {
		if len(tag) > 0 && el.Tag != tag {
			return false
		}
		v := el.SelectAttr(AttrID)
		return v != nil && v.Value == id
	})
}

// walk visits el and its descendants in document order and returns first
// element accepted by match.
func walk(el *etree.Element, match func(*etree.Element) bool) *etree.Element {
	if match(el) {
		return el
	}
	for _, child := range el.ChildElements() {
		if found := walk(child, match); found != nil {
			return found
		}
	}
	return nil
}
