package svg

import (
	"maps"
	"slices"
	"sort"

	"github.com/beevik/etree"
	"github.com/maruel/natural"

	"svgovl/style"
	"svgovl/utils/debug"
)

// Visible reports whether element style does not hide it.
func Visible(el *etree.Element) bool {
	v, ok := style.Get(el.SelectAttrValue(AttrStyle, ""), "display")
	return !ok || v != "none"
}

// SortLayers orders layers by label, numbers inside labels are compared by
// value so "Step 2" goes before "Step 10".
func SortLayers(layers []Layer) {
	sort.SliceStable(layers, func(i, j int) bool {
		return natural.Less(layers[i].Label, layers[j].Label)
	})
}

// String returns readable outline of the document: layers with their
// content followed by identifiers index. It exists solely for manual
// inspection during debugging.
func (d *Document) String() string {
	tw := debug.NewTreeWriter()

	layers := d.Layers()
	tw.Line(0, "Document %q: %d layers", d.source, len(layers))
	for _, l := range layers {
		state := "visible"
		if !Visible(l.Element) {
			state = "hidden"
		}
		tw.Node(1, "Layer", "label", l.Label, "id", l.ID, "state", state)
		for _, child := range l.Element.ChildElements() {
			outline(tw, 2, child)
		}
	}

	ids := make(map[string]int)
	if root := d.Root(); root != nil {
		walk(root, func(el *etree.Element) bool {
			if id := el.SelectAttrValue(AttrID, ""); len(id) > 0 {
				ids[id]++
			}
			return false
		})
	}
	tw.Line(0, "IDIndex (%d entries)", len(ids))
	keys := slices.Collect(maps.Keys(ids))
	sort.Sort(natural.StringSlice(keys))
	for _, k := range keys {
		if n := ids[k]; n > 1 {
			tw.Line(1, "ID=%q used %d times, first in document order wins", k, n)
		}
	}
	return tw.String()
}

func outline(tw *debug.TreeWriter, depth int, el *etree.Element) {
	tw.Node(depth, el.FullTag(), "id", el.SelectAttrValue(AttrID, ""), "style", el.SelectAttrValue(AttrStyle, ""))
	for _, child := range el.ChildElements() {
		outline(tw, depth+1, child)
	}
}
