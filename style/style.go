// Package style edits inline CSS-like declarations ("name:value;name:value;")
// carried by SVG attributes without disturbing unrelated pairs.
package style

import (
	"strings"
)

const (
	Separator = ";"
	Assign    = ":"
)

// Matching selects how a requested property is matched against pair names.
type Matching int

const (
	// MatchSubstring replaces the first pair whose name ends with the
	// requested property, i.e. wherever "property:" occurs in the raw text.
	// "display" therefore also hits "-inkscape-display:x" and a property
	// occurring only in values or as a name prefix blocks appending. This is
	// how declarations were always edited and remains the default.
	MatchSubstring Matching = iota
	// MatchExact compares whole (space trimmed) names.
	MatchExact
)

// Setting returns "property:value;".
func Setting(property, value string) string {
	return property + Assign + value + Separator
}

// Pair is a single declaration entry. Raw keeps text of the entry exactly as
// it was found, entries without ':' have empty Name.
type Pair struct {
	Name  string
	Value string
	Raw   string
}

// Parse splits declaration into pairs in original order. Empty entries
// (between adjacent separators or after trailing one) are dropped.
func Parse(decl string) []Pair {
	var pairs []Pair
	for raw := range strings.SplitSeq(decl, Separator) {
		if len(strings.TrimSpace(raw)) == 0 {
			continue
		}
		p := Pair{Raw: raw}
		if name, value, ok := strings.Cut(raw, Assign); ok {
			p.Name, p.Value = strings.TrimSpace(name), strings.TrimSpace(value)
		}
		pairs = append(pairs, p)
	}
	return pairs
}

// Get returns value of the first pair named exactly property.
func Get(decl, property string) (string, bool) {
	for _, p := range Parse(decl) {
		if p.Name == property {
			return p.Value, true
		}
	}
	return "", false
}

// Merge returns decl with property set to value. All other entries are kept
// verbatim and in order:
//
//   - empty declaration becomes "property:value;"
//   - first matching entry is rewritten in place (terminated by separator)
//   - otherwise "property:value;" is appended, separator is inserted first
//     if decl does not end with one
//
// Merging the same property and value twice gives the same result as once.
// Empty property leaves decl unchanged.
func Merge(decl, property, value string, mode Matching) string {
	if len(property) == 0 {
		return decl
	}
	if len(strings.TrimSpace(decl)) == 0 {
		return Setting(property, value)
	}

	switch mode {
	case MatchExact:
		if out, ok := replaceFirst(decl, property, value, exactName); ok {
			return out
		}
	default:
		if strings.Contains(decl, property) {
			// property text is present somewhere: only replacement is
			// possible, even if nothing qualifies
			out, _ := replaceFirst(decl, property, value, suffixName)
			return out
		}
	}

	if !strings.HasSuffix(decl, Separator) {
		decl += Separator
	}
	return decl + Setting(property, value)
}

// nameMatcher reports whether entry name (untrimmed) matches property and
// returns what has to be kept in front of the new "property:value".
type nameMatcher func(name, property string) (keep string, ok bool)

func suffixName(name, property string) (string, bool) {
	if !strings.HasSuffix(name, property) {
		return "", false
	}
	return strings.TrimSuffix(name, property), true
}

func exactName(name, property string) (string, bool) {
	if strings.TrimSpace(name) != property {
		return "", false
	}
	// leading whitespace is part of the entry formatting
	return name[:len(name)-len(strings.TrimLeft(name, " \t\r\n"))], true
}

func replaceFirst(decl, property, value string, match nameMatcher) (string, bool) {
	parts := strings.Split(decl, Separator)
	for i, raw := range parts {
		name, _, ok := strings.Cut(raw, Assign)
		if !ok {
			continue
		}
		keep, ok := match(name, property)
		if !ok {
			continue
		}
		parts[i] = keep + property + Assign + value
		out := strings.Join(parts, Separator)
		if i == len(parts)-1 {
			// replaced run reached end of string, it is always terminated
			out += Separator
		}
		return out, true
	}
	return decl, false
}
