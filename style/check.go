package style

import (
	"errors"
	"fmt"
	"io"
	"strings"

	parse "github.com/tdewolff/parse/v2"
	"github.com/tdewolff/parse/v2/css"
)

// CheckValue reports whether value can be put into declaration without
// changing its structure: no separators, blocks or unterminated strings
// outside of strings and urls. Merge itself accepts anything, this is for
// values coming from users.
func CheckValue(value string) error {
	lexer := css.NewLexer(parse.NewInput(strings.NewReader(value)))
	for {
		tt, data := lexer.Next()
		switch tt {
		case css.ErrorToken:
			if err := lexer.Err(); err != nil && !errors.Is(err, io.EOF) {
				return fmt.Errorf("malformed value %q: %w", value, err)
			}
			return nil
		case css.SemicolonToken, css.ColonToken:
			return fmt.Errorf("value %q contains separator %q", value, data)
		case css.LeftBraceToken, css.RightBraceToken:
			return fmt.Errorf("value %q contains block", value)
		case css.BadStringToken, css.BadURLToken:
			return fmt.Errorf("value %q contains unterminated %s", value, tt)
		}
	}
}

// CheckProperty accepts single identifier, custom properties and vendor
// prefixes included.
func CheckProperty(property string) error {
	lexer := css.NewLexer(parse.NewInput(strings.NewReader(property)))
	tt, _ := lexer.Next()
	if tt != css.IdentToken && tt != css.CustomPropertyNameToken {
		return fmt.Errorf("property %q is not an identifier", property)
	}
	if next, _ := lexer.Next(); next != css.ErrorToken {
		return fmt.Errorf("property %q is not a single identifier", property)
	}
	return nil
}
