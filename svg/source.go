package svg

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"golang.org/x/text/encoding"

	"svgovl/archive"
)

// Open loads document from src which is either path to a file or path into
// zip archive: "[path_to_archive]archive.zip/path_in_archive/drawing.svg".
// Non UTF-8 entry names are decoded with cp if it is not nil.
func Open(src string, cp encoding.Encoding) (*Document, error) {
	src = filepath.Clean(src)

	for head := src; len(head) != 0; head, _ = filepath.Split(head) {
		head = strings.TrimSuffix(head, string(filepath.Separator))
		if len(head) == 0 {
			break
		}

		fi, err := os.Stat(head)
		if err != nil {
			// does not exist - probably path inside archive
			continue
		}
		if !fi.Mode().IsRegular() {
			return nil, fmt.Errorf("input source was not found (%s) => (%s)", head, strings.TrimPrefix(src, head))
		}

		inner := strings.TrimPrefix(strings.TrimPrefix(src, head), string(filepath.Separator))
		if len(inner) == 0 {
			return Load(head)
		}

		isArc, err := archive.IsArchive(head)
		if err != nil {
			return nil, fmt.Errorf("unable to check archive type: %w", err)
		}
		if !isArc {
			return nil, fmt.Errorf("input source is not an archive (%s) => (%s)", head, inner)
		}
		data, err := archive.ReadFile(head, filepath.ToSlash(inner), cp)
		if err != nil {
			return nil, fmt.Errorf("unable to read from archive %s: %w", head, err)
		}
		return ParseBytes(data, src)
	}
	return nil, fmt.Errorf("input source was not found (%s)", src)
}
