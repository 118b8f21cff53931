// Package animate implements program commands: running animation scripts
// against SVG drawings, listing layers and one-shot edits.
package animate

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"

	cli "github.com/urfave/cli/v3"
	"go.uber.org/zap"
	"golang.org/x/text/encoding/ianaindex"

	"svgovl/state"
	"svgovl/svg"
)

var forceCodePageFlag = &cli.StringFlag{Name: "force-zip-cp",
	Usage: "Force `ENCODING` for ALL non UTF-8 file names in archives (see IANA.org for character set names)"}

// Since zip "standard" does not define file name encoding we may need to
// force archaic code page for old archives
func selectCodePage(cmd *cli.Command, env *state.LocalEnv, log *zap.Logger) {
	cp := cmd.String("force-zip-cp")
	if len(cp) == 0 {
		return
	}
	var err error
	env.CodePage, err = ianaindex.IANA.Encoding(cp)
	if err != nil || env.CodePage == nil {
		log.Warn("Unknown character set specification. Ignoring...", zap.String("charset", cp), zap.Error(err))
		env.CodePage = nil
		return
	}
	n, _ := ianaindex.IANA.Name(env.CodePage)
	log.Debug("Forcefully converting all non UTF-8 file names in archives", zap.String("charset", n))
}

// openSource loads drawing named by the first command argument and puts its
// original content into debug report.
func openSource(ctx context.Context, cmd *cli.Command, log *zap.Logger) (*svg.Document, error) {
	env := state.EnvFromContext(ctx)

	src := cmd.Args().Get(0)
	if len(src) == 0 {
		return nil, errors.New("no input source has been specified")
	}
	selectCodePage(cmd, env, log)

	doc, err := svg.Open(src, env.CodePage)
	if err != nil {
		return nil, fmt.Errorf("unable to load drawing: %w", err)
	}
	if env.Rpt != nil {
		if data, err := doc.Bytes(); err == nil {
			env.Rpt.StoreData(fmt.Sprintf("source/%s", filepath.Base(src)), data)
		}
	}
	return doc, nil
}
