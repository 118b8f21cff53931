package animate

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"strings"

	cli "github.com/urfave/cli/v3"
	"go.uber.org/zap"

	"svgovl/scape"
	"svgovl/state"
	"svgovl/style"
)

func SetFlags() []cli.Flag {
	return []cli.Flag{
		&cli.StringSliceFlag{Name: "show", Usage: "show layer with `LABEL`"},
		&cli.StringSliceFlag{Name: "hide", Usage: "hide layer with `LABEL`"},
		&cli.StringSliceFlag{Name: "show-id", Usage: "show element with `ID`"},
		&cli.StringSliceFlag{Name: "hide-id", Usage: "hide element with `ID`"},
		&cli.StringSliceFlag{Name: "style", Usage: "set style property, `EDIT` is id:property=value"},
		forceCodePageFlag,
	}
}

// StyleEdit is parsed --style argument.
type StyleEdit struct {
	ID       string
	Property string
	Value    string
}

// ParseStyleEdit parses "id:property=value". Value may be empty and may
// contain any characters.
func ParseStyleEdit(arg string) (StyleEdit, error) {
	id, rest, ok := strings.Cut(arg, ":")
	if !ok || len(id) == 0 {
		return StyleEdit{}, fmt.Errorf("malformed style edit %q, element id expected", arg)
	}
	property, value, ok := strings.Cut(rest, "=")
	if !ok || len(strings.TrimSpace(property)) == 0 {
		return StyleEdit{}, fmt.Errorf("malformed style edit %q, property=value expected", arg)
	}
	e := StyleEdit{ID: id, Property: strings.TrimSpace(property), Value: value}
	if err := errors.Join(style.CheckProperty(e.Property), style.CheckValue(e.Value)); err != nil {
		return StyleEdit{}, fmt.Errorf("malformed style edit %q: %w", arg, err)
	}
	return e, nil
}

// Set performs one-shot edits and saves drawing to destination. Hiding is
// done before showing, so the same label may be used to reset visibility.
func Set(ctx context.Context, cmd *cli.Command) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	env := state.EnvFromContext(ctx)
	log := env.Log.Named("set")

	dst := cmd.Args().Get(1)
	if len(dst) == 0 {
		return errors.New("no destination has been specified")
	}

	// check everything before loading
	edits := make([]StyleEdit, 0, len(cmd.StringSlice("style")))
	for _, arg := range cmd.StringSlice("style") {
		e, err := ParseStyleEdit(arg)
		if err != nil {
			return err
		}
		edits = append(edits, e)
	}

	doc, err := openSource(ctx, cmd, log)
	if err != nil {
		return err
	}

	sc := scape.New(doc, log, scape.WithExactProperties(env.Cfg.Overlay.StrictProperties))
	for _, label := range cmd.StringSlice("hide") {
		sc.HideLayer(sc.Layer(label))
	}
	for _, label := range cmd.StringSlice("show") {
		sc.ShowLayer(sc.Layer(label))
	}
	for _, id := range cmd.StringSlice("hide-id") {
		sc.Hide(id)
	}
	for _, id := range cmd.StringSlice("show-id") {
		sc.Show(id)
	}
	for _, e := range edits {
		sc.SetStyleProperty(e.ID, e.Property, e.Value)
	}

	if err := sc.Save(dst); err != nil {
		return err
	}
	env.Rpt.Store(fmt.Sprintf("result/%s", filepath.Base(dst)), dst)
	log.Info("Drawing saved", zap.String("destination", dst))
	return nil
}
