package animate

import (
	"context"
	"fmt"

	cli "github.com/urfave/cli/v3"
	"go.uber.org/zap"

	"svgovl/state"
	"svgovl/svg"
	"svgovl/utils/debug"
)

func LayersFlags() []cli.Flag {
	return []cli.Flag{
		&cli.BoolFlag{Name: "sort", Aliases: []string{"s"}, Usage: "order layers by label instead of document order"},
		&cli.BoolFlag{Name: "tree", Aliases: []string{"t"}, Usage: "output complete document outline"},
		forceCodePageFlag,
	}
}

// Layers lists layers of the drawing, labels listed here are what scripts
// refer to.
func Layers(ctx context.Context, cmd *cli.Command) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	env := state.EnvFromContext(ctx)
	log := env.Log.Named("layers")

	doc, err := openSource(ctx, cmd, log)
	if err != nil {
		return err
	}
	if cmd.Args().Len() > 1 {
		log.Warn("Malformed command line, too many arguments", zap.Strings("ignoring", cmd.Args().Slice()[1:]))
	}

	out := cmd.Root().Writer
	if cmd.Bool("tree") {
		_, err = fmt.Fprint(out, doc.String())
		return err
	}

	layers := doc.Layers()
	if cmd.Bool("sort") {
		svg.SortLayers(layers)
	}
	tw := debug.NewTreeWriter()
	for _, l := range layers {
		vis := "visible"
		if !svg.Visible(l.Element) {
			vis = "hidden"
		}
		tw.Node(0, vis, "label", l.Label, "id", l.ID)
	}
	if len(layers) == 0 {
		log.Warn("No layers found", zap.String("source", doc.Source()))
	}
	_, err = fmt.Fprint(out, tw.String())
	return err
}
