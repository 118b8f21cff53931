package animate

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	cli "github.com/urfave/cli/v3"
	"go.uber.org/zap"

	"svgovl/overlay"
	"svgovl/script"
	"svgovl/state"
)

// RunFlags are flags of "run" command.
func RunFlags() []cli.Flag {
	return []cli.Flag{
		&cli.BoolFlag{Name: "no-raster", Aliases: []string{"nr"}, Usage: "do not rasterize snapshots, keep SVG files only"},
		&cli.BoolFlag{Name: "keep-svg", Aliases: []string{"ks"}, Usage: "do not remove intermediate SVG snapshots"},
		&cli.BoolFlag{Name: "quiet", Aliases: []string{"q"}, Usage: "do not report progress for every snapshot"},
		&cli.IntFlag{Name: "wait", Aliases: []string{"w"}, Usage: "count snapshots but do not produce them before `INDEX` (overrides script)"},
		forceCodePageFlag,
	}
}

// Run animates drawing according to script.
func Run(ctx context.Context, cmd *cli.Command) (err error) {
	if err := ctx.Err(); err != nil {
		return err
	}

	env := state.EnvFromContext(ctx)
	log := env.Log.Named("run")

	scriptPath := cmd.Args().Get(1)
	if len(scriptPath) == 0 {
		return errors.New("no animation script has been specified")
	}
	prog, err := script.Load(scriptPath)
	if err != nil {
		return fmt.Errorf("unable to load script: %w", err)
	}
	env.Rpt.Store(fmt.Sprintf("script/%s", filepath.Base(scriptPath)), scriptPath)

	doc, err := openSource(ctx, cmd, log)
	if err != nil {
		return err
	}

	cfg := env.Cfg.Overlay
	if cmd.Bool("no-raster") {
		// nothing to clean after, SVG files are the result
		cfg.Rasterize, cfg.Cleanup = false, false
	}
	if cmd.Bool("keep-svg") {
		cfg.Cleanup = false
	}
	if cmd.Bool("quiet") {
		cfg.Quiet = true
	}
	if cmd.IsSet("wait") {
		prog.Wait = cmd.Int("wait")
	}

	if dst := cmd.Args().Get(2); len(dst) > 0 {
		cfg.OutputDir = dst
	}
	if len(cfg.OutputDir) == 0 {
		cfg.OutputDir = "."
	}
	if err := os.MkdirAll(cfg.OutputDir, 0755); err != nil {
		return fmt.Errorf("unable to create output directory: %w", err)
	}
	if cmd.Args().Len() > 3 {
		log.Warn("Malformed command line, too many destinations", zap.Strings("ignoring", cmd.Args().Slice()[3:]))
	}

	log.Info("Processing starting",
		zap.String("source", doc.Source()),
		zap.String("script", scriptPath),
		zap.String("destination", cfg.OutputDir),
		zap.Int("snapshots", prog.Count()))
	defer func(start time.Time) {
		log.Info("Processing completed", zap.Duration("elapsed", time.Since(start)))
	}(time.Now())

	s, err := overlay.Animate(ctx, doc, &cfg, log, prog.Script(log), overlay.WithReport(env.Rpt))
	if env.Rpt != nil {
		env.Rpt.StoreData("outline.txt", []byte(doc.String()))
	}
	if err != nil {
		return fmt.Errorf("animation failed: %w", err)
	}

	st := s.State()
	log.Debug("Animation state", zap.String("session", s.ID()), zap.Any("state", st))
	if from, to := st.FragmentRange(); to >= from {
		log.Info("Some snapshots are not referenced by any fragment", zap.Int("from", from), zap.Int("to", to))
	}
	return nil
}
