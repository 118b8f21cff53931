package raster

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"os/exec"
	"strings"
	"text/template"

	sprig "github.com/go-task/slim-sprig/v3"
	"go.uber.org/zap"

	"svgovl/config"
)

// Executor abstracts command execution for testability.
type Executor interface {
	Run(ctx context.Context, binary string, args []string) error
}

// Option configures external rasterizer.
type Option func(*External)

// WithExecutor injects a custom executor (primarily for tests).
func WithExecutor(exec Executor) Option {
	return func(e *External) {
		if exec != nil {
			e.exec = exec
		}
	}
}

// commandExecutor runs program with output discarded.
type commandExecutor struct{}

func (commandExecutor) Run(ctx context.Context, binary string, args []string) error {
	cmd := exec.CommandContext(ctx, binary, args...)
	cmd.Stdout = io.Discard
	cmd.Stderr = io.Discard
	return cmd.Run()
}

// ArgValues is available to argument templates.
type ArgValues struct {
	Input  string
	Output string
	DPI    int
}

// External runs configured program once per snapshot.
type External struct {
	command string
	args    []*template.Template
	dpi     int
	exec    Executor
	log     *zap.Logger
}

func NewExternal(cfg *config.RasterizerConfig, log *zap.Logger, opts ...Option) (*External, error) {
	command := strings.TrimSpace(cfg.Command)
	if command == "" {
		return nil, errors.New("rasterizer command required")
	}
	e := &External{
		command: command,
		dpi:     cfg.DPI,
		exec:    commandExecutor{},
		log:     log,
	}
	funcs := sprig.FuncMap()
	for i, arg := range cfg.Arguments {
		t, err := template.New(fmt.Sprintf("argument %d", i)).Funcs(funcs).Parse(arg)
		if err != nil {
			return nil, fmt.Errorf("unable to parse rasterizer argument %q: %w", arg, err)
		}
		e.args = append(e.args, t)
	}
	for _, opt := range opts {
		opt(e)
	}
	return e, nil
}

// Arguments expands argument templates for input and output.
func (e *External) Arguments(input, output string) ([]string, error) {
	values := ArgValues{Input: input, Output: output, DPI: e.dpi}
	args := make([]string, 0, len(e.args))
	buf := new(bytes.Buffer)
	for _, t := range e.args {
		buf.Reset()
		if err := t.Execute(buf, values); err != nil {
			return nil, fmt.Errorf("unable to expand rasterizer %s: %w", t.Name(), err)
		}
		args = append(args, buf.String())
	}
	return args, nil
}

func (e *External) Rasterize(ctx context.Context, input, output string) error {
	args, err := e.Arguments(input, output)
	if err != nil {
		return err
	}
	e.log.Debug("Running rasterizer", zap.String("command", e.command), zap.Strings("args", args))
	if err := e.exec.Run(ctx, e.command, args); err != nil {
		return fmt.Errorf("%s: %w", e.command, err)
	}
	return nil
}
