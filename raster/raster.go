// Package raster converts serialized snapshots into rasterized artifacts,
// either by running an external program or with built-in renderer.
package raster

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"svgovl/config"
)

// Rasterizer produces output from input SVG file. Callers that treat
// rasterization as fire-and-forget are free to ignore returned error.
type Rasterizer interface {
	Rasterize(ctx context.Context, input, output string) error
}

// New returns rasterizer for configured backend.
func New(cfg *config.RasterizerConfig, log *zap.Logger, opts ...Option) (Rasterizer, error) {
	switch cfg.Backend {
	case config.RasterBackendExternal:
		return NewExternal(cfg, log, opts...)
	case config.RasterBackendBuiltin:
		return NewBuiltin(cfg, log)
	default:
		return nil, fmt.Errorf("unsupported rasterizer backend %s", cfg.Backend)
	}
}
