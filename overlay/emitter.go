package overlay

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strconv"

	"go.uber.org/zap"

	"svgovl/config"
	"svgovl/raster"
	"svgovl/svg"
)

// Artifact describes files produced by a single snapshot.
type Artifact struct {
	Index int
	Name  string
	// SVG is serialized document, removed when cleanup is requested.
	SVG string
	// Raster is empty when rasterization is disabled.
	Raster string
}

// Emitter writes numbered snapshots of the document.
type Emitter struct {
	doc        *svg.Document
	dir        string
	base       string
	ext        string
	rasterizer raster.Rasterizer
	cleanup    bool
	quiet      bool
	rpt        *config.Report
	log        *zap.Logger
}

// ArtifactName returns base name of artifacts with index.
func (e *Emitter) ArtifactName(index int) string {
	return e.base + strconv.Itoa(index)
}

// Emit saves the document as artifact index and rasterizes it. Rasterizer
// failures are logged and otherwise ignored, serialization and removal
// failures are returned.
func (e *Emitter) Emit(ctx context.Context, index int) (Artifact, error) {
	name := e.ArtifactName(index)
	a := Artifact{Index: index, Name: name, SVG: filepath.Join(e.dir, name+".svg")}

	if !e.quiet {
		e.log.Info("Snapshot", zap.Int("index", index), zap.String("name", name))
	}

	if err := e.doc.Save(a.SVG); err != nil {
		return a, err
	}

	if e.rasterizer != nil {
		a.Raster = filepath.Join(e.dir, name+e.ext)
		if err := e.rasterizer.Rasterize(ctx, a.SVG, a.Raster); err != nil {
			e.log.Debug("Rasterization failed, ignoring", zap.String("name", name), zap.Error(err))
		}
	}

	if err := e.rpt.StoreCopy(filepath.ToSlash(filepath.Join("snapshots", name+".svg")), a.SVG); err != nil {
		e.log.Warn("Unable to put snapshot into report", zap.String("name", name), zap.Error(err))
	}

	if e.cleanup {
		if err := os.Remove(a.SVG); err != nil {
			return a, fmt.Errorf("unable to remove intermediate snapshot: %w", err)
		}
	}
	return a, nil
}
