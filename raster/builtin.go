package raster

import (
	"bytes"
	"context"
	"fmt"
	"image"
	"image/color"
	"math"
	"os"
	"strconv"
	"strings"

	"github.com/beevik/etree"
	"github.com/disintegration/imaging"
	"github.com/srwiley/oksvg"
	"github.com/srwiley/rasterx"
	"go.uber.org/zap"
	xdraw "golang.org/x/image/draw"

	"svgovl/config"
	"svgovl/style"
	"svgovl/svg"
)

const (
	// user units per inch assumed by drawings (classic inkscape)
	userUnitDPI = 90
	// used when view box does not define size
	defaultSize = 1024
	// keeps enormous view boxes from exhausting memory
	maxRasterDim = 8192

	defaultQuality = 95
)

// Builtin renders snapshots with oksvg without external programs. oksvg
// does not know about display property, so hidden elements are removed
// before rendering.
type Builtin struct {
	width, height int
	dpi           int
	strokeScale   float64
	grayscale     bool
	quality       int
	format        imaging.Format
	background    color.RGBA
	log           *zap.Logger
}

func NewBuiltin(cfg *config.RasterizerConfig, log *zap.Logger) (*Builtin, error) {
	format, err := imaging.FormatFromExtension(cfg.Format)
	if err != nil {
		return nil, fmt.Errorf("unsupported image format %q: %w", cfg.Format, err)
	}
	quality := cfg.JPEGQuality
	if quality <= 0 {
		quality = defaultQuality
	}
	return &Builtin{
		width:       cfg.Width,
		height:      cfg.Height,
		dpi:         cfg.DPI,
		strokeScale: cfg.StrokeScale,
		grayscale:   cfg.Grayscale,
		quality:     quality,
		format:      format,
		background:  cfg.BackgroundColor(),
		log:         log,
	}, nil
}

func (b *Builtin) Rasterize(ctx context.Context, input, output string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	data, err := os.ReadFile(input)
	if err != nil {
		return err
	}
	img, err := b.Render(data)
	if err != nil {
		return fmt.Errorf("unable to render %s: %w", input, err)
	}

	if b.grayscale {
		img = imaging.Grayscale(img)
	}

	out, err := os.Create(output)
	if err != nil {
		return err
	}
	if err := imaging.Encode(out, img, b.format, imaging.JPEGQuality(b.quality)); err != nil {
		out.Close()
		return fmt.Errorf("unable to encode %s: %w", output, err)
	}
	return out.Close()
}

// Render rasterizes visible part of SVG data.
//
// Size rules:
//   - no width and height configured: view box scaled by dpi
//   - only one of them: scale by that dimension keeping aspect ratio
//   - both: fit into the box keeping aspect ratio
func (b *Builtin) Render(data []byte) (image.Image, error) {
	visible, err := prepare(data, b.strokeScale)
	if err != nil {
		return nil, err
	}
	icon, err := oksvg.ReadIconStream(bytes.NewReader(visible), oksvg.IgnoreErrorMode)
	if err != nil {
		return nil, err
	}

	intrW, intrH := icon.ViewBox.W, icon.ViewBox.H
	if intrW <= 0 {
		intrW = defaultSize
	}
	if intrH <= 0 {
		intrH = defaultSize
	}

	var w, h float64
	switch {
	case b.width <= 0 && b.height <= 0:
		scale := float64(b.dpi) / userUnitDPI
		w, h = intrW*scale, intrH*scale
	case b.height <= 0:
		w = float64(b.width)
		h = w * intrH / intrW
	case b.width <= 0:
		h = float64(b.height)
		w = h * intrW / intrH
	default:
		scale := math.Min(float64(b.width)/intrW, float64(b.height)/intrH)
		w, h = intrW*scale, intrH*scale
	}
	if w > maxRasterDim || h > maxRasterDim {
		s := math.Min(maxRasterDim/w, maxRasterDim/h)
		w, h = w*s, h*s
	}
	iw, ih := max(int(math.Round(w)), 1), max(int(math.Round(h)), 1)

	icon.SetTarget(0, 0, float64(iw), float64(ih))

	dst := image.NewRGBA(image.Rect(0, 0, iw, ih))
	xdraw.Draw(dst, dst.Bounds(), &image.Uniform{C: b.background}, image.Point{}, xdraw.Src)

	scanner := rasterx.NewScannerGV(iw, ih, dst, dst.Bounds())
	dasher := rasterx.NewDasher(iw, ih, scanner)
	icon.Draw(dasher, 1.0)

	b.log.Debug("Rendered snapshot", zap.Int("width", iw), zap.Int("height", ih))
	return dst, nil
}

// prepare removes elements hidden with display property or attribute and
// scales stroke widths of the rest.
func prepare(data []byte, strokeScale float64) ([]byte, error) {
	doc := svg.NewTree()
	if err := doc.ReadFromBytes(data); err != nil {
		return nil, err
	}
	svg.DeclareUTF8(doc)
	root := doc.Root()
	if root == nil {
		return nil, fmt.Errorf("document has no root element")
	}
	prune(root)
	if strokeScale > 0 && strokeScale != 1 {
		scaleStrokes(root, strokeScale)
	}
	return doc.WriteToBytes()
}

func prune(el *etree.Element) {
	for _, child := range el.ChildElements() {
		if hidden(child) {
			el.RemoveChild(child)
			continue
		}
		prune(child)
	}
}

func hidden(el *etree.Element) bool {
	if el.SelectAttrValue("display", "") == "none" {
		return true
	}
	v, ok := style.Get(el.SelectAttrValue("style", ""), "display")
	return ok && v == "none"
}

const strokeWidth = "stroke-width"

// scaleStrokes multiplies stroke widths set either as presentation
// attribute or as style property. Values with units other than px are left
// alone.
func scaleStrokes(el *etree.Element, factor float64) {
	if a := el.SelectAttr(strokeWidth); a != nil {
		if v, ok := scaleLength(a.Value, factor); ok {
			a.Value = v
		}
	}
	if decl := el.SelectAttrValue("style", ""); len(decl) > 0 {
		if w, ok := style.Get(decl, strokeWidth); ok {
			if v, ok := scaleLength(w, factor); ok {
				el.CreateAttr("style", style.Merge(decl, strokeWidth, v, style.MatchExact))
			}
		}
	}
	for _, child := range el.ChildElements() {
		scaleStrokes(child, factor)
	}
}

func scaleLength(value string, factor float64) (string, bool) {
	num := strings.TrimSuffix(strings.TrimSpace(value), "px")
	f, err := strconv.ParseFloat(num, 64)
	if err != nil {
		return value, false
	}
	return strconv.FormatFloat(f*factor, 'f', -1, 64), true
}
