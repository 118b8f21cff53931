package config

import (
	"bytes"
	_ "embed"
	"fmt"
	"image/color"
	"os"
	"strconv"
	"strings"

	yaml "gopkg.in/yaml.v3"

	"github.com/rupor-github/gencfg"
)

//go:embed config.yaml.tmpl
var ConfigTmpl []byte

type (
	RasterizerConfig struct {
		Backend RasterBackend `yaml:"backend"`
		// external program, arguments are text/template strings
		Command   string   `yaml:"command"`
		Arguments []string `yaml:"arguments"`
		Extension string   `yaml:"extension" validate:"omitempty,startswith=."`
		// builtin renderer
		DPI        int    `yaml:"dpi" validate:"min=1,max=2400"`
		Width      int    `yaml:"width" validate:"gte=0"`
		Height     int    `yaml:"height" validate:"gte=0"`
		Format     string `yaml:"format" validate:"oneof=png jpeg gif tiff bmp"`
		Background string `yaml:"background" validate:"omitempty,hexcolor"`
		// multiplier for stroke widths, thin lines fade when scaled down
		StrokeScale float64 `yaml:"stroke_scale" validate:"gte=0"`
		Grayscale   bool    `yaml:"grayscale"`
		JPEGQuality int     `yaml:"jpeg_quality" validate:"min=1,max=100"`
	}

	FragmentConfig struct {
		Extension string `yaml:"extension" validate:"required,startswith=."`
		Template  string `yaml:"template"`
	}

	OverlayConfig struct {
		OutputDir         string           `yaml:"output_dir"`
		Rasterize         bool             `yaml:"rasterize"`
		Cleanup           bool             `yaml:"cleanup"`
		Quiet             bool             `yaml:"quiet"`
		StrictProperties  bool             `yaml:"strict_properties"`
		NameTransliterate bool             `yaml:"name_transliterate"`
		Rasterizer        RasterizerConfig `yaml:"rasterizer"`
		Fragment          FragmentConfig   `yaml:"fragment"`
	}

	Config struct {
		Version   int            `yaml:"version" validate:"eq=1"`
		Overlay   OverlayConfig  `yaml:"overlay"`
		Logging   LoggingConfig  `yaml:"logging"`
		Reporting ReporterConfig `yaml:"reporting"`
	}
)

// DefaultRasterizerArguments reproduce classic inkscape EPS export. Each
// argument is expanded with .Input, .Output and .DPI.
var DefaultRasterizerArguments = []string{
	"-E={{ .Output }}",
	"{{ .Input }}",
	"-z",
	"-d={{ .DPI }}",
	"-C",
	"--export-ignore-filters",
}

// DefaultFragmentTemplate produces one LaTeX slide per snapshot.
const DefaultFragmentTemplate = `{{- range .Slides -}}
\begin{slide}{ {{- $.Title -}} }
  \centering
  \includegraphics[]{ {{- $.Prefix }}{{ .Name -}} }
\end{slide}

{{ end -}}`

func unmarshalConfig(data []byte, cfg *Config, process bool) (*Config, error) {
	// only fields we defined are allowed
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(cfg); err != nil {
		return nil, fmt.Errorf("failed to decode configuration data: %w", err)
	}
	if process {
		if err := gencfg.Sanitize(cfg); err != nil {
			return nil, err
		}
		if err := gencfg.Validate(cfg); err != nil {
			return nil, err
		}
	}
	return cfg, nil
}

// LoadConfiguration reads the configuration from the file at the given path,
// superimposes its values on top of expanded configuration template to provide
// sane defaults and performs validation. Template-valued fields left empty
// receive built-in values.
func LoadConfiguration(path string, options ...func(*gencfg.ProcessingOptions)) (*Config, error) {
	haveFile := len(path) > 0

	data, err := gencfg.Process(ConfigTmpl, options...)
	if err != nil {
		return nil, fmt.Errorf("failed to process configuration template: %w", err)
	}
	cfg, err := unmarshalConfig(data, &Config{}, !haveFile)
	if err != nil {
		return nil, fmt.Errorf("failed to process configuration template: %w", err)
	}
	if haveFile {
		if data, err = os.ReadFile(path); err != nil {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
		if cfg, err = unmarshalConfig(data, cfg, haveFile); err != nil {
			return nil, fmt.Errorf("failed to process configuration file: %w", err)
		}
	}
	cfg.Overlay.applyDefaults()
	return cfg, nil
}

func (conf *OverlayConfig) applyDefaults() {
	if len(conf.Rasterizer.Arguments) == 0 {
		conf.Rasterizer.Arguments = append([]string{}, DefaultRasterizerArguments...)
	}
	if len(strings.TrimSpace(conf.Fragment.Template)) == 0 {
		conf.Fragment.Template = DefaultFragmentTemplate
	}
	if len(conf.OutputDir) == 0 {
		conf.OutputDir = "."
	}
}

// OutputExt returns extension of rasterized artifacts for selected backend.
func (conf *RasterizerConfig) OutputExt() string {
	if conf.Backend == RasterBackendBuiltin {
		return "." + conf.Format
	}
	if len(conf.Extension) == 0 {
		return ".eps"
	}
	return conf.Extension
}

// BackgroundColor parses "#rgb" or "#rrggbb", white is returned for empty or
// malformed values.
func (conf *RasterizerConfig) BackgroundColor() color.RGBA {
	white := color.RGBA{R: 255, G: 255, B: 255, A: 255}

	hex := strings.TrimPrefix(conf.Background, "#")
	if len(hex) == 3 {
		hex = string([]byte{hex[0], hex[0], hex[1], hex[1], hex[2], hex[2]})
	}
	if len(hex) != 6 {
		return white
	}
	v, err := strconv.ParseUint(hex, 16, 32)
	if err != nil {
		return white
	}
	return color.RGBA{R: uint8(v >> 16), G: uint8(v >> 8), B: uint8(v), A: 255}
}

// Prepare generates configuration file from template and returns it as a byte
// slice.
func Prepare() ([]byte, error) {
	return gencfg.Process(ConfigTmpl)
}

func Dump(cfg *Config) ([]byte, error) {
	data, err := yaml.Marshal(*cfg)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal config to yaml: %v", err)
	}
	return data, nil
}
