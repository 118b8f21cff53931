// Package script reads declarative overlay sequences from YAML and turns them
// into overlay scripts.
//
//	wait: 3
//	steps:
//	  - show: Background
//	  - show: Step 1
//	  - snapshot
//	  - swap: Step 2
//	  - style: {id: dot, property: fill, value: "#00ff00"}
//	  - snapshot
//	  - fragment: {title: Overview, prefix: figs/}
package script

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/rupor-github/gencfg"
	"go.uber.org/zap"
	yaml "gopkg.in/yaml.v3"

	"svgovl/overlay"
	"svgovl/style"
)

// Step kinds.
const (
	OpShow      = "show"
	OpHide      = "hide"
	OpSwap      = "swap"
	OpShowID    = "show_id"
	OpHideID    = "hide_id"
	OpStyle     = "style"
	OpAttribute = "attribute"
	OpWait      = "wait"
	OpSnapshot  = "snapshot"
	OpFragment  = "fragment"
	OpSave      = "save"
)

type (
	StyleArgs struct {
		ID       string `yaml:"id" validate:"required"`
		Property string `yaml:"property" validate:"required"`
		Value    string `yaml:"value"`
	}

	// AttributeArgs replaces whole attribute value unless Property is set, in
	// which case property is merged into declaration kept in the attribute.
	AttributeArgs struct {
		ID       string `yaml:"id" validate:"required"`
		Name     string `yaml:"name" validate:"required"`
		Property string `yaml:"property"`
		Value    string `yaml:"value"`
	}

	FragmentArgs struct {
		Title  string `yaml:"title"`
		Prefix string `yaml:"prefix"`
	}
)

// Step is a single action. Only fields relevant to Op are set.
type Step struct {
	Op   string
	Line int
	// layer label for show, hide and swap; element id for show_id and
	// hide_id; destination for save
	Arg       string
	Until     int
	Style     *StyleArgs
	Attribute *AttributeArgs
	Fragment  *FragmentArgs
}

// UnmarshalYAML accepts "snapshot" scalar or single key mapping.
func (s *Step) UnmarshalYAML(node *yaml.Node) error {
	s.Line = node.Line

	switch node.Kind {
	case yaml.ScalarNode:
		if node.Value != OpSnapshot {
			return fmt.Errorf("line %d: step %q requires argument or is unknown", node.Line, node.Value)
		}
		s.Op = OpSnapshot
		return nil
	case yaml.MappingNode:
	default:
		return fmt.Errorf("line %d: step must be name or single key mapping", node.Line)
	}

	if len(node.Content) != 2 {
		return fmt.Errorf("line %d: step must have exactly one action, got %d", node.Line, len(node.Content)/2)
	}
	key, val := node.Content[0], node.Content[1]
	s.Op = key.Value

	var err error
	switch s.Op {
	case OpShow, OpHide, OpSwap, OpShowID, OpHideID, OpSave:
		err = decodeScalar(val, &s.Arg)
		if err == nil && len(s.Arg) == 0 {
			err = errors.New("empty argument")
		}
	case OpWait:
		err = decodeScalar(val, &s.Until)
		if err == nil && s.Until < 1 {
			err = fmt.Errorf("snapshot index must be positive, got %d", s.Until)
		}
	case OpSnapshot:
		if val.Tag != "!!null" {
			err = errors.New("does not take arguments")
		}
	case OpStyle:
		s.Style = &StyleArgs{}
		if err = decodeArgs(val, s.Style); err == nil {
			err = checkSetting(s.Style.Property, s.Style.Value)
		}
	case OpAttribute:
		s.Attribute = &AttributeArgs{}
		if err = decodeArgs(val, s.Attribute); err == nil && len(s.Attribute.Property) > 0 {
			err = checkSetting(s.Attribute.Property, s.Attribute.Value)
		}
	case OpFragment:
		s.Fragment = &FragmentArgs{}
		if val.Kind == yaml.ScalarNode {
			// short form, title only
			err = val.Decode(&s.Fragment.Title)
		} else {
			err = decodeArgs(val, s.Fragment)
		}
	default:
		return fmt.Errorf("line %d: unknown step %q", key.Line, s.Op)
	}
	if err != nil {
		return fmt.Errorf("line %d: step %q: %w", key.Line, s.Op, err)
	}
	return nil
}

func checkSetting(property, value string) error {
	return errors.Join(style.CheckProperty(property), style.CheckValue(value))
}

func decodeScalar(node *yaml.Node, out any) error {
	if node.Kind != yaml.ScalarNode {
		return errors.New("scalar argument expected")
	}
	return node.Decode(out)
}

func decodeArgs(node *yaml.Node, out any) error {
	if node.Kind != yaml.MappingNode {
		return errors.New("mapping expected")
	}
	// node decoding does not check for unknown fields, so round trip through
	// strict decoder
	data, err := yaml.Marshal(node)
	if err != nil {
		return err
	}
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(out); err != nil {
		return err
	}
	return gencfg.Validate(out)
}

// Program is parsed script.
type Program struct {
	// Wait is deferred start threshold, 0 when not requested.
	Wait  int    `yaml:"wait" validate:"gte=0"`
	Steps []Step `yaml:"steps"`
}

// Parse reads program, all steps are checked before anything is returned.
func Parse(r io.Reader) (*Program, error) {
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)

	p := &Program{}
	if err := dec.Decode(p); err != nil {
		if errors.Is(err, io.EOF) {
			return nil, errors.New("empty script")
		}
		return nil, fmt.Errorf("failed to decode script: %w", err)
	}
	if err := gencfg.Validate(p); err != nil {
		return nil, err
	}
	return p, nil
}

// Load reads program from file.
func Load(path string) (*Program, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	p, err := Parse(f)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return p, nil
}

// Count returns number of snapshot steps.
func (p *Program) Count() (n int) {
	for _, s := range p.Steps {
		if s.Op == OpSnapshot {
			n++
		}
	}
	return
}

// Script returns overlay script performing program steps in order. Lookup
// misses are left to the session to report, the first serialization or
// fragment error stops execution.
func (p *Program) Script(log *zap.Logger) overlay.Script {
	return func(ctx context.Context, s *overlay.Session) error {
		if p.Wait > 0 {
			s.DeferUntil(p.Wait)
		}
		for i := range p.Steps {
			if err := ctx.Err(); err != nil {
				return err
			}
			if err := p.Steps[i].apply(ctx, s, log); err != nil {
				return fmt.Errorf("line %d: %w", p.Steps[i].Line, err)
			}
		}
		return nil
	}
}

func (s *Step) apply(ctx context.Context, ses *overlay.Session, log *zap.Logger) error {
	log.Debug("Step", zap.String("op", s.Op), zap.Int("line", s.Line))

	switch s.Op {
	case OpShow:
		ses.ShowLayer(s.Arg)
	case OpHide:
		ses.HideLayer(s.Arg)
	case OpSwap:
		ses.SwapLayer(s.Arg)
	case OpShowID:
		ses.Show(s.Arg)
	case OpHideID:
		ses.Hide(s.Arg)
	case OpStyle:
		ses.SetStyleProperty(s.Style.ID, s.Style.Property, s.Style.Value)
	case OpAttribute:
		if len(s.Attribute.Property) > 0 {
			ses.SetAttributeProperty(s.Attribute.ID, s.Attribute.Name, s.Attribute.Property, s.Attribute.Value)
		} else {
			ses.SetAttribute(s.Attribute.ID, s.Attribute.Name, s.Attribute.Value)
		}
	case OpWait:
		ses.DeferUntil(s.Until)
	case OpSnapshot:
		if _, err := ses.Snapshot(ctx); err != nil {
			return err
		}
	case OpFragment:
		name, err := ses.Fragment(s.Fragment.Title, s.Fragment.Prefix)
		if err != nil {
			return err
		}
		log.Info("Fragment written", zap.String("file", name))
	case OpSave:
		if err := ses.Save(s.Arg); err != nil {
			return err
		}
	default:
		return fmt.Errorf("unknown step %q", s.Op)
	}
	return nil
}
