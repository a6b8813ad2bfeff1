// Package config loads scene descriptions from YAML.
//
// A scene lists the widgets on a page and the animations that drive their
// properties. Built-in scenes are embedded; users can override or add scenes
// under ~/.tween/scenes or ./scenes.
package config

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"
)

// Finish hooks accepted in scene files.
const (
	FinishNone    = "none"
	FinishReverse = "reverse"
)

// Widget types accepted in scene files.
const (
	WidgetButton = "button"
	WidgetLabel  = "label"
)

// SceneConfig describes one scene.
type SceneConfig struct {
	ID         string            `yaml:"id"`
	Title      string            `yaml:"title"`
	Background string            `yaml:"background"`
	Widgets    []WidgetConfig    `yaml:"widgets"`
	Animations []AnimationConfig `yaml:"animations"`
}

// WidgetConfig describes a widget and its initial state.
type WidgetConfig struct {
	Name        string `yaml:"name"`
	Type        string `yaml:"type"` // "button" (default) or "label"
	X           int    `yaml:"x"`
	Y           int    `yaml:"y"`
	W           int    `yaml:"w"`
	H           int    `yaml:"h"`
	Text        string `yaml:"text"`
	Color       string `yaml:"color"`
	TextColor   string `yaml:"text_color"`
	BorderColor string `yaml:"border_color"`
	Alpha       *int   `yaml:"alpha"` // nil means opaque
	Border      int    `yaml:"border"`
	Radius      int    `yaml:"radius"`
}

// AnimationConfig describes one animation bound to a widget property.
type AnimationConfig struct {
	Name       string `yaml:"name"`
	Widget     string `yaml:"widget"`
	Property   string `yaml:"property"`
	DurationMS int    `yaml:"duration_ms"`
	DelayMS    int    `yaml:"delay_ms"`
	Start      int32  `yaml:"start"`
	End        int32  `yaml:"end"`
	Path       string `yaml:"path"`   // defaults to linear
	Repeat     Repeat `yaml:"repeat"` // count or "loop"
	Finish     string `yaml:"finish"` // "reverse" or "none"
}

// Repeat is a repeat count that also accepts the word "loop" in YAML.
// Loop is stored as -1.
type Repeat int

// RepeatLoop is the decoded value of "loop".
const RepeatLoop Repeat = -1

// UnmarshalYAML decodes an integer or "loop"/"forever".
func (r *Repeat) UnmarshalYAML(node *yaml.Node) error {
	if node.Kind != yaml.ScalarNode {
		return fmt.Errorf("line %d: repeat must be a number or \"loop\"", node.Line)
	}
	switch strings.ToLower(node.Value) {
	case "loop", "forever", "infinite":
		*r = RepeatLoop
		return nil
	}
	n, err := strconv.Atoi(node.Value)
	if err != nil {
		return fmt.Errorf("line %d: repeat must be a number or \"loop\", got %q", node.Line, node.Value)
	}
	if n < 0 {
		n = int(RepeatLoop)
	}
	*r = Repeat(n)
	return nil
}

// MarshalYAML writes "loop" for looping repeats.
func (r Repeat) MarshalYAML() (any, error) {
	if r < 0 {
		return "loop", nil
	}
	return int(r), nil
}

// String implements fmt.Stringer.
func (r Repeat) String() string {
	if r < 0 {
		return "loop"
	}
	return strconv.Itoa(int(r))
}

// Widget returns the widget config with the given name.
func (c SceneConfig) Widget(name string) (WidgetConfig, bool) {
	for _, w := range c.Widgets {
		if w.Name == name {
			return w, true
		}
	}
	return WidgetConfig{}, false
}

// Validate checks references and value ranges. Property kinds and path
// names are resolved later, when the scene is built.
func (c SceneConfig) Validate() error {
	var errs []error
	if c.ID == "" {
		errs = append(errs, errors.New("scene id is empty"))
	}

	seen := make(map[string]bool)
	for i, w := range c.Widgets {
		switch {
		case w.Name == "":
			errs = append(errs, fmt.Errorf("widget #%d has no name", i))
		case seen[w.Name]:
			errs = append(errs, fmt.Errorf("widget %q declared twice", w.Name))
		}
		seen[w.Name] = true

		switch w.Type {
		case "", WidgetButton, WidgetLabel:
		default:
			errs = append(errs, fmt.Errorf("widget %q: unknown type %q", w.Name, w.Type))
		}
		if w.Alpha != nil && (*w.Alpha < 0 || *w.Alpha > 255) {
			errs = append(errs, fmt.Errorf("widget %q: alpha %d out of range 0-255", w.Name, *w.Alpha))
		}
	}

	for i, a := range c.Animations {
		name := a.Name
		if name == "" {
			name = fmt.Sprintf("#%d", i)
		}
		if !seen[a.Widget] {
			errs = append(errs, fmt.Errorf("animation %s: unknown widget %q", name, a.Widget))
		}
		if a.Property == "" {
			errs = append(errs, fmt.Errorf("animation %s: property is empty", name))
		}
		if a.DurationMS < 0 || a.DelayMS < 0 {
			errs = append(errs, fmt.Errorf("animation %s: negative duration or delay", name))
		}
		switch a.Finish {
		case "", FinishNone, FinishReverse:
		default:
			errs = append(errs, fmt.Errorf("animation %s: unknown finish %q", name, a.Finish))
		}
	}

	if len(errs) > 0 {
		return fmt.Errorf("config: scene %q: %w", c.ID, errors.Join(errs...))
	}
	return nil
}
