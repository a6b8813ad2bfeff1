// Package scene turns a scene config into live widgets and animations.
package scene

import (
	"fmt"
	"io"
	"time"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/tui-tween/internal/anim"
	"github.com/vovakirdan/tui-tween/internal/config"
	"github.com/vovakirdan/tui-tween/internal/core"
	_ "github.com/vovakirdan/tui-tween/internal/props" // registers property kinds
	"github.com/vovakirdan/tui-tween/internal/registry"
	"github.com/vovakirdan/tui-tween/internal/widget"
)

// SetterWrapper decorates the setter of the named animation.
type SetterWrapper func(name string, s anim.Setter) anim.Setter

// Option configures Build.
type Option func(*options)

type options struct {
	wrap   SetterWrapper
	logger *log.Logger
}

// WithSetterWrapper wraps every property setter, e.g. to record values.
func WithSetterWrapper(w SetterWrapper) Option {
	return func(o *options) {
		o.wrap = w
	}
}

// WithLogger sets the logger for scene lifecycle events.
func WithLogger(l *log.Logger) Option {
	return func(o *options) {
		o.logger = l
	}
}

// Binding is one animation of a scene and what it drives.
type Binding struct {
	Name      string
	Widget    string
	Property  string
	Animation *anim.Animation

	cfg config.AnimationConfig
}

// Scene is a built scene: a page of widgets and the animations moving them.
type Scene struct {
	ID    string
	Title string
	Page  *widget.Page

	cfg      config.SceneConfig
	widgets  map[string]widget.Widget
	bindings []*Binding
	logger   *log.Logger
}

// Build creates the widgets of cfg and one animation per animation entry,
// owned by sched. Nothing runs until Start.
func Build(cfg config.SceneConfig, sched *anim.Scheduler, opts ...Option) (*Scene, error) {
	o := options{}
	for _, opt := range opts {
		opt(&o)
	}
	if o.logger == nil {
		o.logger = log.New(io.Discard)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	bg := core.ColorBlack
	if cfg.Background != "" {
		c, err := widget.ParseColor(cfg.Background)
		if err != nil {
			return nil, fmt.Errorf("scene %s: background: %w", cfg.ID, err)
		}
		bg = c
	}

	s := &Scene{
		ID:      cfg.ID,
		Title:   cfg.Title,
		Page:    widget.NewPage(cfg.Title, bg),
		cfg:     cfg,
		widgets: make(map[string]widget.Widget, len(cfg.Widgets)),
		logger:  o.logger,
	}

	for _, wc := range cfg.Widgets {
		w, err := newWidget(wc)
		if err != nil {
			return nil, fmt.Errorf("scene %s: %w", cfg.ID, err)
		}
		s.widgets[wc.Name] = w
		s.Page.Add(w)
	}

	for i, ac := range cfg.Animations {
		b, err := s.bind(i, ac, sched, o.wrap)
		if err != nil {
			s.Close()
			return nil, fmt.Errorf("scene %s: %w", cfg.ID, err)
		}
		s.bindings = append(s.bindings, b)
	}

	s.logger.Debug("scene built", "scene", cfg.ID, "widgets", len(s.widgets), "animations", len(s.bindings))
	return s, nil
}

func (s *Scene) bind(i int, ac config.AnimationConfig, sched *anim.Scheduler, wrap SetterWrapper) (*Binding, error) {
	name := ac.Name
	if name == "" {
		name = fmt.Sprintf("%s.%s#%d", ac.Widget, ac.Property, i)
	}

	prop, err := registry.Create(ac.Property)
	if err != nil {
		return nil, fmt.Errorf("animation %s: %w", name, err)
	}
	path := anim.Linear
	if ac.Path != "" {
		p, ok := anim.PathByName(ac.Path)
		if !ok {
			return nil, fmt.Errorf("animation %s: unknown path %q", name, ac.Path)
		}
		path = p
	}

	a, err := sched.NewAnimation()
	if err != nil {
		return nil, fmt.Errorf("animation %s: %w", name, err)
	}

	var setter anim.Setter = prop
	if wrap != nil {
		setter = wrap(name, prop)
	}

	a.SetTarget(s.widgets[ac.Widget])
	a.SetUserData(name)
	a.SetSetter(setter)
	a.SetPath(path)

	b := &Binding{Name: name, Widget: ac.Widget, Property: ac.Property, Animation: a, cfg: ac}
	b.configure()
	return b, nil
}

// configure loads the animation settings from the config entry.
func (b *Binding) configure() {
	a := b.Animation
	a.SetValues(b.cfg.Start, b.cfg.End)
	a.SetDuration(time.Duration(b.cfg.DurationMS) * time.Millisecond)
	a.SetDelay(time.Duration(b.cfg.DelayMS) * time.Millisecond)
	a.SetRepeatCount(int(b.cfg.Repeat))
	if b.cfg.Finish == config.FinishReverse {
		a.SetFinishCallback(anim.Reverse)
	} else {
		a.SetFinishCallback(nil)
	}
}

func newWidget(wc config.WidgetConfig) (widget.Widget, error) {
	color := func(field, value string, set func(core.Color)) error {
		if value == "" {
			return nil
		}
		c, err := widget.ParseColor(value)
		if err != nil {
			return fmt.Errorf("widget %s: %s: %w", wc.Name, field, err)
		}
		set(c)
		return nil
	}
	alpha := uint8(widget.Opaque)
	if wc.Alpha != nil {
		alpha = uint8(*wc.Alpha)
	}

	if wc.Type == config.WidgetLabel {
		l := widget.NewLabel(wc.Name, wc.X, wc.Y, wc.Text)
		l.SetAlpha(alpha)
		if err := color("color", wc.Color, l.SetColor); err != nil {
			return nil, err
		}
		return l, nil
	}

	b := widget.NewButton(wc.Name, core.NewRect(wc.X, wc.Y, wc.W, wc.H))
	b.Text = wc.Text
	b.SetAlpha(alpha)
	b.SetBorderWidth(wc.Border)
	b.SetRadius(wc.Radius)
	for _, c := range []struct {
		field, value string
		set          func(core.Color)
	}{
		{"color", wc.Color, b.SetColor},
		{"text_color", wc.TextColor, b.SetTextColor},
		{"border_color", wc.BorderColor, b.SetBorderColor},
	} {
		if err := color(c.field, c.value, c.set); err != nil {
			return nil, err
		}
	}
	return b, nil
}

// Start starts every animation.
func (s *Scene) Start() {
	for _, b := range s.bindings {
		if err := b.Animation.Start(); err != nil {
			s.logger.Warn("cannot start animation", "scene", s.ID, "animation", b.Name, "err", err)
		}
	}
	s.logger.Info("scene started", "scene", s.ID)
}

// Restart puts every widget and animation back into its configured state and
// starts again.
func (s *Scene) Restart() {
	for _, b := range s.bindings {
		b.Animation.Stop()
	}

	for i, wc := range s.cfg.Widgets {
		fresh, err := newWidget(wc)
		if err != nil {
			continue
		}
		reset(s.Page.Children()[i], fresh)
	}

	for _, b := range s.bindings {
		b.configure()
	}
	s.Start()
}

// reset copies the state of fresh into w, keeping w's identity so animation
// targets stay valid.
func reset(w, fresh widget.Widget) {
	switch dst := w.(type) {
	case *widget.Button:
		*dst = *fresh.(*widget.Button)
	case *widget.Label:
		*dst = *fresh.(*widget.Label)
	}
}

// Close destroys every animation. The scene cannot be started again.
func (s *Scene) Close() {
	for _, b := range s.bindings {
		b.Animation.Destroy()
	}
}

// Bindings returns the scene animations in config order.
func (s *Scene) Bindings() []*Binding {
	return s.bindings
}

// Widget returns the named widget.
func (s *Scene) Widget(name string) (widget.Widget, bool) {
	w, ok := s.widgets[name]
	return w, ok
}

// Done reports whether no animation is running or paused.
func (s *Scene) Done() bool {
	for _, b := range s.bindings {
		switch b.Animation.State() {
		case anim.StateRunning, anim.StatePaused:
			return false
		}
	}
	return true
}

// Draw renders the page into dst.
func (s *Scene) Draw(dst *core.Screen) {
	s.Page.Draw(dst)
}
