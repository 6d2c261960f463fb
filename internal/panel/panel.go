// Package panel is the on-screen control panel model: grouped, collapsible
// controls bound to parameter store keys. It knows nothing about drawing;
// the viewer renders Lines and forwards key presses.
package panel

import (
	"fmt"
	"strings"

	"kerr-renderer/internal/params"
)

// Kind is the widget type of a control.
type Kind int

const (
	Toggle Kind = iota
	Slider
	Choice
)

// Control is one parameter widget.
type Control struct {
	Key     string
	Label   string
	Kind    Kind
	Range   params.Range    // Slider
	Options []params.Option // Choice
}

// Group is a collapsible section.
type Group struct {
	Name      string
	Collapsed bool
	Controls  []Control
}

// Store is the parameter store as the panel uses it.
type Store interface {
	params.Source
	Set(key string, value any) error
	Clear() error
}

// Panel holds the groups and keyboard focus.
type Panel struct {
	store  Store
	groups []*Group
	focus  int
	// Visible toggles drawing; the panel keeps working while hidden.
	Visible bool
}

func slider(key, label string) Control {
	return Control{Key: key, Label: label, Kind: Slider, Range: params.Ranges[key]}
}

func toggle(key, label string) Control {
	return Control{Key: key, Label: label, Kind: Toggle}
}

// New builds the panel over store.
func New(store Store) *Panel {
	return &Panel{
		store:   store,
		Visible: true,
		groups: []*Group{
			{Name: "Performance", Controls: []Control{
				toggle(params.KeyPerformance, "Performance mode"),
			}},
			{Name: "Bloom", Collapsed: true, Controls: []Control{
				toggle(params.KeyBloomEnabled, "Enabled"),
				slider(params.KeyBloomIntensity, "Intensity"),
				slider(params.KeyBloomThreshold, "Threshold"),
				slider(params.KeyBloomRadius, "Radius"),
			}},
			{Name: "Effects", Controls: []Control{
				slider(params.KeyGlowIntensity, "Glow"),
				toggle(params.KeyBeaming, "Beaming"),
				toggle(params.KeyDopplerShift, "Doppler shift"),
				toggle(params.KeyJet, "Relativistic jet"),
				slider(params.KeySpin, "Rotation"),
			}},
			{Name: "Accretion disk", Controls: []Control{
				slider(params.KeyDiskIntensity, "Intensity"),
				slider(params.KeyDiskInnerRadius, "Inner radius"),
				slider(params.KeyDiskWidth, "Width"),
				{Key: params.KeyDiskTexture, Label: "Colormap", Kind: Choice, Options: params.DiskTextures},
			}},
			{Name: "Textures", Collapsed: true, Controls: []Control{
				toggle(params.KeyStars, "Stars"),
				toggle(params.KeyMilkyWay, "Milky Way"),
			}},
			{Name: "Camera", Controls: []Control{
				toggle(params.KeyOrbit, "Orbit"),
			}},
		},
	}
}

// Groups returns the groups in display order.
func (p *Panel) Groups() []*Group {
	return p.groups
}

// Group returns the named group, or nil.
func (p *Panel) Group(name string) *Group {
	for _, g := range p.groups {
		if g.Name == name {
			return g
		}
	}
	return nil
}

// SetCollapsed folds or unfolds a group. Focus is kept within the visible
// controls.
func (p *Panel) SetCollapsed(name string, collapsed bool) {
	if g := p.Group(name); g != nil {
		g.Collapsed = collapsed
		p.focus = min(p.focus, max(len(p.visible())-1, 0))
	}
}

// control finds the control bound to key.
func (p *Panel) control(key string) (Control, bool) {
	for _, g := range p.groups {
		for _, c := range g.Controls {
			if c.Key == key {
				return c, true
			}
		}
	}
	return Control{}, false
}

// visible returns the controls of expanded groups in display order.
func (p *Panel) visible() []Control {
	var out []Control
	for _, g := range p.groups {
		if !g.Collapsed {
			out = append(out, g.Controls...)
		}
	}
	return out
}

// Focused returns the control under keyboard focus.
func (p *Panel) Focused() (Control, bool) {
	v := p.visible()
	if len(v) == 0 {
		return Control{}, false
	}
	return v[min(p.focus, len(v)-1)], true
}

// Move shifts focus by delta visible controls, wrapping around.
func (p *Panel) Move(delta int) {
	n := len(p.visible())
	if n == 0 {
		p.focus = 0
		return
	}
	p.focus = ((p.focus+delta)%n + n) % n
}

// Adjust nudges the focused control: sliders step by dir steps, toggles
// flip and choices cycle.
func (p *Panel) Adjust(dir int) error {
	c, ok := p.Focused()
	if !ok {
		return nil
	}
	return p.Step(c.Key, dir)
}

// Step nudges the control bound to key.
func (p *Panel) Step(key string, dir int) error {
	c, ok := p.control(key)
	if !ok {
		return fmt.Errorf("panel: step %s: unknown control", key)
	}
	cur := params.Load(p.store)
	switch c.Kind {
	case Toggle:
		return p.Flip(key)
	case Slider:
		return p.SetFloat(key, floatField(cur, key)+float64(dir)*c.Range.Step)
	default:
		i := optionIndex(c.Options, cur.DiskTexture)
		n := len(c.Options)
		i = ((i+dir)%n + n) % n
		return p.Select(key, c.Options[i].Value)
	}
}

// Flip inverts a toggle.
func (p *Panel) Flip(key string) error {
	c, ok := p.control(key)
	if !ok || c.Kind != Toggle {
		return fmt.Errorf("panel: flip %s: not a toggle", key)
	}
	return p.store.Set(key, !boolField(params.Load(p.store), key))
}

// SetFloat writes a slider value clamped to its range.
func (p *Panel) SetFloat(key string, v float64) error {
	c, ok := p.control(key)
	if !ok || c.Kind != Slider {
		return fmt.Errorf("panel: set %s: not a slider", key)
	}
	return p.store.Set(key, c.Range.Clamp(v))
}

// Select writes a choice value. Values outside the option list are rejected.
func (p *Panel) Select(key, value string) error {
	c, ok := p.control(key)
	if !ok || c.Kind != Choice {
		return fmt.Errorf("panel: select %s: not a choice", key)
	}
	if optionIndex(c.Options, value) < 0 {
		return fmt.Errorf("panel: select %s: unknown option %q", key, value)
	}
	return p.store.Set(key, value)
}

// Reset clears every persisted parameter. Listeners on the store see a
// reset event and rebuild their state from defaults.
func (p *Panel) Reset() error {
	if err := p.store.Clear(); err != nil {
		return fmt.Errorf("panel: reset: %w", err)
	}
	return nil
}

// Lines renders the panel as text, one row per group header or visible
// control. The focused row is marked with '>'.
func (p *Panel) Lines() []string {
	focused, _ := p.Focused()
	cur := params.Load(p.store)
	var out []string
	for _, g := range p.groups {
		mark := "-"
		if g.Collapsed {
			mark = "+"
		}
		out = append(out, fmt.Sprintf("%s %s", mark, g.Name))
		if g.Collapsed {
			continue
		}
		for _, c := range g.Controls {
			cursor := " "
			if c.Key == focused.Key {
				cursor = ">"
			}
			out = append(out, fmt.Sprintf(" %s %-18s %s", cursor, c.Label, value(cur, c)))
		}
	}
	return out
}

// String joins Lines.
func (p *Panel) String() string {
	return strings.Join(p.Lines(), "\n")
}

func value(cur params.RenderParameters, c Control) string {
	switch c.Kind {
	case Toggle:
		if boolField(cur, c.Key) {
			return "[x]"
		}
		return "[ ]"
	case Slider:
		return fmt.Sprintf("%.2f", floatField(cur, c.Key))
	default:
		if i := optionIndex(c.Options, cur.DiskTexture); i >= 0 {
			return c.Options[i].Label
		}
		return cur.DiskTexture
	}
}

func optionIndex(opts []params.Option, v string) int {
	for i, o := range opts {
		if o.Value == v {
			return i
		}
	}
	return -1
}
