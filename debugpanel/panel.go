// Package debugpanel exposes numeric fields of live objects as bounded,
// stepped values that can be adjusted while the scene runs.
package debugpanel

import (
	"errors"
	"fmt"
	"log/slog"
	"math"
	"reflect"
	"strings"
)

var (
	ErrNotStructPointer = errors.New("bind target must be a non-nil pointer to a struct")
	ErrUnknownField     = errors.New("unknown field")
	ErrNotNumeric       = errors.New("field is not a settable float")
	ErrBadRange         = errors.New("invalid range")
	ErrUnknownBinding   = errors.New("unknown binding")
)

// Binding ties one float field to a range. Writes go straight to the field
// through the pointer given to Bind, so the owner sees them on its next read.
type Binding struct {
	Label string
	Min   float64
	Max   float64
	Step  float64

	field reflect.Value
	log   *slog.Logger
}

func (b *Binding) Value() float64 {
	return b.field.Float()
}

// Set clamps v to the range, snaps it to the nearest step from Min and
// stores it. It returns the stored value.
func (b *Binding) Set(v float64) float64 {
	if math.IsNaN(v) {
		return b.Value()
	}
	v = math.Max(b.Min, math.Min(b.Max, v))
	if b.Step > 0 {
		v = b.Min + math.Round((v-b.Min)/b.Step)*b.Step
		v = math.Max(b.Min, math.Min(b.Max, v))
	}
	b.field.SetFloat(v)
	b.log.Debug("tunable changed", "label", b.Label, "value", b.Value())
	return b.Value()
}

// Nudge moves the value by n steps.
func (b *Binding) Nudge(n int) float64 {
	return b.Set(b.Value() + float64(n)*b.Step)
}

// Name sets the display label.
func (b *Binding) Name(label string) *Binding {
	b.Label = label
	return b
}

func (b *Binding) String() string {
	return fmt.Sprintf("%s: %s", b.Label, b.format())
}

func (b *Binding) format() string {
	decimals := 0
	if b.Step > 0 && b.Step < 1 {
		decimals = int(math.Ceil(-math.Log10(b.Step)))
	}
	return fmt.Sprintf("%.*f", decimals, b.Value())
}

type Key int

const (
	KeyNext Key = iota
	KeyPrev
	KeyIncrease
	KeyDecrease
)

// Panel is an ordered set of bindings with one of them selected.
type Panel struct {
	bindings []*Binding
	selected int
	log      *slog.Logger
}

func New(logger *slog.Logger) *Panel {
	if logger == nil {
		logger = slog.Default()
	}
	return &Panel{log: logger}
}

// Bind exposes obj's float field within [min, max]. obj must be a pointer
// to a struct; field is the exported field name. The current value is
// clamped into range.
func (p *Panel) Bind(obj any, field string, min, max, step float64) (*Binding, error) {
	if !(min <= max) || step < 0 {
		return nil, fmt.Errorf("bind %s [%v, %v] step %v: %w", field, min, max, step, ErrBadRange)
	}
	rv := reflect.ValueOf(obj)
	if rv.Kind() != reflect.Pointer || rv.IsNil() || rv.Elem().Kind() != reflect.Struct {
		return nil, fmt.Errorf("bind %s on %T: %w", field, obj, ErrNotStructPointer)
	}
	fv := rv.Elem().FieldByName(field)
	if !fv.IsValid() {
		return nil, fmt.Errorf("bind %s on %T: %w", field, obj, ErrUnknownField)
	}
	if !fv.CanSet() || (fv.Kind() != reflect.Float32 && fv.Kind() != reflect.Float64) {
		return nil, fmt.Errorf("bind %s on %T: %w", field, obj, ErrNotNumeric)
	}

	b := &Binding{Label: field, Min: min, Max: max, Step: step, field: fv, log: p.log}
	if v := b.Value(); v < min || v > max {
		b.Set(v)
	}
	p.bindings = append(p.bindings, b)
	return b, nil
}

func (p *Panel) Bindings() []*Binding {
	return p.bindings
}

// Selected returns the binding keyboard input applies to, or nil.
func (p *Panel) Selected() *Binding {
	if len(p.bindings) == 0 {
		return nil
	}
	return p.bindings[p.selected]
}

func (p *Panel) Next() {
	if n := len(p.bindings); n > 0 {
		p.selected = (p.selected + 1) % n
	}
}

func (p *Panel) Prev() {
	if n := len(p.bindings); n > 0 {
		p.selected = (p.selected + n - 1) % n
	}
}

// Lookup finds a binding by label, ignoring case.
func (p *Panel) Lookup(label string) *Binding {
	for _, b := range p.bindings {
		if strings.EqualFold(b.Label, label) {
			return b
		}
	}
	return nil
}

// SetByLabel sets the binding with the given label.
func (p *Panel) SetByLabel(label string, v float64) error {
	b := p.Lookup(label)
	if b == nil {
		return fmt.Errorf("set %q: %w", label, ErrUnknownBinding)
	}
	b.Set(v)
	return nil
}

// HandleKey applies one key press. coarse multiplies nudges by ten. It
// reports whether the panel changed.
func (p *Panel) HandleKey(k Key, coarse bool) bool {
	sel := p.Selected()
	if sel == nil {
		return false
	}
	steps := 1
	if coarse {
		steps = 10
	}
	switch k {
	case KeyNext:
		p.Next()
	case KeyPrev:
		p.Prev()
	case KeyIncrease:
		sel.Nudge(steps)
	case KeyDecrease:
		sel.Nudge(-steps)
	default:
		return false
	}
	return true
}

// Status is a one-line summary of the selected binding.
func (p *Panel) Status() string {
	sel := p.Selected()
	if sel == nil {
		return ""
	}
	return fmt.Sprintf("[%d/%d] %s", p.selected+1, len(p.bindings), sel)
}
