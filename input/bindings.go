package input

import (
	"fmt"
	"sort"
	"strings"

	"github.com/richinsley/ezview/transform"
)

// Key names reported by the window layer.
const (
	KeyEscape = "Escape"
	KeyQ      = "Q"
	KeyE      = "E"
	KeyEqual  = "="
	KeyMinus  = "-"
	KeyUp     = "Up"
	KeyDown   = "Down"
	KeyLeft   = "Left"
	KeyRight  = "Right"
	KeyW      = "W"
	KeyA      = "A"
	KeyS      = "S"
	KeyD      = "D"
	KeyR      = "R"
)

// Bindings maps a key name to the command it fires.
type Bindings map[string]transform.Command

// DefaultBindings returns the stock key layout.
func DefaultBindings() Bindings {
	return Bindings{
		KeyEscape: transform.Quit,
		KeyQ:      transform.RotateCounterClockwise,
		KeyE:      transform.RotateClockwise,
		KeyEqual:  transform.ZoomIn,
		KeyMinus:  transform.ZoomOut,
		KeyUp:     transform.TranslateUp,
		KeyDown:   transform.TranslateDown,
		KeyLeft:   transform.TranslateLeft,
		KeyRight:  transform.TranslateRight,
		KeyW:      transform.ShearUp,
		KeyS:      transform.ShearDown,
		KeyA:      transform.ShearLeft,
		KeyD:      transform.ShearRight,
		KeyR:      transform.Reset,
	}
}

// Lookup returns the command bound to key.
func (b Bindings) Lookup(key string) (transform.Command, bool) {
	c, ok := b[key]
	return c, ok
}

// CanonicalKey normalises a configured key name to the form the window layer
// reports, so "escape", "ESCAPE" and "Escape" all name the same key.
func CanonicalKey(name string) string {
	if name == "" {
		return name
	}
	return strings.ToUpper(name[:1]) + strings.ToLower(name[1:])
}

// WithOverrides returns a copy of b with keys rebound by command name.
// The special name "none" unbinds a key.
func (b Bindings) WithOverrides(overrides map[string]string) (Bindings, error) {
	out := make(Bindings, len(b)+len(overrides))
	for k, c := range b {
		out[k] = c
	}

	keys := make([]string, 0, len(overrides))
	for k := range overrides {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	for _, raw := range keys {
		key := CanonicalKey(raw)
		name := overrides[raw]
		if name == transform.None.String() {
			delete(out, key)
			continue
		}
		c, err := transform.ParseCommand(name)
		if err != nil {
			return nil, fmt.Errorf("binding for key %q: %w", key, err)
		}
		out[key] = c
	}
	return out, nil
}
