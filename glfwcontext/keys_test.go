package glfwcontext

import (
	"testing"

	glfw "github.com/go-gl/glfw/v3.3/glfw"

	"github.com/richinsley/ezview/input"
)

func TestKeyName(t *testing.T) {
	tests := []struct {
		key  glfw.Key
		want string
	}{
		{glfw.KeyEscape, "Escape"},
		{glfw.KeyQ, "Q"},
		{glfw.KeyE, "E"},
		{glfw.KeyEqual, "="},
		{glfw.KeyMinus, "-"},
		{glfw.KeyUp, "Up"},
		{glfw.KeyRight, "Right"},
		{glfw.KeyW, "W"},
		{glfw.KeyR, "R"},
		{glfw.Key0, "0"},
		{glfw.Key9, "9"},
		{glfw.KeyF1, "F1"},
		{glfw.KeyF12, "F12"},
		{glfw.KeyPageUp, "Pageup"},
		{glfw.KeyLeftShift, ""},
		{glfw.KeyUnknown, ""},
	}
	for _, tt := range tests {
		if got := keyName(tt.key); got != tt.want {
			t.Errorf("keyName(%d) = %q, want %q", tt.key, got, tt.want)
		}
	}
}

func TestKeyNamesAreCanonical(t *testing.T) {
	for key, name := range namedKeys {
		if input.CanonicalKey(name) != name {
			t.Errorf("key %d: name %q is not canonical", key, name)
		}
	}
}

func TestDefaultBindingsAreReachable(t *testing.T) {
	reachable := map[string]bool{}
	for k := glfw.KeySpace; k <= glfw.KeyLast; k++ {
		if name := keyName(k); name != "" {
			reachable[name] = true
		}
	}
	for name := range input.DefaultBindings() {
		if !reachable[name] {
			t.Errorf("default binding %q has no GLFW key", name)
		}
	}
}
