package glfwcontext

import (
	"fmt"

	glfw "github.com/go-gl/glfw/v3.3/glfw"

	"github.com/richinsley/ezview/input"
)

var namedKeys = map[glfw.Key]string{
	glfw.KeyEscape:     input.KeyEscape,
	glfw.KeyUp:         input.KeyUp,
	glfw.KeyDown:       input.KeyDown,
	glfw.KeyLeft:       input.KeyLeft,
	glfw.KeyRight:      input.KeyRight,
	glfw.KeyEqual:      input.KeyEqual,
	glfw.KeyMinus:      input.KeyMinus,
	glfw.KeySpace:      "Space",
	glfw.KeyEnter:      "Enter",
	glfw.KeyTab:        "Tab",
	glfw.KeyBackspace:  "Backspace",
	glfw.KeyHome:       "Home",
	glfw.KeyEnd:        "End",
	glfw.KeyPageUp:     "Pageup",
	glfw.KeyPageDown:   "Pagedown",
	glfw.KeyKPAdd:      "Kpadd",
	glfw.KeyKPSubtract: "Kpsubtract",
}

// keyName maps a GLFW key to the layout-independent name used by
// input.Bindings, or "" for keys that cannot be bound. Names are already in
// input.CanonicalKey form.
func keyName(key glfw.Key) string {
	if name, ok := namedKeys[key]; ok {
		return name
	}
	switch {
	case key >= glfw.KeyA && key <= glfw.KeyZ,
		key >= glfw.Key0 && key <= glfw.Key9:
		return string(rune(key))
	case key >= glfw.KeyF1 && key <= glfw.KeyF12:
		return fmt.Sprintf("F%d", int(key-glfw.KeyF1)+1)
	}
	return ""
}
