package transform

import "fmt"

// Command is one discrete edit to a State.
type Command int

const (
	None Command = iota
	RotateCounterClockwise
	RotateClockwise
	ZoomIn
	ZoomOut
	TranslateUp
	TranslateDown
	TranslateLeft
	TranslateRight
	ShearUp
	ShearDown
	ShearLeft
	ShearRight
	Reset
	Quit
)

var commandNames = map[Command]string{
	None:                   "none",
	RotateCounterClockwise: "rotate_ccw",
	RotateClockwise:        "rotate_cw",
	ZoomIn:                 "zoom_in",
	ZoomOut:                "zoom_out",
	TranslateUp:            "translate_up",
	TranslateDown:          "translate_down",
	TranslateLeft:          "translate_left",
	TranslateRight:         "translate_right",
	ShearUp:                "shear_up",
	ShearDown:              "shear_down",
	ShearLeft:              "shear_left",
	ShearRight:             "shear_right",
	Reset:                  "reset",
	Quit:                   "quit",
}

func (c Command) String() string {
	if s, ok := commandNames[c]; ok {
		return s
	}
	return fmt.Sprintf("command(%d)", int(c))
}

// ParseCommand maps a name produced by Command.String back to its Command.
func ParseCommand(name string) (Command, error) {
	for c, s := range commandNames {
		if s == name && c != None {
			return c, nil
		}
	}
	return None, fmt.Errorf("unknown command %q", name)
}

// Commands lists every command that can be bound to a key.
func Commands() []Command {
	return []Command{
		RotateCounterClockwise, RotateClockwise,
		ZoomIn, ZoomOut,
		TranslateUp, TranslateDown, TranslateLeft, TranslateRight,
		ShearUp, ShearDown, ShearLeft, ShearRight,
		Reset, Quit,
	}
}
