package viewer

import (
	"log/slog"

	mgl "github.com/go-gl/mathgl/mgl32"

	"github.com/richinsley/ezview/graphics"
	"github.com/richinsley/ezview/input"
	"github.com/richinsley/ezview/logging"
	"github.com/richinsley/ezview/telemetry"
	"github.com/richinsley/ezview/transform"
)

// Drawer draws the uploaded image with the given model-view-projection matrix.
type Drawer interface {
	Draw(mvp mgl.Mat4, width, height int)
}

// Viewer runs the interactive loop. It owns no GPU resources; the context
// and drawer are released by whoever created them.
type Viewer struct {
	context  graphics.Context
	drawer   Drawer
	state    *transform.State
	bindings input.Bindings
	metrics  *telemetry.Metrics
	log      *slog.Logger
	quit     bool
}

type Option func(*Viewer)

func WithMetrics(m *telemetry.Metrics) Option {
	return func(v *Viewer) { v.metrics = m }
}

func WithLogger(l *slog.Logger) Option {
	return func(v *Viewer) { v.log = l }
}

func New(ctx graphics.Context, d Drawer, state *transform.State, b input.Bindings, opts ...Option) *Viewer {
	v := &Viewer{
		context:  ctx,
		drawer:   d,
		state:    state,
		bindings: b,
		log:      logging.L(),
	}
	for _, o := range opts {
		o(v)
	}
	return v
}

// Dispatch applies each key press in arrival order. Once a key maps to Quit
// the remaining presses are dropped and Dispatch reports true.
func (v *Viewer) Dispatch(keys []string) bool {
	for _, key := range keys {
		if v.quit {
			break
		}
		cmd, ok := v.bindings.Lookup(key)
		if !ok {
			v.log.Debug("unbound key", "key", key)
			continue
		}
		v.metrics.ObserveCommand(cmd)
		v.quit = v.state.Apply(cmd)
		v.log.Debug("command",
			"key", key,
			"command", cmd.String(),
			"rotation", v.state.Rotation(),
			"scale", v.state.Scale(),
			"translate_x", v.state.TranslateX(),
			"translate_y", v.state.TranslateY(),
			"shear_x", v.state.ShearX(),
			"shear_y", v.state.ShearY(),
		)
	}
	return v.quit
}

// Frame runs one iteration of the loop and reports whether another should follow.
func (v *Viewer) Frame() bool {
	if v.Dispatch(v.context.PendingKeys()) {
		v.context.SetShouldClose(true)
		return false
	}

	mvp := v.state.Matrix()
	width, height := v.context.GetFramebufferSize()
	v.drawer.Draw(mvp, width, height)
	v.metrics.ObserveFrame()

	v.context.EndFrame()
	return true
}

// Run loops until Quit is dispatched or the window is closed.
func (v *Viewer) Run() {
	frames := 0
	start := v.context.Time()
	for !v.context.ShouldClose() {
		if !v.Frame() {
			break
		}
		frames++
	}
	v.log.Info("viewer stopped", "frames", frames, "seconds", v.context.Time()-start)
}
