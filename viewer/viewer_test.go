package viewer

import (
	"strings"
	"testing"

	mgl "github.com/go-gl/mathgl/mgl32"
	"github.com/prometheus/client_golang/prometheus/testutil"

	"github.com/richinsley/ezview/input"
	"github.com/richinsley/ezview/telemetry"
	"github.com/richinsley/ezview/transform"
)

// fakeContext hands out one scripted batch of key presses per frame.
type fakeContext struct {
	batches     [][]string
	frame       int
	shouldClose bool
	closeAfter  int // close the window after this many frames; 0 = never
	endFrames   int
}

func (c *fakeContext) MakeCurrent()                   {}
func (c *fakeContext) Shutdown()                      {}
func (c *fakeContext) ShouldClose() bool              { return c.shouldClose }
func (c *fakeContext) SetShouldClose(v bool)          { c.shouldClose = v }
func (c *fakeContext) GetFramebufferSize() (int, int) { return 640, 480 }
func (c *fakeContext) Time() float64                  { return float64(c.frame) / 60 }

func (c *fakeContext) PendingKeys() []string {
	if c.frame >= len(c.batches) {
		return nil
	}
	return c.batches[c.frame]
}

func (c *fakeContext) EndFrame() {
	c.endFrames++
	c.frame++
	if c.closeAfter > 0 && c.frame >= c.closeAfter {
		c.shouldClose = true
	}
}

type fakeDrawer struct {
	frames []mgl.Mat4
	width  int
	height int
}

func (d *fakeDrawer) Draw(mvp mgl.Mat4, width, height int) {
	d.frames = append(d.frames, mvp)
	d.width, d.height = width, height
}

func TestRunStopsOnQuit(t *testing.T) {
	ctx := &fakeContext{batches: [][]string{
		{"="},
		{"="},
		{"Escape", "=", "="},
	}}
	d := &fakeDrawer{}
	state := transform.NewState()

	New(ctx, d, state, input.DefaultBindings()).Run()

	if len(d.frames) != 2 {
		t.Fatalf("want 2 frames drawn before quit, got %d", len(d.frames))
	}
	if !ctx.shouldClose {
		t.Error("quit should close the window")
	}
	if state.Scale() != 4 {
		t.Errorf("keys after quit must be ignored: scale = %v, want 4", state.Scale())
	}
	if ctx.endFrames != 2 {
		t.Errorf("want 2 presented frames, got %d", ctx.endFrames)
	}
}

func TestRunStopsWhenWindowCloses(t *testing.T) {
	ctx := &fakeContext{closeAfter: 3}
	d := &fakeDrawer{}

	New(ctx, d, transform.NewState(), input.DefaultBindings()).Run()

	if len(d.frames) != 3 {
		t.Fatalf("want 3 frames, got %d", len(d.frames))
	}
	for i, m := range d.frames {
		if m != mgl.Ident4() {
			t.Errorf("frame %d: want identity, got %v", i, m)
		}
	}
	if d.width != 640 || d.height != 480 {
		t.Errorf("drawer got framebuffer %dx%d", d.width, d.height)
	}
}

func TestFrameDrawsComposedMatrix(t *testing.T) {
	ctx := &fakeContext{batches: [][]string{{"W", "Left"}}}
	d := &fakeDrawer{}
	state := transform.NewState()
	v := New(ctx, d, state, input.DefaultBindings())

	if !v.Frame() {
		t.Fatal("Frame should continue")
	}
	if len(d.frames) != 1 {
		t.Fatalf("want 1 frame, got %d", len(d.frames))
	}
	if d.frames[0] != state.Matrix() {
		t.Errorf("drawn matrix differs from state matrix")
	}
	if d.frames[0].At(0, 1) != float32(0.1) || d.frames[0].At(0, 3) != float32(0.1) {
		t.Errorf("want shearX and translateX of 0.1, got %v", d.frames[0])
	}
}

func TestDispatchIgnoresUnboundKeys(t *testing.T) {
	state := transform.NewState()
	v := New(&fakeContext{}, &fakeDrawer{}, state, input.DefaultBindings())

	if v.Dispatch([]string{"F1", "Q", "Space"}) {
		t.Fatal("no quit key was pressed")
	}
	if state.Rotation() == 0 {
		t.Error("Q should have rotated")
	}
}

func TestDispatchCountsCommands(t *testing.T) {
	m := telemetry.New()
	ctx := &fakeContext{batches: [][]string{{"Q", "E", "Q"}}, closeAfter: 1}
	New(ctx, &fakeDrawer{}, transform.NewState(), input.DefaultBindings(), WithMetrics(m)).Run()

	expected := `
# HELP ezview_commands_total Transform commands dispatched from key presses.
# TYPE ezview_commands_total counter
ezview_commands_total{command="rotate_ccw"} 2
ezview_commands_total{command="rotate_cw"} 1
# HELP ezview_frames_total Frames drawn.
# TYPE ezview_frames_total counter
ezview_frames_total 1
`
	if err := testutil.GatherAndCompare(m.Gatherer(), strings.NewReader(expected),
		"ezview_commands_total", "ezview_frames_total"); err != nil {
		t.Error(err)
	}
}
