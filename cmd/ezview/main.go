package main

import (
	"context"
	"fmt"
	"os"
	"runtime"
	"time"

	"github.com/spf13/cobra"

	"github.com/richinsley/ezview/glfwcontext"
	"github.com/richinsley/ezview/input"
	"github.com/richinsley/ezview/logging"
	"github.com/richinsley/ezview/options"
	"github.com/richinsley/ezview/pixmap"
	"github.com/richinsley/ezview/renderer"
	"github.com/richinsley/ezview/telemetry"
	"github.com/richinsley/ezview/transform"
	"github.com/richinsley/ezview/viewer"
)

var rootCmd = &cobra.Command{
	Use:   "ezview <file>",
	Short: "Display a P3/P6 pixel map and transform it from the keyboard",
	Long: `Display a P3/P6 pixel map and transform it from the keyboard.

Keys:
  Q / E          rotate 90 degrees counter-clockwise / clockwise
  = / -          zoom in / out by a factor of two
  arrows         translate by 0.1
  W / S / A / D  shear up / down / left / right by 0.1
  R              reset
  Escape         quit

Settings are read from the YAML file named by $EZVIEW_CONFIG and from
EZVIEW_ environment variables, e.g. EZVIEW_WINDOW__WIDTH=800.`,
	Args:          cobra.ExactArgs(1),
	SilenceUsage:  true,
	SilenceErrors: true,
	RunE:          runView,
}

func init() {
	// GLFW and GL calls must stay on the main thread.
	runtime.LockOSThread()
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "ERROR: %v\n", err)
		os.Exit(-1)
	}
}

func runView(cmd *cobra.Command, args []string) error {
	opts, err := options.Load("")
	if err != nil {
		return fmt.Errorf("loading options: %w", err)
	}
	logging.Configure(logging.Options{Level: opts.Log.Level, JSON: opts.Log.JSON})
	log := logging.L()

	bindings, err := input.DefaultBindings().WithOverrides(opts.Keys)
	if err != nil {
		return fmt.Errorf("key bindings: %w", err)
	}

	metrics := telemetry.New()
	if opts.Metrics.Addr != "" {
		srv, err := metrics.Expose(opts.Metrics.Addr)
		if err != nil {
			return fmt.Errorf("metrics listener: %w", err)
		}
		defer func() {
			ctx, cancel := context.WithTimeout(context.Background(), time.Second)
			defer cancel()
			_ = srv.Shutdown(ctx)
		}()
	}

	start := time.Now()
	img, err := pixmap.DecodeFile(args[0])
	if err != nil {
		return err
	}
	metrics.ObserveDecode(img.Variant().String(), time.Since(start), len(img.Pix()))
	log.Info("decoded image", "path", args[0], "variant", img.Variant().String(),
		"width", img.Width(), "height", img.Height(), "maxval", img.MaxValue())

	if err := glfwcontext.InitGraphics(); err != nil {
		return fmt.Errorf("failed to initialize GLFW: %w", err)
	}
	defer glfwcontext.TerminateGraphics()

	window, err := glfwcontext.New(opts.Window)
	if err != nil {
		return fmt.Errorf("failed to create window: %w", err)
	}
	defer window.Shutdown()

	r, err := renderer.NewRenderer(window)
	if err != nil {
		return err
	}
	defer r.Shutdown()
	r.UploadImage(img)

	v := viewer.New(window, r, transform.NewState(), bindings,
		viewer.WithMetrics(metrics), viewer.WithLogger(log))
	v.Run()
	return nil
}
