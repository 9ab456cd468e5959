package options

import (
	"errors"
	"io/fs"
	"os"
	"strings"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
)

// EnvPrefix marks the environment variables read by Load. Nested keys use a
// double underscore, e.g. EZVIEW_WINDOW__WIDTH.
const EnvPrefix = "EZVIEW_"

// ConfigEnv names the variable holding an optional YAML config path.
const ConfigEnv = EnvPrefix + "CONFIG"

type WindowOptions struct {
	Width        int    `koanf:"width"`
	Height       int    `koanf:"height"`
	Title        string `koanf:"title"`
	SwapInterval int    `koanf:"swap_interval"`
}

type LogOptions struct {
	Level string `koanf:"level"` // debug|info|warn|error
	JSON  bool   `koanf:"json"`
}

type MetricsOptions struct {
	Addr string `koanf:"addr"` // empty disables the /metrics listener
}

type ViewerOptions struct {
	Window  WindowOptions     `koanf:"window"`
	Log     LogOptions        `koanf:"log"`
	Metrics MetricsOptions    `koanf:"metrics"`
	Keys    map[string]string `koanf:"keys"` // key name -> command name
}

// Load merges the YAML file at path (if present) with EZVIEW_ environment
// variables and fills in defaults. An empty path falls back to $EZVIEW_CONFIG.
func Load(path string) (ViewerOptions, error) {
	if path == "" {
		path = os.Getenv(ConfigEnv)
	}

	k := koanf.New(".")
	for key, val := range defaults {
		if err := k.Set(key, val); err != nil {
			return ViewerOptions{}, err
		}
	}
	if path != "" {
		if err := k.Load(file.Provider(path), yaml.Parser()); err != nil &&
			!errors.Is(err, fs.ErrNotExist) {
			return ViewerOptions{}, err
		}
	}

	if err := k.Load(env.Provider(EnvPrefix, ".", envKey), nil); err != nil {
		return ViewerOptions{}, err
	}

	var opts ViewerOptions
	if err := k.Unmarshal("", &opts); err != nil {
		return opts, err
	}
	applyDefaults(&opts)
	return opts, nil
}

// envKey maps EZVIEW_WINDOW__WIDTH to window.width. The config path variable
// itself is not an option.
func envKey(s string) string {
	if s == ConfigEnv {
		return ""
	}
	key := strings.ToLower(strings.TrimPrefix(s, EnvPrefix))
	return strings.ReplaceAll(key, "__", ".")
}

var defaults = map[string]any{
	"window.width":         640,
	"window.height":        480,
	"window.title":         "EZ-View",
	"window.swap_interval": 1,
	"log.level":            "info",
}

// applyDefaults repairs values a config file or variable zeroed out.
func applyDefaults(o *ViewerOptions) {
	if o.Window.Width <= 0 {
		o.Window.Width = 640
	}
	if o.Window.Height <= 0 {
		o.Window.Height = 480
	}
	if o.Window.Title == "" {
		o.Window.Title = "EZ-View"
	}
	if o.Window.SwapInterval < 0 {
		o.Window.SwapInterval = 0
	}
	if o.Log.Level == "" {
		o.Log.Level = "info"
	}
}
