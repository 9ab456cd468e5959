package telemetry

import (
	"errors"
	"net"
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/richinsley/ezview/logging"
	"github.com/richinsley/ezview/transform"
)

// Metrics is the viewer's collector set. A nil *Metrics records nothing.
type Metrics struct {
	registry      *prometheus.Registry
	commands      *prometheus.CounterVec
	frames        prometheus.Counter
	decodeSeconds *prometheus.HistogramVec
	imageBytes    prometheus.Gauge
}

func New() *Metrics {
	m := &Metrics{
		registry: prometheus.NewRegistry(),
		commands: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "ezview",
			Name:      "commands_total",
			Help:      "Transform commands dispatched from key presses.",
		}, []string{"command"}),
		frames: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "ezview",
			Name:      "frames_total",
			Help:      "Frames drawn.",
		}),
		decodeSeconds: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: "ezview",
			Name:      "decode_seconds",
			Help:      "Time spent decoding the pixel map.",
			Buckets:   prometheus.ExponentialBuckets(0.001, 4, 8),
		}, []string{"variant"}),
		imageBytes: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: "ezview",
			Name:      "image_bytes",
			Help:      "Size of the decoded RGB buffer.",
		}),
	}
	m.registry.MustRegister(m.commands, m.frames, m.decodeSeconds, m.imageBytes)
	return m
}

func (m *Metrics) ObserveCommand(c transform.Command) {
	if m == nil {
		return
	}
	m.commands.WithLabelValues(c.String()).Inc()
}

func (m *Metrics) ObserveFrame() {
	if m == nil {
		return
	}
	m.frames.Inc()
}

func (m *Metrics) ObserveDecode(variant string, took time.Duration, size int) {
	if m == nil {
		return
	}
	m.decodeSeconds.WithLabelValues(variant).Observe(took.Seconds())
	m.imageBytes.Set(float64(size))
}

func (m *Metrics) Gatherer() prometheus.Gatherer {
	return m.registry
}

func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}

// Expose serves /metrics on addr in the background. The returned server is
// closed by the caller on exit.
func (m *Metrics) Expose(addr string) (*http.Server, error) {
	ln, err := net.Listen("tcp", addr)
	if err != nil {
		return nil, err
	}
	mux := http.NewServeMux()
	mux.Handle("/metrics", m.Handler())
	srv := &http.Server{Handler: mux, ReadHeaderTimeout: 5 * time.Second}
	go func() {
		if err := srv.Serve(ln); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logging.L().Warn("metrics listener stopped", "addr", addr, "err", err)
		}
	}()
	logging.L().Info("serving metrics", "addr", ln.Addr().String())
	return srv, nil
}
