package providers

import (
	"time"
	"transcript/internal/structures"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const (
	ChannelStatusOK      = "ok"
	ChannelStatusFailed  = "failed"
	ChannelStatusSkipped = "skipped"
)

type MetricsProviderInterface interface {
	AddMessages(channel string, count int)
	AddSkipped(channel string, count int)
	AddOrphans(channel string, count int)
	IncChannels(status string)
	ObserveChannelDuration(duration time.Duration)
	IncCacheHits()
	IncCacheMisses()
	Flush() error
}

// MetricsProvider collects per-run counters in a private registry and
// writes them out once, in the node exporter textfile format.
type MetricsProvider struct {
	registry        *prometheus.Registry
	textfile        string
	messagesTotal   *prometheus.CounterVec
	skippedTotal    *prometheus.CounterVec
	orphansTotal    *prometheus.CounterVec
	channelsTotal   *prometheus.CounterVec
	channelDuration prometheus.Histogram
	cacheHits       prometheus.Counter
	cacheMisses     prometheus.Counter
}

func (m *MetricsProvider) AddMessages(channel string, count int) {
	m.messagesTotal.WithLabelValues(channel).Add(float64(count))
}

func (m *MetricsProvider) AddSkipped(channel string, count int) {
	m.skippedTotal.WithLabelValues(channel).Add(float64(count))
}

func (m *MetricsProvider) AddOrphans(channel string, count int) {
	m.orphansTotal.WithLabelValues(channel).Add(float64(count))
}

func (m *MetricsProvider) IncChannels(status string) {
	m.channelsTotal.WithLabelValues(status).Inc()
}

func (m *MetricsProvider) ObserveChannelDuration(duration time.Duration) {
	m.channelDuration.Observe(duration.Seconds())
}

func (m *MetricsProvider) IncCacheHits() {
	m.cacheHits.Inc()
}

func (m *MetricsProvider) IncCacheMisses() {
	m.cacheMisses.Inc()
}

func (m *MetricsProvider) Flush() error {
	if m.textfile == "" {
		return nil
	}
	return prometheus.WriteToTextfile(m.textfile, m.registry)
}

func NewMetricsProvider(conf *structures.Config) MetricsProviderInterface {
	if !conf.Metrics.Enabled {
		return &noopMetrics{}
	}

	reg := prometheus.NewRegistry()
	factory := promauto.With(reg)

	return &MetricsProvider{
		registry: reg,
		textfile: conf.Metrics.Textfile,

		messagesTotal: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "transcript_messages_total",
			Help: "Messages with a valid timestamp processed per channel",
		}, []string{"channel"}),

		skippedTotal: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "transcript_skipped_records_total",
			Help: "Malformed records skipped per channel",
		}, []string{"channel"}),

		orphansTotal: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "transcript_orphan_replies_total",
			Help: "Replies whose thread root was not seen before them",
		}, []string{"channel"}),

		channelsTotal: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "transcript_channels_total",
			Help: "Channels handled by outcome",
		}, []string{"status"}),

		channelDuration: factory.NewHistogram(prometheus.HistogramOpts{
			Name:    "transcript_channel_duration_seconds",
			Help:    "Time spent converting one channel",
			Buckets: prometheus.DefBuckets,
		}),

		cacheHits: factory.NewCounter(prometheus.CounterOpts{
			Name: "transcript_label_cache_hits_total",
			Help: "User label lookups served from cache",
		}),

		cacheMisses: factory.NewCounter(prometheus.CounterOpts{
			Name: "transcript_label_cache_misses_total",
			Help: "User label lookups that had to be composed",
		}),
	}
}

// noopMetrics is a no-op implementation for when metrics are disabled.
type noopMetrics struct{}

func (n *noopMetrics) AddMessages(_ string, _ int)            {}
func (n *noopMetrics) AddSkipped(_ string, _ int)             {}
func (n *noopMetrics) AddOrphans(_ string, _ int)             {}
func (n *noopMetrics) IncChannels(_ string)                   {}
func (n *noopMetrics) ObserveChannelDuration(_ time.Duration) {}
func (n *noopMetrics) IncCacheHits()                          {}
func (n *noopMetrics) IncCacheMisses()                        {}
func (n *noopMetrics) Flush() error                           { return nil }
