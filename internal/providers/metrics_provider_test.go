package providers

import (
	"os"
	"path/filepath"
	"testing"
	"time"
	"transcript/internal/structures"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNoopMetrics_WhenDisabled(t *testing.T) {
	conf := &structures.Config{
		Metrics: structures.MetricsConfig{Enabled: false},
	}
	m := NewMetricsProvider(conf)
	_, ok := m.(*noopMetrics)
	assert.True(t, ok, "should return noopMetrics when disabled")

	m.AddMessages("general", 10)
	m.AddSkipped("general", 1)
	m.AddOrphans("general", 1)
	m.IncChannels(ChannelStatusOK)
	m.ObserveChannelDuration(time.Millisecond)
	m.IncCacheHits()
	m.IncCacheMisses()
	assert.NoError(t, m.Flush())
}

func TestMetricsProvider_Counters(t *testing.T) {
	conf := &structures.Config{
		Metrics: structures.MetricsConfig{Enabled: true},
	}
	m, ok := NewMetricsProvider(conf).(*MetricsProvider)
	require.True(t, ok)

	m.AddMessages("general", 3)
	m.AddMessages("general", 2)
	m.AddOrphans("random", 1)
	m.IncChannels(ChannelStatusFailed)
	m.IncCacheHits()
	m.IncCacheHits()
	m.IncCacheMisses()

	assert.Equal(t, float64(2), testutil.ToFloat64(m.cacheHits))
	assert.Equal(t, float64(1), testutil.ToFloat64(m.cacheMisses))
	assert.Equal(t, float64(5), testutil.ToFloat64(m.messagesTotal.WithLabelValues("general")))
	assert.Equal(t, float64(1), testutil.ToFloat64(m.orphansTotal.WithLabelValues("random")))
	assert.Equal(t, float64(1), testutil.ToFloat64(m.channelsTotal.WithLabelValues(ChannelStatusFailed)))
}

func TestMetricsProvider_IndependentRegistries(t *testing.T) {
	conf := &structures.Config{Metrics: structures.MetricsConfig{Enabled: true}}

	// Registering the same metric names twice must not panic.
	assert.NotPanics(t, func() {
		NewMetricsProvider(conf)
		NewMetricsProvider(conf)
	})
}

func TestMetricsProvider_FlushWritesTextfile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "transcript.prom")
	conf := &structures.Config{
		Metrics: structures.MetricsConfig{Enabled: true, Textfile: path},
	}
	m := NewMetricsProvider(conf)
	m.AddMessages("general", 7)
	m.ObserveChannelDuration(250 * time.Millisecond)

	require.NoError(t, m.Flush())

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), `transcript_messages_total{channel="general"} 7`)
	assert.Contains(t, string(data), "transcript_channel_duration_seconds_count 1")
}

func TestMetricsProvider_FlushWithoutTextfile(t *testing.T) {
	conf := &structures.Config{Metrics: structures.MetricsConfig{Enabled: true}}
	assert.NoError(t, NewMetricsProvider(conf).Flush())
}
