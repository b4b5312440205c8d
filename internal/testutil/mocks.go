package testutil

import (
	"fmt"
	"strings"
	"sync"
	"time"
	"transcript/internal/providers"
)

// MockLogger implements providers.Logger and records calls.
type MockLogger struct {
	mu   sync.Mutex
	Logs []LogEntry
}

type LogEntry struct {
	Level  string
	Type   providers.TypeEnum
	Format string
	Args   []interface{}
}

func (e LogEntry) Message() string {
	return fmt.Sprintf(e.Format, e.Args...)
}

func (m *MockLogger) record(level string, t providers.TypeEnum, format string, args ...interface{}) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Logs = append(m.Logs, LogEntry{Level: level, Type: t, Format: format, Args: args})
}

func (m *MockLogger) Errorf(t providers.TypeEnum, format string, args ...interface{}) {
	m.record("error", t, format, args...)
}
func (m *MockLogger) Warnf(t providers.TypeEnum, format string, args ...interface{}) {
	m.record("warn", t, format, args...)
}
func (m *MockLogger) Debugf(t providers.TypeEnum, format string, args ...interface{}) {
	m.record("debug", t, format, args...)
}
func (m *MockLogger) Infof(t providers.TypeEnum, format string, args ...interface{}) {
	m.record("info", t, format, args...)
}
func (m *MockLogger) Fatalf(t providers.TypeEnum, format string, args ...interface{}) {
	m.record("fatal", t, format, args...)
}
func (m *MockLogger) Close() {}

// Count returns how many entries were logged at level whose message contains substr.
func (m *MockLogger) Count(level, substr string) int {
	m.mu.Lock()
	defer m.mu.Unlock()
	n := 0
	for _, e := range m.Logs {
		if e.Level == level && strings.Contains(e.Message(), substr) {
			n++
		}
	}
	return n
}

// MockCache implements providers.CacheProviderInterface.
type MockCache struct {
	mu   sync.Mutex
	Data map[string][]byte
	Hits int
}

func NewMockCache() *MockCache {
	return &MockCache{Data: make(map[string][]byte)}
}

func (m *MockCache) Get(key string) ([]byte, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	val, ok := m.Data[key]
	if ok {
		m.Hits++
	}
	return val, ok
}

func (m *MockCache) Set(key string, value []byte) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Data[key] = value
}

// MockCompressor implements interfaces.CompressorInterface with injectable behavior.
type MockCompressor struct {
	CompressFn   func([]byte) ([]byte, error)
	DecompressFn func([]byte) ([]byte, error)
}

func (m *MockCompressor) Compress(val []byte) ([]byte, error) {
	if m.CompressFn != nil {
		return m.CompressFn(val)
	}
	// Default: return as-is (identity)
	out := make([]byte, len(val))
	copy(out, val)
	return out, nil
}

func (m *MockCompressor) Decompress(val []byte) ([]byte, error) {
	if m.DecompressFn != nil {
		return m.DecompressFn(val)
	}
	out := make([]byte, len(val))
	copy(out, val)
	return out, nil
}

func (m *MockCompressor) Close() {}

// MockMetrics implements providers.MetricsProviderInterface.
type MockMetrics struct {
	mu       sync.Mutex
	Messages map[string]int
	Skipped  map[string]int
	Orphans  map[string]int
	Channels map[string]int
	Hits     int
	Misses   int
	Flushed  int
	FlushErr error
}

func NewMockMetrics() *MockMetrics {
	return &MockMetrics{
		Messages: make(map[string]int),
		Skipped:  make(map[string]int),
		Orphans:  make(map[string]int),
		Channels: make(map[string]int),
	}
}

func (m *MockMetrics) AddMessages(channel string, count int) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Messages[channel] += count
}

func (m *MockMetrics) AddSkipped(channel string, count int) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Skipped[channel] += count
}

func (m *MockMetrics) AddOrphans(channel string, count int) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Orphans[channel] += count
}

func (m *MockMetrics) IncChannels(status string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Channels[status]++
}

func (m *MockMetrics) ObserveChannelDuration(_ time.Duration) {}

func (m *MockMetrics) IncCacheHits() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Hits++
}

func (m *MockMetrics) IncCacheMisses() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Misses++
}

func (m *MockMetrics) Flush() error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Flushed++
	return m.FlushErr
}
