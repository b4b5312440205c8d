package providers

import (
	"io"
	"os"
	"path/filepath"
	"time"
	"transcript/internal/structures"

	"github.com/m-mizutani/goerr/v2"
	"github.com/rs/zerolog"
)

const logFileName = "transcript.log"

type TypeEnum int

const (
	TypeApp TypeEnum = iota
	TypeArchive
	TypeNormalize
	TypeAggregate
	TypeRender
	TypeStats
)

var typeNames = map[TypeEnum]string{
	TypeApp:       "app",
	TypeArchive:   "archive",
	TypeNormalize: "normalize",
	TypeAggregate: "aggregate",
	TypeRender:    "render",
	TypeStats:     "stats",
}

func (t TypeEnum) String() string {
	if name, ok := typeNames[t]; ok {
		return name
	}
	return "unknown"
}

type Logger interface {
	Errorf(t TypeEnum, format string, args ...interface{})
	Warnf(t TypeEnum, format string, args ...interface{})
	Debugf(t TypeEnum, format string, args ...interface{})
	Infof(t TypeEnum, format string, args ...interface{})
	Fatalf(t TypeEnum, format string, args ...interface{})
	Close()
}

type LogProvider struct {
	logger zerolog.Logger
	file   *os.File
}

func (l *LogProvider) Errorf(t TypeEnum, format string, args ...interface{}) {
	l.logger.Error().Str("type", t.String()).Msgf(format, args...)
}

func (l *LogProvider) Warnf(t TypeEnum, format string, args ...interface{}) {
	l.logger.Warn().Str("type", t.String()).Msgf(format, args...)
}

func (l *LogProvider) Debugf(t TypeEnum, format string, args ...interface{}) {
	l.logger.Debug().Str("type", t.String()).Msgf(format, args...)
}

func (l *LogProvider) Infof(t TypeEnum, format string, args ...interface{}) {
	l.logger.Info().Str("type", t.String()).Msgf(format, args...)
}

// Fatalf logs at fatal level without exiting; the caller decides the exit code.
func (l *LogProvider) Fatalf(t TypeEnum, format string, args ...interface{}) {
	l.logger.WithLevel(zerolog.FatalLevel).Str("type", t.String()).Msgf(format, args...)
}

func (l *LogProvider) Close() {
	if l.file != nil {
		_ = l.file.Sync()
		_ = l.file.Close()
		l.file = nil
	}
}

func NewLogProvider(conf *structures.Config) (Logger, error) {
	level, err := zerolog.ParseLevel(conf.Logger.Level)
	if err != nil {
		return nil, goerr.Wrap(err, "invalid log level", goerr.V("level", conf.Logger.Level))
	}
	if conf.Debug {
		level = zerolog.DebugLevel
	}

	writers := []io.Writer{zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.TimeOnly}}

	var file *os.File
	if conf.Logger.Dir != "" {
		mode := os.FileMode(conf.Logger.Mode)
		if mode == 0 {
			mode = 0644
		}
		file, err = os.OpenFile(filepath.Join(conf.Logger.Dir, logFileName), os.O_CREATE|os.O_WRONLY|os.O_APPEND, mode)
		if err != nil {
			return nil, goerr.Wrap(err, "unable to open log file", goerr.V("dir", conf.Logger.Dir))
		}
		writers = append(writers, file)
	}

	logger := zerolog.New(zerolog.MultiLevelWriter(writers...)).
		Level(level).
		With().
		Timestamp().
		Logger()

	return &LogProvider{logger: logger, file: file}, nil
}
