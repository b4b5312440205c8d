package internal

import (
	"context"
	"errors"
	"path/filepath"
	"time"
	"transcript/internal/archive"
	"transcript/internal/models"
	"transcript/internal/providers"
	"transcript/internal/render"
	"transcript/internal/services"
	"transcript/internal/statistic"
	"transcript/internal/structures"

	"github.com/m-mizutani/goerr/v2"
)

const statsSuffix = ".stats.json"

var ErrNoChannels = errors.New("no channels selected, pass channel names or --all")

// ChannelOutcome is the result of converting one channel.
type ChannelOutcome struct {
	Channel  string
	Status   string
	Messages int
	Orphans  int
	Skipped  int
	Output   string
	Stats    string
	Err      error
}

type Summary struct {
	Channels []ChannelOutcome
}

func (s *Summary) Count(status string) int {
	n := 0
	for _, c := range s.Channels {
		if c.Status == status {
			n++
		}
	}
	return n
}

type App struct {
	conf       *structures.Config
	flags      *structures.CliFlags
	logger     providers.Logger
	reader     archive.ReaderInterface
	directory  services.UserDirectoryInterface
	normalizer services.TextNormalizerInterface
	renderer   render.RendererInterface
	files      statistic.FileManagerInterface
	metrics    providers.MetricsProviderInterface
	location   *time.Location
}

func NewApp(conf *structures.Config, flags *structures.CliFlags, logger providers.Logger, reader archive.ReaderInterface, directory services.UserDirectoryInterface, normalizer services.TextNormalizerInterface, renderer render.RendererInterface, files statistic.FileManagerInterface, metrics providers.MetricsProviderInterface) (*App, error) {
	location, err := time.LoadLocation(conf.Timezone)
	if err != nil {
		return nil, goerr.Wrap(err, "invalid timezone", goerr.V("timezone", conf.Timezone))
	}
	return &App{
		conf:       conf,
		flags:      flags,
		logger:     logger,
		reader:     reader,
		directory:  directory,
		normalizer: normalizer,
		renderer:   renderer,
		files:      files,
		metrics:    metrics,
		location:   location,
	}, nil
}

// Run converts every selected channel. A failing channel is reported in the
// summary and does not stop the others; only channel selection errors and
// cancellation end the run early.
func (a *App) Run(ctx context.Context) (*Summary, error) {
	channels, err := a.selectChannels()
	if err != nil {
		return nil, err
	}
	a.logger.Infof(providers.TypeApp, "Starting %s: %d channel(s)", a.conf.AppName, len(channels))

	if err := a.renderer.CopyStylesheet(); err != nil {
		a.logger.Errorf(providers.TypeRender, "Stylesheet not written: %v", err)
	}

	summary := &Summary{Channels: make([]ChannelOutcome, 0, len(channels))}
	for _, channel := range channels {
		if err := ctx.Err(); err != nil {
			a.finish()
			return summary, goerr.Wrap(err, "run interrupted", goerr.V("channel", channel))
		}

		start := time.Now()
		outcome := a.convert(channel)
		a.metrics.ObserveChannelDuration(time.Since(start))
		a.metrics.IncChannels(outcome.Status)
		summary.Channels = append(summary.Channels, outcome)
	}

	a.finish()
	a.logger.Infof(providers.TypeApp, "Done: %d converted, %d failed, %d skipped",
		summary.Count(providers.ChannelStatusOK), summary.Count(providers.ChannelStatusFailed), summary.Count(providers.ChannelStatusSkipped))
	return summary, nil
}

func (a *App) selectChannels() ([]string, error) {
	if a.flags.AllChannels {
		channels, err := a.reader.DiscoverChannels()
		if err != nil {
			return nil, err
		}
		if len(channels) == 0 {
			return nil, goerr.Wrap(ErrNoChannels, "input directory holds no channels", goerr.V("dir", a.conf.InputDir))
		}
		return channels, nil
	}

	seen := make(map[string]struct{}, len(a.flags.Channels))
	channels := make([]string, 0, len(a.flags.Channels))
	for _, c := range a.flags.Channels {
		if _, dup := seen[c]; dup || c == "" {
			continue
		}
		seen[c] = struct{}{}
		channels = append(channels, c)
	}
	if len(channels) == 0 {
		return nil, ErrNoChannels
	}
	return channels, nil
}

func (a *App) convert(channel string) ChannelOutcome {
	outcome := ChannelOutcome{Channel: channel, Status: providers.ChannelStatusOK}

	batches, err := a.reader.ReadChannel(channel)
	if err != nil {
		outcome.Err = err
		if errors.Is(err, archive.ErrMissingInput) {
			outcome.Status = providers.ChannelStatusSkipped
			a.logger.Warnf(providers.TypeArchive, "Channel %s skipped: %v", channel, err)
		} else {
			outcome.Status = providers.ChannelStatusFailed
			a.logger.Errorf(providers.TypeArchive, "Channel %s failed: %v", channel, err)
		}
		return outcome
	}

	var stats *models.WordStats
	var collector services.StatsCollectorInterface
	if a.flags.Stats {
		stats = models.NewWordStats()
		collector = stats
	}

	aggregator := services.NewMessageAggregator(a.directory, a.normalizer, collector, a.logger, a.location, services.OrphanPolicy(a.conf.Threading.OrphanPolicy))
	result := aggregator.Aggregate(batches)

	outcome.Messages = result.Count
	outcome.Orphans = result.Orphans
	outcome.Skipped = result.Skipped
	a.metrics.AddMessages(channel, result.Count)
	a.metrics.AddSkipped(channel, result.Skipped)
	a.metrics.AddOrphans(channel, result.Orphans)

	outcome.Output, err = a.renderer.Render(channel, result)
	if err != nil {
		outcome.Status = providers.ChannelStatusFailed
		outcome.Err = err
		a.logger.Errorf(providers.TypeRender, "Channel %s not written: %v", channel, err)
		return outcome
	}

	if stats != nil {
		report := services.BuildChannelReport(channel, result.Count, stats)
		outcome.Stats, err = a.files.SaveReport(filepath.Join(a.conf.OutputDir, channel+statsSuffix), report)
		if err != nil {
			outcome.Status = providers.ChannelStatusFailed
			outcome.Err = err
			a.logger.Errorf(providers.TypeStats, "Statistics of %s not written: %v", channel, err)
			return outcome
		}
	}

	a.logger.Infof(providers.TypeApp, "Channel %s: %d messages, %d orphan replies, %d skipped records",
		channel, result.Count, result.Orphans, result.Skipped)
	return outcome
}

// finish persists the color table and the metrics once per run.
func (a *App) finish() {
	a.directory.Finalize()
	if a.conf.Path != "" {
		if err := providers.SaveUserColors(a.conf); err != nil {
			a.logger.Errorf(providers.TypeApp, "User colors not saved: %v", err)
		}
	}
	if err := a.metrics.Flush(); err != nil {
		a.logger.Warnf(providers.TypeApp, "Metrics not written: %v", err)
	}
}

func (a *App) Close() {
	a.files.Close()
	a.logger.Close()
}
