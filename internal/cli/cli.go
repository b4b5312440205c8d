package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"transcript/internal"
	"transcript/internal/di"
	"transcript/internal/providers"
	"transcript/internal/structures"

	"github.com/fatih/color"
	"github.com/m-mizutani/goerr/v2"
	"github.com/urfave/cli/v3"
)

var ErrChannelsFailed = errors.New("one or more channels failed")

// Initializer builds the App from parsed flags.
type Initializer func(flags *structures.CliFlags) (*internal.App, error)

func Run(ctx context.Context, args []string, version string) error {
	cmd := NewCommand(version, os.Stdout, di.InitApp)
	if err := cmd.Run(ctx, args); err != nil {
		color.New(color.FgRed, color.Bold).Fprintf(os.Stderr, "error: %v\n", err)
		return err
	}
	return nil
}

func NewCommand(version string, out io.Writer, initApp Initializer) *cli.Command {
	var flags structures.CliFlags
	var channels []string

	return &cli.Command{
		Name:      providers.AppName,
		Usage:     "Convert a chat export archive into static HTML transcripts",
		Version:   version,
		ArgsUsage: "[channel...]",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:        "config",
				Aliases:     []string{"c"},
				Usage:       "Path to the YAML config file",
				Value:       "config.yaml",
				Sources:     cli.EnvVars("TRANSCRIPT_CONFIG"),
				Destination: &flags.ConfigPath,
			},
			&cli.StringSliceFlag{
				Name:        "channel",
				Usage:       "Channel to convert (can be specified multiple times)",
				Destination: &channels,
			},
			&cli.BoolFlag{
				Name:        "all",
				Usage:       "Convert every channel found in the input directory",
				Destination: &flags.AllChannels,
			},
			&cli.BoolFlag{
				Name:        "stats",
				Usage:       "Also write per-user word statistics",
				Destination: &flags.Stats,
			},
			&cli.BoolFlag{
				Name:        "debug",
				Usage:       "Force debug logging",
				Sources:     cli.EnvVars("TRANSCRIPT_DEBUG"),
				Destination: &flags.DebugMode,
			},
		},
		Action: func(ctx context.Context, c *cli.Command) error {
			flags.Channels = append(append([]string{}, channels...), c.Args().Slice()...)
			if len(flags.Channels) == 0 && !flags.AllChannels {
				return internal.ErrNoChannels
			}

			app, err := initApp(&flags)
			if err != nil {
				return goerr.Wrap(err, "failed to initialize", goerr.V("config", flags.ConfigPath))
			}
			defer app.Close()

			summary, err := app.Run(ctx)
			if summary != nil {
				PrintSummary(out, summary)
			}
			if err != nil {
				return err
			}
			if n := summary.Count(providers.ChannelStatusFailed); n > 0 {
				return goerr.Wrap(ErrChannelsFailed, "conversion incomplete", goerr.V("failed", n))
			}
			return nil
		},
	}
}

var statusColors = map[string]*color.Color{
	providers.ChannelStatusOK:      color.New(color.FgGreen),
	providers.ChannelStatusSkipped: color.New(color.FgYellow),
	providers.ChannelStatusFailed:  color.New(color.FgRed),
}

// PrintSummary writes one line per channel.
func PrintSummary(out io.Writer, summary *internal.Summary) {
	for _, c := range summary.Channels {
		status := fmt.Sprintf("%-7s", c.Status)
		if col, ok := statusColors[c.Status]; ok {
			status = col.Sprint(status)
		}

		switch {
		case c.Err != nil:
			fmt.Fprintf(out, "%s %s: %v\n", status, c.Channel, c.Err)
		case c.Stats != "":
			fmt.Fprintf(out, "%s %s: %d messages -> %s, %s\n", status, c.Channel, c.Messages, c.Output, c.Stats)
		default:
			fmt.Fprintf(out, "%s %s: %d messages -> %s\n", status, c.Channel, c.Messages, c.Output)
		}
	}
}
