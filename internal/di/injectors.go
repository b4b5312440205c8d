//go:build wireinject
// +build wireinject

package di

import (
	wire "github.com/google/wire"
	"transcript/internal"
	"transcript/internal/archive"
	"transcript/internal/providers"
	"transcript/internal/render"
	"transcript/internal/services"
	"transcript/internal/statistic"
	"transcript/internal/structures"
)

func InitApp(cfg *structures.CliFlags) (*internal.App, error) {

	wire.Build(
		providers.NewConfigProvider,
		providers.NewLogProvider,
		providers.NewMetricsProvider,
		providers.NewInstrumentedCacheProvider,

		ProvideReader,
		ProvideUsers,
		ProvideRand,
		ProvideCompressor,
		wire.Bind(new(archive.ReaderInterface), new(*archive.Reader)),

		services.NewUserDirectory,
		wire.Bind(new(services.UserDirectoryInterface), new(*services.UserDirectory)),
		services.NewTextNormalizer,
		wire.Bind(new(services.TextNormalizerInterface), new(*services.TextNormalizer)),

		statistic.NewFileManager,
		wire.Bind(new(statistic.FileManagerInterface), new(*statistic.FileManager)),
		wire.Bind(new(render.Writer), new(*statistic.FileManager)),
		render.NewRenderer,
		wire.Bind(new(render.RendererInterface), new(*render.Renderer)),

		internal.NewApp,
	)

	return nil, nil
}
