package di

import (
	"math/rand/v2"
	"transcript/internal/archive"
	"transcript/internal/models"
	"transcript/internal/providers"
	"transcript/internal/statistic"
	"transcript/internal/statistic/interfaces"
	"transcript/internal/structures"
)

func ProvideReader(conf *structures.Config, logger providers.Logger) *archive.Reader {
	return archive.NewReader(conf.InputDir, conf.UsersFile, logger)
}

func ProvideUsers(reader *archive.Reader) ([]models.User, error) {
	return reader.LoadUsers()
}

func ProvideRand() *rand.Rand {
	return rand.New(rand.NewPCG(rand.Uint64(), rand.Uint64()))
}

// ProvideCompressor returns nil when reports are written uncompressed.
func ProvideCompressor(conf *structures.Config) (interfaces.CompressorInterface, error) {
	if !conf.Stats.Compress {
		return nil, nil
	}
	return statistic.NewZstdCompressor()
}
