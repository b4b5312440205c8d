package statistic

import (
	"transcript/internal/statistic/interfaces"

	"github.com/klauspost/compress/zstd"
	"github.com/m-mizutani/goerr/v2"
)

// CompressedExt is appended to artifacts written through a compressor.
const CompressedExt = ".zst"

type ZstdCompression struct {
	encoder *zstd.Encoder
	decoder *zstd.Decoder
}

func (z *ZstdCompression) Compress(val []byte) ([]byte, error) {
	return z.encoder.EncodeAll(val, make([]byte, 0, len(val)/2)), nil
}

func (z *ZstdCompression) Decompress(val []byte) ([]byte, error) {
	return z.decoder.DecodeAll(val, nil)
}

func (z *ZstdCompression) Close() {
	z.encoder.Close()
	z.decoder.Close()
}

func NewZstdCompressor() (interfaces.CompressorInterface, error) {
	encoder, err := zstd.NewWriter(nil, zstd.WithEncoderLevel(zstd.SpeedBetterCompression))
	if err != nil {
		return nil, goerr.Wrap(err, "failed to create zstd encoder")
	}
	decoder, err := zstd.NewReader(nil, zstd.WithDecoderConcurrency(0))
	if err != nil {
		encoder.Close()
		return nil, goerr.Wrap(err, "failed to create zstd decoder")
	}
	return &ZstdCompression{encoder: encoder, decoder: decoder}, nil
}
