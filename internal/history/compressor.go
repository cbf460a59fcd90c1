package history

import (
	"fmt"
	"probpick/internal/history/interfaces"

	"github.com/klauspost/compress/zstd"
)

// archives are written once per reset and read back by hand, so ratio beats speed
const (
	archiveLevel     = zstd.SpeedBetterCompression
	maxArchiveMemory = 64 << 20
)

type ZstdCompression struct {
	enc *zstd.Encoder
	dec *zstd.Decoder
}

func NewZstdCompressor() (interfaces.CompressorInterface, error) {
	enc, err := zstd.NewWriter(nil,
		zstd.WithEncoderLevel(archiveLevel),
		zstd.WithEncoderConcurrency(1),
	)
	if err != nil {
		return nil, fmt.Errorf("zstd encoder: %w", err)
	}
	dec, err := zstd.NewReader(nil,
		zstd.WithDecoderConcurrency(1),
		zstd.WithDecoderMaxMemory(maxArchiveMemory),
	)
	if err != nil {
		_ = enc.Close()
		return nil, fmt.Errorf("zstd decoder: %w", err)
	}
	return &ZstdCompression{enc: enc, dec: dec}, nil
}

func (z *ZstdCompression) Compress(val []byte) ([]byte, error) {
	return z.enc.EncodeAll(val, nil), nil
}

func (z *ZstdCompression) Decompress(val []byte) ([]byte, error) {
	out, err := z.dec.DecodeAll(val, nil)
	if err != nil {
		return nil, fmt.Errorf("corrupt archive: %w", err)
	}
	return out, nil
}

func (z *ZstdCompression) Close() {
	_ = z.enc.Close()
	z.dec.Close()
}
