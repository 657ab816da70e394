package notecrypt

import (
	"sync"

	"github.com/klauspost/compress/zstd"
)

// Sealed payload format for versions that support compression:
// [flag:1][note bytes, possibly zstd compressed]
//
// The flag is inside the sealed payload, so it is authenticated.
const (
	flagNoCompression byte = 0x00
	flagZstd          byte = 0x01
)

// Default compression settings
const (
	defaultCompressionThreshold = 1024 // 1KB
	minCompressionSavings       = 0.10 // 10% minimum savings to use compression

	// maxDecoderMemory bounds the zstd decoder window and output regardless
	// of the codec's plaintext limit.
	maxDecoderMemory = 64 * 1024 * 1024
)

var (
	// zstd encoder and decoder are thread-safe and reusable
	zstdEncoder *zstd.Encoder
	zstdDecoder *zstd.Decoder
	zstdOnce    sync.Once
	zstdErr     error
)

// initZstd initializes the zstd encoder and decoder once.
func initZstd() (*zstd.Encoder, *zstd.Decoder, error) {
	zstdOnce.Do(func() {
		zstdEncoder, zstdErr = zstd.NewWriter(nil, zstd.WithEncoderLevel(zstd.SpeedDefault))
		if zstdErr != nil {
			return
		}
		zstdDecoder, zstdErr = zstd.NewReader(nil, zstd.WithDecoderMaxMemory(maxDecoderMemory))
		if zstdErr != nil {
			zstdEncoder.Close()
			zstdEncoder = nil
		}
	})
	return zstdEncoder, zstdDecoder, zstdErr
}

func compressZstd(data []byte) ([]byte, error) {
	encoder, _, err := initZstd()
	if err != nil {
		return nil, err
	}
	return encoder.EncodeAll(data, nil), nil
}

// decompressZstd returns ErrPlaintextTooLarge if the output exceeds limit.
func decompressZstd(data []byte, limit int) ([]byte, error) {
	_, decoder, err := initZstd()
	if err != nil {
		return nil, err
	}
	result, err := decoder.DecodeAll(data, nil)
	if err != nil {
		return nil, ErrDecompressionFailed
	}
	if len(result) > limit {
		return nil, ErrPlaintextTooLarge
	}
	return result, nil
}

// maybeCompress prefixes data with a flag byte, compressing it first when it
// is at least threshold bytes and compression saves enough. Data larger than
// the decoder can restore is stored uncompressed.
func maybeCompress(data []byte, threshold int, disabled bool) []byte {
	body, flag := data, flagNoCompression

	if !disabled && len(data) >= threshold && len(data) <= maxDecoderMemory {
		compressed, err := compressZstd(data)
		if err == nil {
			savings := float64(len(data)-len(compressed)) / float64(len(data))
			if savings >= minCompressionSavings {
				body, flag = compressed, flagZstd
			}
		}
	}

	out := make([]byte, 0, 1+len(body))
	out = append(out, flag)
	return append(out, body...)
}

// decompress strips the flag byte and decompresses the remainder if needed.
func decompress(payload []byte, limit int) ([]byte, error) {
	if len(payload) == 0 {
		return nil, ErrDecompressionFailed
	}
	flag, body := payload[0], payload[1:]
	switch flag {
	case flagNoCompression:
		return body, nil
	case flagZstd:
		return decompressZstd(body, limit)
	default:
		return nil, ErrUnsupportedCompression
	}
}
