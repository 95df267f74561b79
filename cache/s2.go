package cache

import "github.com/klauspost/compress/s2"

// S2Codec compresses an index snapshot with S2, a Snappy-compatible
// codec that favors speed over ratio. Suited to segments that get
// reopened often, where re-deriving the snapshot is cheap but the extra
// latency of Zstd isn't worth it.
type S2Codec struct{}

var _ Codec = S2Codec{}

func (S2Codec) Compress(data []byte) ([]byte, error) {
	if len(data) == 0 {
		return nil, nil
	}

	return s2.Encode(nil, data), nil
}

func (S2Codec) Decompress(data []byte) ([]byte, error) {
	if len(data) == 0 {
		return nil, nil
	}

	return s2.Decode(nil, data)
}
