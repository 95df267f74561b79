// Package format holds the small closed enumerations shared across
// packages that would otherwise duplicate them.
package format

// CompressionType selects the codec used to compress an index snapshot
// sidecar (package cache). It has no bearing on the EBML wire format
// itself: element bodies are never compressed by this library, only the
// optional reopen-acceleration snapshot is (SPEC_FULL.md §2).
type CompressionType uint8

const (
	CompressionNone CompressionType = 0x1
	CompressionZstd CompressionType = 0x2
	CompressionS2   CompressionType = 0x3
	CompressionLZ4  CompressionType = 0x4
)

func (c CompressionType) String() string {
	switch c {
	case CompressionNone:
		return "None"
	case CompressionZstd:
		return "Zstd"
	case CompressionS2:
		return "S2"
	case CompressionLZ4:
		return "LZ4"
	default:
		return "Unknown"
	}
}
