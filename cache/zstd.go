package cache

// ZstdCodec compresses an index snapshot with Zstandard, favoring ratio
// over speed. Suited to archived or cold segments that are reopened
// rarely, where the sidecar's on-disk footprint matters more than the
// cost of rebuilding it.
type ZstdCodec struct{}

var _ Codec = ZstdCodec{}
