// Package cache persists a Document's Metaseek index to a sidecar file so
// a large segment can be reopened without re-scanning from the EBML
// Header (SPEC_FULL.md §2, §4).
//
// EBML/Matroska never compresses element bodies in the core container
// format; compressing a Block's codec payload is a track-level concern
// this library treats as an out-of-scope collaborator (spec.md §1). The
// snapshot this package writes is not part of the document itself — it is
// a small, disposable side file the caller may delete at any time and
// rebuild by re-scanning the segment's Metaseek — so compressing it is
// fair game, and this package offers the same four backends the rest of
// the retrieval pack's binary-format libraries use:
//
//   - None: no compression, fastest
//   - Zstd: best ratio, used for archived/cold segments
//   - S2: balanced, used for frequently-reopened segments
//   - LZ4: fastest decompression, used for latency-sensitive reopen paths
package cache
