// Package tawara implements the Document driver (spec.md §4.11): the
// open-stream prologue that detects an empty stream and writes a fresh
// EBML Header plus Segment, or parses and validates an existing one.
//
// The name follows the original C++ project family this module's spec was
// distilled from (celduin = generic EBML core, jonen = index layer, tide =
// concrete DocType); Document is this library's outermost type, playing
// the role tide::TideImpl plays in the original.
package tawara

import (
	"github.com/gbiggs/tawara/errs"
	"github.com/gbiggs/tawara/header"
	"github.com/gbiggs/tawara/ids"
	"github.com/gbiggs/tawara/internal/options"
	"github.com/gbiggs/tawara/internal/stream"
	"github.com/gbiggs/tawara/seek"
	"github.com/gbiggs/tawara/segment"
)

// Default DocType triple, matching the original's tide_impl.cpp defaults
// (spec.md §9 leaves the exact values to the implementation; SPEC_FULL.md
// §4 resolves them by following original_source/).
const (
	DefaultDocType            = "tide"
	DefaultDocTypeVersion     = 2
	DefaultDocTypeReadVersion = 2
)

// MaxEBMLReadVersion is the highest EBMLReadVersion this library can
// safely parse (spec.md §4.11).
const MaxEBMLReadVersion = 1

// config holds the Document's open-time configuration, built from Option
// values the same way the teacher's internal/options machinery configures
// its encoders.
type config struct {
	docType            string
	docTypeVersion     uint64
	docTypeReadVersion uint64
}

func defaultConfig() *config {
	return &config{
		docType:            DefaultDocType,
		docTypeVersion:     DefaultDocTypeVersion,
		docTypeReadVersion: DefaultDocTypeReadVersion,
	}
}

// Option configures a Document at Open time.
type Option = options.Option[*config]

// WithDocType sets the expected/written DocType string.
func WithDocType(docType string) Option {
	return options.NoError(func(c *config) { c.docType = docType })
}

// WithDocTypeVersion sets the expected/written DocTypeVersion.
func WithDocTypeVersion(v uint64) Option {
	return options.NoError(func(c *config) { c.docTypeVersion = v })
}

// WithDocTypeReadVersion sets the expected/written DocTypeReadVersion.
func WithDocTypeReadVersion(v uint64) Option {
	return options.NoError(func(c *config) { c.docTypeReadVersion = v })
}

// Document is an opened EBML document: a Header plus a Segment, bound to
// a caller-supplied seekable stream.
type Document struct {
	cfg     *config
	Header  *header.Header
	Segment *segment.Segment
}

// Open runs the prologue (spec.md §4.11) against s, which the caller
// positions at the document's origin offset before calling Open.
//
//  1. If s is empty at that position, Open writes a fresh Header (using
//     cfg's DocType triple) and an opened-but-unfinalised Segment.
//  2. Otherwise Open scans forward for the first 0x1A byte, requires it to
//     begin the EBML Header ID, parses the header, and validates its
//     DocType/DocTypeReadVersion/EBMLReadVersion against cfg.
func Open(s stream.RWS, opts ...Option) (*Document, error) {
	cfg := defaultConfig()
	if err := options.Apply(cfg, opts...); err != nil {
		return nil, err
	}

	origin, err := stream.Tell(s)
	if err != nil {
		return nil, err
	}

	end, err := s.Seek(0, 2) // io.SeekEnd
	if err != nil {
		return nil, errs.ErrReadError
	}

	if end <= origin {
		return writeFresh(s, cfg)
	}

	if _, err := s.Seek(origin, 0); err != nil {
		return nil, errs.ErrReadError
	}

	return openExisting(s, cfg)
}

func writeFresh(s stream.RWS, cfg *config) (*Document, error) {
	h := header.New(cfg.docType, cfg.docTypeVersion, cfg.docTypeReadVersion)
	if _, err := h.Write(s); err != nil {
		return nil, err
	}

	seg := segment.New()
	if _, err := seg.StartWrite(s); err != nil {
		return nil, err
	}

	seg.SeekHead = seek.New()

	return &Document{cfg: cfg, Header: h, Segment: seg}, nil
}

// Finalise writes the Segment's Metaseek (if it has any entries) and
// back-patches the Segment's size field. Callers add Cluster/Info/Tracks
// content directly to w between Open and Finalise; this library doesn't
// model those collaborator elements (spec.md §1).
func (d *Document) Finalise(w stream.RWS) error {
	if d.Segment.SeekHead != nil && d.Segment.SeekHead.Size() > 0 {
		if _, err := d.Segment.SeekHead.Write(w); err != nil {
			return err
		}
	}

	return d.Segment.Finalise(w)
}

func openExisting(s stream.RWS, cfg *config) (*Document, error) {
	if err := scanToEBMLID(s); err != nil {
		return nil, err
	}

	id, _, err := ids.Read(s)
	if err != nil {
		return nil, err
	}
	if id != ids.EBMLID {
		return nil, errs.ErrNotEBML
	}

	h := header.New("", 0, 0)
	if _, err := h.Read(s); err != nil {
		return nil, err
	}

	if err := validateHeader(h, cfg); err != nil {
		return nil, err
	}

	seg := segment.New()
	segID, _, err := ids.Read(s)
	if err != nil {
		return nil, err
	}
	if segID != ids.Segment {
		return nil, errs.ErrNotEBML
	}
	if _, err := seg.Read(s); err != nil {
		return nil, err
	}

	if err := seg.WalkChildren(s); err != nil {
		return nil, err
	}

	return &Document{cfg: cfg, Header: h, Segment: seg}, nil
}

// scanToEBMLID advances s past arbitrary leading bytes up to the first
// 0x1A byte (the first byte of every well-formed EBML ID), per spec.md
// §4.11's "Document ... optionally preceded by arbitrary bytes up to the
// first 0x1A".
func scanToEBMLID(s stream.RWS) error {
	var b [1]byte

	for {
		n, err := s.Read(b[:])
		if n == 0 || err != nil {
			return errs.ErrNotEBML
		}

		if b[0] == 0x1A {
			if _, err := s.Seek(-1, 1); err != nil {
				return errs.ErrReadError
			}

			return nil
		}
	}
}

func validateHeader(h *header.Header, cfg *config) error {
	if h.EBMLReadVersion.Value() > MaxEBMLReadVersion {
		return errs.ErrBadReadVersion
	}

	if h.DocTypeReadVersion.Value() > cfg.docTypeReadVersion {
		return errs.ErrBadDocReadVersion
	}

	if h.DocType.Value() == cfg.docType {
		return nil
	}

	// The sentinel names the flavour the caller configured and didn't
	// get, not the flavour actually found on disk.
	switch cfg.docType {
	case "jonen":
		return errs.ErrNotJonen
	case "tawara":
		return errs.ErrNotTawara
	case "tide":
		return errs.ErrNotTide
	default:
		return errs.ErrUnknownDocType
	}
}
