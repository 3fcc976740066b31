// Package args encodes and decodes the typed positional arguments a unit
// reads once at instantiation.
//
// A stream is a tag string plus a data block, in the manner of an OSC
// message: tag 'i' is a big-endian int32 and tag 'f' a big-endian IEEE-754
// float32, each occupying four data bytes.
package args

import (
	"encoding/binary"
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"
)

// Argument type tags.
const (
	TagInt32   byte = 'i'
	TagFloat32 byte = 'f'
)

var (
	// ErrEndOfStream is returned when reading past the last argument.
	ErrEndOfStream = errors.New("args: end of stream")
	// ErrTypeMismatch is returned when the next argument has a different tag.
	ErrTypeMismatch = errors.New("args: type mismatch")
	// ErrMalformed is returned for tags and data that disagree in length or
	// for an unknown tag.
	ErrMalformed = errors.New("args: malformed stream")
)

// Builder assembles an argument stream.
type Builder struct {
	tags []byte
	data []byte
}

// Int32 appends an int32 argument.
func (b *Builder) Int32(v int32) *Builder {
	b.tags = append(b.tags, TagInt32)
	b.data = binary.BigEndian.AppendUint32(b.data, uint32(v))

	return b
}

// Float32 appends a float32 argument.
func (b *Builder) Float32(v float32) *Builder {
	b.tags = append(b.tags, TagFloat32)
	b.data = binary.BigEndian.AppendUint32(b.data, math.Float32bits(v))

	return b
}

// Encode returns copies of the tag and data blocks.
func (b *Builder) Encode() (tags, data []byte) {
	return append([]byte(nil), b.tags...), append([]byte(nil), b.data...)
}

// Stream returns a reader over a copy of the built arguments.
func (b *Builder) Stream() *Stream {
	return NewStream(b.Encode())
}

// Stream reads arguments in order. It does not copy tags or data; callers
// must not retain a Stream beyond the lifetime of the blocks it reads.
type Stream struct {
	tags []byte
	data []byte
	pos  int
}

// NewStream returns a reader over tags and data.
func NewStream(tags, data []byte) *Stream {
	return &Stream{tags: tags, data: data}
}

// Len returns the number of unread arguments.
func (s *Stream) Len() int {
	if s == nil {
		return 0
	}

	return len(s.tags) - s.pos
}

// AtEnd reports whether every argument has been read.
func (s *Stream) AtEnd() bool {
	return s.Len() == 0
}

// Peek returns the tag of the next argument.
func (s *Stream) Peek() (byte, error) {
	if s.AtEnd() {
		return 0, ErrEndOfStream
	}

	return s.tags[s.pos], nil
}

func (s *Stream) next(tag byte) (uint32, error) {
	got, err := s.Peek()
	if err != nil {
		return 0, err
	}

	if got != tag {
		return 0, fmt.Errorf("%w: argument %d is %q, want %q", ErrTypeMismatch, s.pos, got, tag)
	}

	off := 4 * s.pos
	if off+4 > len(s.data) {
		return 0, fmt.Errorf("%w: data ends at byte %d", ErrMalformed, len(s.data))
	}

	s.pos++

	return binary.BigEndian.Uint32(s.data[off:]), nil
}

// Int32 reads the next argument as an int32.
func (s *Stream) Int32() (int32, error) {
	v, err := s.next(TagInt32)

	return int32(v), err
}

// Float32 reads the next argument as a float32.
func (s *Stream) Float32() (float32, error) {
	v, err := s.next(TagFloat32)

	return math.Float32frombits(v), err
}

// Number reads the next argument as a float64, accepting either tag.
func (s *Stream) Number() (float64, error) {
	tag, err := s.Peek()
	if err != nil {
		return 0, err
	}

	if tag == TagInt32 {
		v, err := s.Int32()

		return float64(v), err
	}

	v, err := s.Float32()

	return float64(v), err
}

// Parse builds a stream from "tag:value" fields such as "i:512" or "f:0.5".
func Parse(fields []string) (*Stream, error) {
	var b Builder

	for _, field := range fields {
		tag, value, ok := strings.Cut(strings.TrimSpace(field), ":")
		if !ok {
			return nil, fmt.Errorf("%w: %q lacks a tag prefix", ErrMalformed, field)
		}

		switch tag {
		case string(TagInt32):
			v, err := strconv.ParseInt(value, 10, 32)
			if err != nil {
				return nil, fmt.Errorf("args: %q: %w", field, err)
			}

			b.Int32(int32(v))
		case string(TagFloat32):
			v, err := strconv.ParseFloat(value, 32)
			if err != nil {
				return nil, fmt.Errorf("args: %q: %w", field, err)
			}

			b.Float32(float32(v))
		default:
			return nil, fmt.Errorf("%w: unknown tag %q", ErrMalformed, tag)
		}
	}

	return b.Stream(), nil
}

// String renders the unread arguments in Parse form.
func (s *Stream) String() string {
	if s == nil {
		return ""
	}

	parts := make([]string, 0, s.Len())

	for i := s.pos; i < len(s.tags); i++ {
		off := 4 * i
		if off+4 > len(s.data) {
			parts = append(parts, string(s.tags[i])+":?")
			continue
		}

		raw := binary.BigEndian.Uint32(s.data[off:])

		switch s.tags[i] {
		case TagInt32:
			parts = append(parts, "i:"+strconv.FormatInt(int64(int32(raw)), 10))
		case TagFloat32:
			parts = append(parts, "f:"+strconv.FormatFloat(float64(math.Float32frombits(raw)), 'g', -1, 32))
		default:
			parts = append(parts, string(s.tags[i])+":?")
		}
	}

	return strings.Join(parts, " ")
}
