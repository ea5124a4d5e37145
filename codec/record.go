package codec

import (
	"crypto/sha256"
	"encoding/binary"

	"github.com/iov-one/bazaar/errors"
)

// TagSize is the size of the record type tag every record starts with.
const TagSize = 8

// RecordTag returns the type tag of records with given name. It is the
// prefix of the sha256 hash of "account:<name>".
func RecordTag(name string) []byte {
	sum := sha256.Sum256([]byte("account:" + name))
	return sum[:TagSize]
}

// RecordWriter serializes a record into a fixed layout. Integers are
// little endian.
type RecordWriter struct {
	name string
	size int
	buf  []byte
	err  error
}

// NewRecordWriter returns a writer for a record of given name and total
// size, tag included. The tag is already written.
func NewRecordWriter(name string, size int) *RecordWriter {
	buf := make([]byte, 0, size)
	return &RecordWriter{
		name: name,
		size: size,
		buf:  append(buf, RecordTag(name)...),
	}
}

// Fixed writes b that must be exactly n bytes long.
func (w *RecordWriter) Fixed(b []byte, n int) *RecordWriter {
	if w.err != nil {
		return w
	}
	if len(b) != n {
		w.err = errors.Wrapf(errors.ErrInput, "%s: want %d bytes, got %d", w.name, n, len(b))
		return w
	}
	w.buf = append(w.buf, b...)
	return w
}

// Uint64 writes v in 8 bytes.
func (w *RecordWriter) Uint64(v uint64) *RecordWriter {
	var b [8]byte
	binary.LittleEndian.PutUint64(b[:], v)
	return w.Fixed(b[:], 8)
}

// Int64 writes v in 8 bytes.
func (w *RecordWriter) Int64(v int64) *RecordWriter {
	return w.Uint64(uint64(v))
}

// Byte writes a single byte.
func (w *RecordWriter) Byte(b byte) *RecordWriter {
	return w.Fixed([]byte{b}, 1)
}

// Finish returns the serialized record.
func (w *RecordWriter) Finish() ([]byte, error) {
	if w.err != nil {
		return nil, w.err
	}
	if len(w.buf) != w.size {
		return nil, errors.Wrapf(errors.ErrHuman, "%s: want %d bytes, wrote %d", w.name, w.size, len(w.buf))
	}
	return w.buf, nil
}

// RecordReader reads a record serialized by RecordWriter.
type RecordReader struct {
	bz []byte
}

// NewRecordReader validates the size and the tag of given record.
func NewRecordReader(name string, size int, bz []byte) (*RecordReader, error) {
	if len(bz) != size {
		return nil, errors.Wrapf(errors.ErrInput, "%s: want %d bytes, got %d", name, size, len(bz))
	}
	tag := RecordTag(name)
	for i := range tag {
		if bz[i] != tag[i] {
			return nil, errors.Wrapf(errors.ErrType, "not a %s record", name)
		}
	}
	return &RecordReader{bz: bz[TagSize:]}, nil
}

// Fixed reads a copy of next n bytes. Size was validated when the reader
// was created, so reading past the end is a programming error.
func (r *RecordReader) Fixed(n int) []byte {
	b := append([]byte(nil), r.bz[:n]...)
	r.bz = r.bz[n:]
	return b
}

// Uint64 reads 8 bytes.
func (r *RecordReader) Uint64() uint64 {
	return binary.LittleEndian.Uint64(r.Fixed(8))
}

// Int64 reads 8 bytes.
func (r *RecordReader) Int64() int64 {
	return int64(r.Uint64())
}

// Byte reads a single byte.
func (r *RecordReader) Byte() byte {
	return r.Fixed(1)[0]
}
