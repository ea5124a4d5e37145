/*
Package codec implements the binary encodings used by the ledger.

Messages and transactions are encoded using the protobuf wire format. There
is no code generation step, each type writes its fields using an Encoder
and reads them back using Decode. Fields with a zero value are not written,
the same way proto3 does it.

Records stored at derived addresses use a fixed binary layout instead, see
RecordWriter and RecordReader.
*/
package codec

import (
	"github.com/gogo/protobuf/proto"
	"github.com/iov-one/bazaar"
	"github.com/iov-one/bazaar/errors"
)

// Encoder writes protobuf encoded fields. The first error encountered is
// kept and returned by Marshal, all writes after it are ignored.
type Encoder struct {
	buf *proto.Buffer
	err error
}

// NewEncoder returns an encoder with an empty buffer.
func NewEncoder() *Encoder {
	return &Encoder{buf: proto.NewBuffer(nil)}
}

func (e *Encoder) key(field int, wire int) {
	if e.err != nil {
		return
	}
	if field < 1 {
		e.err = errors.Wrapf(errors.ErrHuman, "invalid field number %d", field)
		return
	}
	e.err = e.buf.EncodeVarint(uint64(field)<<3 | uint64(wire))
}

// Uint64 writes a varint field.
func (e *Encoder) Uint64(field int, v uint64) *Encoder {
	if v == 0 {
		return e
	}
	e.key(field, proto.WireVarint)
	if e.err == nil {
		e.err = e.buf.EncodeVarint(v)
	}
	return e
}

// Int64 writes a varint field. Negative values take ten bytes.
func (e *Encoder) Int64(field int, v int64) *Encoder {
	return e.Uint64(field, uint64(v))
}

// Bytes writes a length delimited field.
func (e *Encoder) Bytes(field int, b []byte) *Encoder {
	if len(b) == 0 {
		return e
	}
	e.key(field, proto.WireBytes)
	if e.err == nil {
		e.err = e.buf.EncodeRawBytes(b)
	}
	return e
}

// String writes a length delimited field.
func (e *Encoder) String(field int, s string) *Encoder {
	return e.Bytes(field, []byte(s))
}

// Message writes a length delimited field holding a serialized message.
// Nil messages are skipped.
func (e *Encoder) Message(field int, m bazaar.Marshaller) *Encoder {
	if m == nil || e.err != nil {
		return e
	}
	bz, err := m.Marshal()
	if err != nil {
		e.err = errors.Wrapf(err, "field %d", field)
		return e
	}
	return e.Bytes(field, bz)
}

// Marshal returns the encoded message.
func (e *Encoder) Marshal() ([]byte, error) {
	if e.err != nil {
		return nil, e.err
	}
	return e.buf.Bytes(), nil
}

// Value is a single field read from an encoded message.
type Value struct {
	wire int
	num  uint64
	raw  []byte
}

// Uint64 returns the value of a varint field.
func (v Value) Uint64() (uint64, error) {
	if v.wire != proto.WireVarint {
		return 0, errors.Wrapf(errors.ErrInput, "want varint, got wire type %d", v.wire)
	}
	return v.num, nil
}

// Int64 returns the value of a varint field.
func (v Value) Int64() (int64, error) {
	n, err := v.Uint64()
	return int64(n), err
}

// Bytes returns a copy of a length delimited field content.
func (v Value) Bytes() ([]byte, error) {
	if v.wire != proto.WireBytes {
		return nil, errors.Wrapf(errors.ErrInput, "want bytes, got wire type %d", v.wire)
	}
	return append([]byte(nil), v.raw...), nil
}

// String returns a length delimited field content.
func (v Value) String() (string, error) {
	if v.wire != proto.WireBytes {
		return "", errors.Wrapf(errors.ErrInput, "want bytes, got wire type %d", v.wire)
	}
	return string(v.raw), nil
}

// Message unmarshals a length delimited field into given destination.
func (v Value) Message(dest bazaar.Persistent) error {
	if v.wire != proto.WireBytes {
		return errors.Wrapf(errors.ErrInput, "want message, got wire type %d", v.wire)
	}
	return dest.Unmarshal(v.raw)
}

// Decode calls fn with every field of the encoded message, in the order they
// were written. Fields of fixed size wire types are passed as raw bytes and
// can be ignored by fn.
func Decode(bz []byte, fn func(field int, v Value) error) error {
	for len(bz) > 0 {
		key, n := proto.DecodeVarint(bz)
		if n == 0 {
			return errors.Wrap(errors.ErrInput, "cannot decode field key")
		}
		bz = bz[n:]
		field, wire := int(key>>3), int(key&0x7)
		if field < 1 {
			return errors.Wrapf(errors.ErrInput, "invalid field number %d", field)
		}

		v := Value{wire: wire}
		switch wire {
		case proto.WireVarint:
			num, n := proto.DecodeVarint(bz)
			if n == 0 {
				return errors.Wrapf(errors.ErrInput, "field %d: cannot decode varint", field)
			}
			v.num = num
			bz = bz[n:]
		case proto.WireBytes:
			size, n := proto.DecodeVarint(bz)
			if n == 0 || uint64(len(bz)-n) < size {
				return errors.Wrapf(errors.ErrInput, "field %d: invalid length", field)
			}
			v.raw = bz[n : n+int(size)]
			bz = bz[n+int(size):]
		case proto.WireFixed64:
			if len(bz) < 8 {
				return errors.Wrapf(errors.ErrInput, "field %d: truncated", field)
			}
			v.raw = bz[:8]
			bz = bz[8:]
		case proto.WireFixed32:
			if len(bz) < 4 {
				return errors.Wrapf(errors.ErrInput, "field %d: truncated", field)
			}
			v.raw = bz[:4]
			bz = bz[4:]
		default:
			return errors.Wrapf(errors.ErrInput, "field %d: unsupported wire type %d", field, wire)
		}

		if err := fn(field, v); err != nil {
			return errors.Wrapf(err, "field %d", field)
		}
	}
	return nil
}
