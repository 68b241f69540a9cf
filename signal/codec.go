// Package signal implements the control-plane codec: encoding and decoding
// the {source, destination, control_code} triple carried on the control
// ring, either as decimal triples (abstract mode) or fixed-width bit
// strings.
//
// Author: momentics <momentics@gmail.com>
// License: Apache-2.0
package signal

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
)

var (
	// ErrFieldOutOfRange is returned when source, destination or code does
	// not fit in the codec's field width.
	ErrFieldOutOfRange = errors.New("signal: field out of range")
	// ErrMalformedWire is returned when a wire string cannot be decoded.
	ErrMalformedWire = errors.New("signal: malformed wire value")
)

// AbstractCodec encodes {source, destination, code} as a decimal triple
// ("source,destination,code"). It is used when the model runs in abstract
// mode (model.Constants.AbstractMode), where payloads carry only
// {node_id, seq} pairs and there is no real bit-level framing to model.
type AbstractCodec struct{}

func (AbstractCodec) Encode(source, destination, code int) (string, error) {
	if source < 0 || destination < 0 || code < 0 {
		return "", ErrFieldOutOfRange
	}
	return fmt.Sprintf("%d,%d,%d", source, destination, code), nil
}

func (AbstractCodec) Decode(wire string) (source, destination, code int, err error) {
	parts := strings.Split(wire, ",")
	if len(parts) != 3 {
		return 0, 0, 0, ErrMalformedWire
	}
	vals := make([]int, 3)
	for i, p := range parts {
		n, convErr := strconv.Atoi(p)
		if convErr != nil {
			return 0, 0, 0, fmt.Errorf("%w: %v", ErrMalformedWire, convErr)
		}
		vals[i] = n
	}
	return vals[0], vals[1], vals[2], nil
}

// BinaryCodec encodes {source, destination, code} as a fixed-width bit
// string, one character '0'/'1' per bit, most significant bit first:
// SourceBits + DestinationBits + CodeBits. This is the non-abstract mode
// representation used to exercise the control packet size S_c against a
// concrete wire format.
type BinaryCodec struct {
	SourceBits      int
	DestinationBits int
	CodeBits        int
}

func NewBinaryCodec(sourceBits, destinationBits, codeBits int) BinaryCodec {
	return BinaryCodec{SourceBits: sourceBits, DestinationBits: destinationBits, CodeBits: codeBits}
}

func (c BinaryCodec) Encode(source, destination, code int) (string, error) {
	sBits, err := toBits(source, c.SourceBits)
	if err != nil {
		return "", err
	}
	dBits, err := toBits(destination, c.DestinationBits)
	if err != nil {
		return "", err
	}
	cBits, err := toBits(code, c.CodeBits)
	if err != nil {
		return "", err
	}
	return sBits + dBits + cBits, nil
}

func (c BinaryCodec) Decode(wire string) (source, destination, code int, err error) {
	want := c.SourceBits + c.DestinationBits + c.CodeBits
	if len(wire) != want {
		return 0, 0, 0, fmt.Errorf("%w: expected %d bits, got %d", ErrMalformedWire, want, len(wire))
	}
	source, err = fromBits(wire[:c.SourceBits])
	if err != nil {
		return 0, 0, 0, err
	}
	destination, err = fromBits(wire[c.SourceBits : c.SourceBits+c.DestinationBits])
	if err != nil {
		return 0, 0, 0, err
	}
	code, err = fromBits(wire[c.SourceBits+c.DestinationBits:])
	if err != nil {
		return 0, 0, 0, err
	}
	return source, destination, code, nil
}

func toBits(v, width int) (string, error) {
	if v < 0 || v >= (1<<uint(width)) {
		return "", ErrFieldOutOfRange
	}
	bits := make([]byte, width)
	for i := width - 1; i >= 0; i-- {
		if v&1 == 1 {
			bits[i] = '1'
		} else {
			bits[i] = '0'
		}
		v >>= 1
	}
	return string(bits), nil
}

func fromBits(s string) (int, error) {
	v := 0
	for _, r := range s {
		v <<= 1
		switch r {
		case '1':
			v |= 1
		case '0':
		default:
			return 0, ErrMalformedWire
		}
	}
	return v, nil
}
