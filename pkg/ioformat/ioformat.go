// Package ioformat reads raw sample streams into the uint16 symbols the
// battery operates on. It supports the two input shapes described by
// the external interface: a raw little-endian binary integer stream
// (sample width inferred from a filename suffix or given explicitly)
// and a one-value-per-line ASCII stream.
package ioformat

import (
	"bufio"
	"encoding/binary"
	"fmt"
	"io"
	"math"
	"strconv"
	"strings"

	"github.com/larkspur-labs/minentropy/pkg/battery"
)

// Width identifies the raw sample encoding.
type Width int

const (
	// WidthUnknown means the width could not be inferred and must be
	// supplied explicitly.
	WidthUnknown Width = iota
	WidthU8
	WidthU16
	WidthU32
	WidthU64
	// WidthSD is a signed 32-bit ("signed doubleword") sample.
	WidthSD
)

// WidthFromSuffix infers a sample width from a filename's suffix, per
// the -u8.bin / -u16.bin / -u32.bin / -u64.bin / -sd.bin convention.
func WidthFromSuffix(name string) Width {
	switch {
	case strings.HasSuffix(name, "-u8.bin"):
		return WidthU8
	case strings.HasSuffix(name, "-u16.bin"):
		return WidthU16
	case strings.HasSuffix(name, "-u32.bin"):
		return WidthU32
	case strings.HasSuffix(name, "-u64.bin"):
		return WidthU64
	case strings.HasSuffix(name, "-sd.bin"):
		return WidthSD
	default:
		return WidthUnknown
	}
}

// BitWidth returns the number of bits a raw sample occupies under w.
func (w Width) BitWidth() int {
	switch w {
	case WidthU8:
		return 8
	case WidthU16:
		return 16
	case WidthU32, WidthSD:
		return 32
	case WidthU64:
		return 64
	default:
		return 0
	}
}

// ReadBinary decodes a raw little-endian integer stream of the given
// width into uint16 symbols. Values that do not fit in 16 bits are
// rejected, since symbols are held as uint16, so a sample source with a
// larger effective range must be pre-reduced upstream. The dictionary-tree
// predictors support at most 256 distinct symbols after translation
// (pkg/dictionary's maxAlphabet); this reader does not check that limit.
func ReadBinary(r io.Reader, w Width) ([]uint16, error) {
	if w == WidthUnknown {
		return nil, fmt.Errorf("%w: unknown sample width, pass --bits or use a recognized filename suffix", battery.ErrInputMalformed)
	}

	br := bufio.NewReader(r)
	var out []uint16

	for {
		var raw uint64
		switch w {
		case WidthU8:
			b, err := br.ReadByte()
			if err == io.EOF {
				return out, nil
			}
			if err != nil {
				return nil, fmt.Errorf("%w: %v", battery.ErrInputMalformed, err)
			}
			raw = uint64(b)
		case WidthU16:
			var buf [2]byte
			if err := readFull(br, buf[:]); err != nil {
				return finishOrError(out, err)
			}
			raw = uint64(binary.LittleEndian.Uint16(buf[:]))
		case WidthU32:
			var buf [4]byte
			if err := readFull(br, buf[:]); err != nil {
				return finishOrError(out, err)
			}
			raw = uint64(binary.LittleEndian.Uint32(buf[:]))
		case WidthSD:
			var buf [4]byte
			if err := readFull(br, buf[:]); err != nil {
				return finishOrError(out, err)
			}
			signed := int32(binary.LittleEndian.Uint32(buf[:]))
			raw = uint64(uint32(signed))
		case WidthU64:
			var buf [8]byte
			if err := readFull(br, buf[:]); err != nil {
				return finishOrError(out, err)
			}
			raw = binary.LittleEndian.Uint64(buf[:])
		}

		if raw > math.MaxUint16 {
			return nil, fmt.Errorf("%w: sample %d exceeds the 16-bit symbol range this battery supports", battery.ErrUnsupported, raw)
		}
		out = append(out, uint16(raw))
	}
}

func readFull(r io.Reader, buf []byte) error {
	_, err := io.ReadFull(r, buf)
	return err
}

func finishOrError(out []uint16, err error) ([]uint16, error) {
	if err == io.EOF {
		return out, nil
	}
	if err == io.ErrUnexpectedEOF {
		return nil, fmt.Errorf("%w: truncated sample at end of stream", battery.ErrInputMalformed)
	}
	return nil, fmt.Errorf("%w: %v", battery.ErrInputMalformed, err)
}

// ReadASCII decodes one integer or floating-point value per line.
// Floating-point values are truncated toward zero; values outside the
// 64-bit unsigned range, or that do not fit in 16 bits, are rejected.
func ReadASCII(r io.Reader) ([]uint16, error) {
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)

	var out []uint16
	lineNo := 0
	for scanner.Scan() {
		lineNo++
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}
		v, err := parseLine(line)
		if err != nil {
			return nil, fmt.Errorf("%w: line %d: %v", battery.ErrInputMalformed, lineNo, err)
		}
		if v > math.MaxUint16 {
			return nil, fmt.Errorf("%w: line %d: value %d exceeds the 16-bit symbol range this battery supports", battery.ErrUnsupported, lineNo, v)
		}
		out = append(out, uint16(v))
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("%w: %v", battery.ErrInputMalformed, err)
	}
	return out, nil
}

func parseLine(line string) (uint64, error) {
	if u, err := strconv.ParseUint(line, 10, 64); err == nil {
		return u, nil
	}
	f, err := strconv.ParseFloat(line, 64)
	if err != nil {
		return 0, fmt.Errorf("not an integer or float: %q", line)
	}
	if f < 0 || f > math.MaxUint64 {
		return 0, fmt.Errorf("value %g outside the 64-bit unsigned range", f)
	}
	return uint64(f), nil
}
