// Converts between text and its binary representation, 8 big-endian bits
// per character, one bit per byte.
package bitpack

import (
	"strings"

	"golang.org/x/xerrors"
)

var (
	ErrCharRange = xerrors.New("character outside single-byte range")
	ErrBitLength = xerrors.New("bit count not a multiple of 8")
)

// TextToBits unpacks each character of s into 8 bits, most significant
// first. Characters above 0xFF have no single-byte representation and are
// rejected.
func TextToBits(s string) ([]byte, error) {
	bits := make([]byte, 0, len(s)<<3)
	for _, r := range s {
		if r > 0xFF {
			return nil, xerrors.Errorf("bitpack: %q: %w", r, ErrCharRange)
		}
		for bit := 7; bit >= 0; bit-- {
			bits = append(bits, byte(r>>uint(bit))&1)
		}
	}

	return bits, nil
}

// BitsToText packs bits back into characters, 8 bits per character, most
// significant first.
func BitsToText(bits []byte) (string, error) {
	if len(bits)%8 != 0 {
		return "", xerrors.Errorf("bitpack: %d bits: %w", len(bits), ErrBitLength)
	}

	var sb strings.Builder
	for idx := 0; idx < len(bits); idx += 8 {
		var b byte
		for _, bit := range bits[idx : idx+8] {
			b = b<<1 | bit
		}
		sb.WriteRune(rune(b))
	}

	return sb.String(), nil
}
