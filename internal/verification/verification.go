// Package verification verifies that the display after a run matches an expected fingerprint.
package verification

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/retroenv/retrogolib/log"
	"github.com/spaolacci/murmur3"
)

// ErrChecksumMismatch is returned when the display fingerprint differs from the expected one.
var ErrChecksumMismatch = errors.New("display checksum mismatch")

// Checksum returns the 64 bit murmur3 hash of the pixels packed into
// bytes, most significant bit first, in row major order.
func Checksum(pixels []bool) uint64 {
	packed := make([]byte, (len(pixels)+7)/8)
	for i, lit := range pixels {
		if lit {
			packed[i/8] |= 0x80 >> (i % 8)
		}
	}
	return murmur3.Sum64(packed)
}

// Fingerprint returns the checksum of the pixels as 16 digit hexadecimal string.
func Fingerprint(pixels []bool) string {
	return fmt.Sprintf("%016x", Checksum(pixels))
}

// VerifyDisplay verifies that the fingerprint of the pixels matches the
// expected hexadecimal value. The comparison ignores case and an optional
// 0x prefix.
func VerifyDisplay(logger *log.Logger, expected string, pixels []bool) error {
	s := strings.TrimPrefix(strings.ToLower(strings.TrimSpace(expected)), "0x")
	want, err := strconv.ParseUint(s, 16, 64)
	if err != nil {
		return fmt.Errorf("parsing expected checksum '%s': %w", expected, err)
	}

	got := Checksum(pixels)
	if got == want {
		return nil
	}

	var lit int
	for _, pixel := range pixels {
		if pixel {
			lit++
		}
	}
	logger.Error("Display mismatch",
		log.String("expected", fmt.Sprintf("%016x", want)),
		log.String("got", fmt.Sprintf("%016x", got)),
		log.Int("lit", lit))

	return fmt.Errorf("%w: expected %016x but got %016x", ErrChecksumMismatch, want, got)
}
