package runner

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"unicode"
	"unicode/utf8"
)

var (
	// DefaultMaxProgramSize is 1MiB.
	DefaultMaxProgramSize = 1 << 20
	// EnvMaxProgramSize is the environment variable to override the default
	EnvMaxProgramSize = "UNABS_MAX_PROGRAM_SIZE"
)

var (
	ErrProgramTooLarge = errors.New("program exceeds maximum allowed size")
	ErrInvalidUTF8     = errors.New("program contains invalid UTF-8 sequences")
)

// SanitizeProgram checks program source received from an untrusted client.
// It enforces the size limit, validates UTF-8 and drops a leading byte order
// mark. Control characters are kept, since `.` may print any character.
func SanitizeProgram(src string) (string, error) {
	limit := MaxProgramSize()
	if len(src) > limit {
		return "", fmt.Errorf("%w: size=%d limit=%d", ErrProgramTooLarge, len(src), limit)
	}
	if !utf8.ValidString(src) {
		return "", ErrInvalidUTF8
	}
	return strings.TrimPrefix(src, "\ufeff"), nil
}

// SanitizeCommand normalizes one line typed at the stepper prompt: surrounding
// space is trimmed and control characters are stripped.
func SanitizeCommand(line string) (string, error) {
	if !utf8.ValidString(line) {
		return "", ErrInvalidUTF8
	}
	line = strings.TrimSpace(line)
	return strings.Map(func(r rune) rune {
		if unicode.IsControl(r) {
			return -1
		}
		return r
	}, line), nil
}

// MaxProgramSize returns the configured limit in bytes.
func MaxProgramSize() int {
	if val := os.Getenv(EnvMaxProgramSize); val != "" {
		if size, err := strconv.Atoi(val); err == nil && size > 0 {
			return size
		}
	}
	return DefaultMaxProgramSize
}
