package compiler

import (
	"bytes"
	"fmt"
	"os"
	"strconv"
	"unicode/utf8"

	"github.com/aretw0/crema/pkg/domain"
)

var (
	// DefaultMaxInputSize bounds a source document (1 MiB).
	DefaultMaxInputSize = 1 << 20
	// EnvMaxInputSize is the environment variable to override the default.
	EnvMaxInputSize = "CREMA_MAX_INPUT_SIZE"
)

var utf8BOM = []byte{0xEF, 0xBB, 0xBF}

// Sanitize checks raw input before decoding: it enforces the size limit,
// strips a leading UTF-8 byte order mark and rejects invalid UTF-8.
func Sanitize(data []byte) ([]byte, error) {
	// We explicitly reject rather than truncate to keep results deterministic.
	if limit := maxInputSize(); len(data) > limit {
		return nil, &domain.InputShapeError{
			Reason: fmt.Sprintf("document too large: size=%d limit=%d", len(data), limit),
		}
	}

	// Profiles exported from some editors start with a BOM.
	data = bytes.TrimPrefix(data, utf8BOM)

	if !utf8.Valid(data) {
		return nil, &domain.InputShapeError{Reason: "document contains invalid UTF-8 sequences"}
	}
	return data, nil
}

func maxInputSize() int {
	if val := os.Getenv(EnvMaxInputSize); val != "" {
		if size, err := strconv.Atoi(val); err == nil && size > 0 {
			return size
		}
	}
	return DefaultMaxInputSize
}
