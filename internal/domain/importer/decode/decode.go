// Package decode normalizes uploaded file bytes into UTF-8 text.
// Accounting package exports arrive in UTF-8, UTF-16LE or UTF-16BE,
// usually with a byte-order mark, sometimes with stray bytes before the
// actual payload.
package decode

import (
	"bytes"
	"log/slog"
	"strings"

	"golang.org/x/text/encoding/unicode"

	"github.com/FACorreiaa/tally-bridge/internal/domain/common"
)

var (
	bomUTF8    = []byte{0xEF, 0xBB, 0xBF}
	bomUTF16LE = []byte{0xFF, 0xFE}
	bomUTF16BE = []byte{0xFE, 0xFF}
)

// Text decodes raw upload bytes into a trimmed UTF-8 string.
// The encoding is chosen from the byte-order mark; no BOM means UTF-8.
// An empty result is a FatalInputError.
func Text(data []byte) (string, error) {
	var (
		text string
		err  error
	)

	switch {
	case bytes.HasPrefix(data, bomUTF8):
		text = string(data[len(bomUTF8):])
	case bytes.HasPrefix(data, bomUTF16LE):
		text, err = decodeUTF16(data, unicode.LittleEndian)
	case bytes.HasPrefix(data, bomUTF16BE):
		text, err = decodeUTF16(data, unicode.BigEndian)
	default:
		text = string(data)
	}
	if err != nil {
		return "", common.NewFatalInput("empty or corrupted file")
	}

	text = strings.TrimSpace(text)
	if text == "" {
		return "", common.NewFatalInput("empty or corrupted file")
	}
	return text, nil
}

// XMLText decodes like Text and additionally drops any bytes preceding
// the first '<', which some exports prepend (printer control characters,
// stray shell output). The dropped count is logged.
func XMLText(data []byte, logger *slog.Logger) (string, error) {
	text, err := Text(data)
	if err != nil {
		return "", err
	}

	idx := strings.IndexByte(text, '<')
	if idx > 0 {
		if logger == nil {
			logger = slog.Default()
		}
		logger.Warn("dropped leading bytes before XML start", "count", idx)
		text = text[idx:]
	}

	if text == "" {
		return "", common.NewFatalInput("empty or corrupted file")
	}
	return text, nil
}

// decodeUTF16 converts a UTF-16 buffer (BOM included) to a UTF-8 string.
func decodeUTF16(data []byte, endianness unicode.Endianness) (string, error) {
	decoder := unicode.UTF16(endianness, unicode.ExpectBOM).NewDecoder()
	decoded, err := decoder.Bytes(data)
	if err != nil {
		return "", err
	}
	return string(decoded), nil
}
