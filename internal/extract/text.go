package extract

import (
	"fmt"
	"os"
	"strings"
	"unicode/utf8"
)

// readText returns the whole file as UTF-8 text with line endings
// normalised to "\n".
func readText(path string) (string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return "", err
	}
	if !utf8.Valid(data) {
		return "", fmt.Errorf("%w: %s", ErrInvalidEncoding, path)
	}

	text := strings.ReplaceAll(string(data), "\r\n", "\n")
	return strings.ReplaceAll(text, "\r", "\n"), nil
}
