package transport

import (
	"bufio"
	"fmt"
	"io"
	"strings"

	"golang.org/x/text/encoding"
	"golang.org/x/text/encoding/htmlindex"
	"golang.org/x/text/encoding/unicode"
)

// DefaultCharset is used when no decode charset is configured.
const DefaultCharset = "utf-8"

// Charset resolves a charset name such as "utf-8", "latin1" or
// "windows-1252". An empty name selects DefaultCharset.
func Charset(name string) (encoding.Encoding, error) {
	name = strings.TrimSpace(name)
	if name == "" || strings.EqualFold(name, DefaultCharset) {
		return unicode.UTF8, nil
	}
	enc, err := htmlindex.Get(name)
	if err != nil {
		return nil, fmt.Errorf("unsupported charset %q: %w", name, err)
	}
	return enc, nil
}

// NewLineReader wraps r so that lines are decoded from charset to UTF-8.
func NewLineReader(r io.Reader, charset string) (*bufio.Reader, error) {
	enc, err := Charset(charset)
	if err != nil {
		return nil, err
	}
	return bufio.NewReader(enc.NewDecoder().Reader(r)), nil
}
