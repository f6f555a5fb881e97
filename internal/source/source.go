// Package source opens rule and source files as UTF-8 text.
package source

import (
	"bufio"
	"errors"
	"io"
	"os"
	"strings"

	"golang.org/x/text/encoding/unicode"
	"golang.org/x/text/transform"

	lexerrors "lexdfa/internal/errors"
)

// NewReader decodes r to UTF-8. A leading UTF-8 or UTF-16 byte order mark
// selects the encoding and is dropped; without one r is read as UTF-8.
func NewReader(r io.Reader) io.Reader {
	return transform.NewReader(r, unicode.BOMOverride(unicode.UTF8.NewDecoder()))
}

type file struct {
	io.Reader
	f *os.File
}

func (f *file) Close() error {
	return f.f.Close()
}

// Open opens path for decoding. Failure is reported as an IOError.
func Open(path string) (io.ReadCloser, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, lexerrors.NewIOError("open", path, err)
	}
	return &file{Reader: NewReader(f), f: f}, nil
}

// ReadLines calls fn for every line of r, numbered from 1, with the line
// terminator and a trailing carriage return removed. Lines have no length
// limit. A final line without a newline is still reported.
func ReadLines(r io.Reader, fn func(lineNo int, line string)) error {
	reader := bufio.NewReader(r)

	lineNo := 0
	for {
		line, err := reader.ReadString('\n')
		if line != "" {
			lineNo++
			line = strings.TrimSuffix(line, "\n")
			fn(lineNo, strings.TrimSuffix(line, "\r"))
		}
		if errors.Is(err, io.EOF) {
			return nil
		}
		if err != nil {
			return err
		}
	}
}
