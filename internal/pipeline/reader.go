package pipeline

import (
	"bufio"
	"bytes"
	"fmt"
	"io"
	"os"
	"strings"
)

// Reader turns a GEDCOM file or stream into the ordered line sequence the
// pipeline consumes. Lines are delivered without terminators; a UTF-8 BOM on
// the first line is stripped.
type Reader struct {
	maxLineLen int
}

// NewReader creates a Reader. maxLineLen bounds a single input line;
// values <= 0 fall back to a 4 KiB default.
func NewReader(maxLineLen int) *Reader {
	if maxLineLen <= 0 {
		maxLineLen = 4096
	}
	return &Reader{maxLineLen: maxLineLen}
}

// ReadResult is the read file plus the raw content used for cache keying.
type ReadResult struct {
	Path    string
	Lines   []string
	Content []byte
}

// ReadFile reads and splits one file.
func (r *Reader) ReadFile(path string) (*ReadResult, error) {
	content, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", path, err)
	}

	lines, err := r.split(bytes.NewReader(content))
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", path, err)
	}

	return &ReadResult{Path: path, Lines: lines, Content: content}, nil
}

// Read splits an arbitrary stream into lines.
func (r *Reader) Read(src io.Reader) ([]string, error) {
	return r.split(src)
}

func (r *Reader) split(src io.Reader) ([]string, error) {
	scanner := bufio.NewScanner(src)
	scanner.Buffer(make([]byte, 0, 64*1024), r.maxLineLen)

	var lines []string
	for scanner.Scan() {
		line := strings.TrimSuffix(scanner.Text(), "\r")
		if len(lines) == 0 {
			line = strings.TrimPrefix(line, "\ufeff")
		}
		lines = append(lines, line)
	}
	if err := scanner.Err(); err != nil {
		if err == bufio.ErrTooLong {
			return nil, fmt.Errorf("line %d exceeds %d bytes", len(lines), r.maxLineLen)
		}
		return nil, fmt.Errorf("scan input: %w", err)
	}

	return lines, nil
}
