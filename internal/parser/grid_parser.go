package parser

import (
	"bufio"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/user/classex_explore_go/internal/stream"
)

// ParseWavenumberGrid reads a whitespace-delimited numeric table and returns
// its first column. Blank lines and lines starting with '#' are skipped.
// Compressed files (.zst, .lz4) are decompressed on the fly.
func ParseWavenumberGrid(path string) ([]float64, error) {
	rc, err := stream.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open wavenumber file: %w", err)
	}
	defer rc.Close()

	ks, err := ReadFirstColumn(rc)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return ks, nil
}

// ReadFirstColumn parses the first column of a whitespace-delimited table.
func ReadFirstColumn(r io.Reader) ([]float64, error) {
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)

	var values []float64
	lineNo := 0
	for scanner.Scan() {
		lineNo++
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		fields := strings.Fields(line)
		val, err := strconv.ParseFloat(fields[0], 64)
		if err != nil {
			return nil, fmt.Errorf("line %d: could not convert '%s' to a number: %w", lineNo, fields[0], err)
		}
		values = append(values, val)
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("failed to read table: %w", err)
	}
	if len(values) == 0 {
		return nil, fmt.Errorf("no numeric rows found")
	}
	return values, nil
}
