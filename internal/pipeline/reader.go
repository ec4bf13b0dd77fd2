package pipeline

import (
	"bufio"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"golang.org/x/text/encoding/charmap"
)

// Format identifies a supported input file layout.
type Format string

const (
	// FormatNOAACycles is the NOAA cycle file layout: timestamp rows
	// alternating with report rows.
	FormatNOAACycles Format = "noaa-metar-cycles"
	// FormatPlain is one raw report per line.
	FormatPlain Format = "plain"
)

// ParseFormat validates a format name from the command line.
func ParseFormat(s string) (Format, error) {
	switch Format(s) {
	case FormatNOAACycles, FormatPlain:
		return Format(s), nil
	}
	return "", fmt.Errorf("unknown file format %q", s)
}

// RawReport couples one raw report with the anchor timestamp derived from
// its source file, when the format provides one.
type RawReport struct {
	Text   string
	Anchor *time.Time
}

const cycleTimestampLayout = "2006/01/02 15:04"

// ReadCycleFile parses a NOAA cycle file: Windows-1252 encoded rows where a
// "YYYY/MM/DD HH:MM" timestamp row precedes each report row. Rows before the
// first timestamp row are station-list garbage and are skipped.
func ReadCycleFile(path string) ([]RawReport, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening %s: %w", path, err)
	}
	defer f.Close()

	scanner := bufio.NewScanner(charmap.Windows1252.NewDecoder().Reader(f))
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)

	var rows []string
	inHeader := true
	for scanner.Scan() {
		row := strings.TrimSpace(scanner.Text())
		if inHeader {
			if isCycleTimestamp(row) {
				rows = append(rows, row)
				inHeader = false
			}
			continue
		}
		if row != "" {
			rows = append(rows, row)
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("reading %s: %w", path, err)
	}

	var reports []RawReport
	for i := 0; i+1 < len(rows); i += 2 {
		ts, err := time.Parse(cycleTimestampLayout, rows[i])
		if err != nil {
			return nil, fmt.Errorf("bad timestamp row %q in %s: %w", rows[i], path, err)
		}
		anchor := ts.UTC()
		reports = append(reports, RawReport{Text: rows[i+1], Anchor: &anchor})
	}
	return reports, nil
}

// isCycleTimestamp reports whether a row, with its separators removed, is a
// plain number shaped like "YYYY/MM/DD HH:MM".
func isCycleTimestamp(row string) bool {
	digits := strings.NewReplacer("/", "", " ", "", ":", "").Replace(row)
	if len(digits) != 12 {
		return false
	}
	_, err := strconv.ParseUint(digits, 10, 64)
	if err != nil {
		return false
	}
	_, err = time.Parse(cycleTimestampLayout, row)
	return err == nil
}

// ReadPlainFile reads one raw report per non-empty line; every report shares
// the caller-provided anchor.
func ReadPlainFile(path string, anchor *time.Time) ([]RawReport, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening %s: %w", path, err)
	}
	defer f.Close()

	scanner := bufio.NewScanner(f)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)

	var reports []RawReport
	for scanner.Scan() {
		row := strings.TrimSpace(scanner.Text())
		if row == "" {
			continue
		}
		reports = append(reports, RawReport{Text: row, Anchor: anchor})
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("reading %s: %w", path, err)
	}
	return reports, nil
}
