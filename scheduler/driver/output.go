package driver

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/twitter/procsched/scheduler/domain"
)

// OutputFormat selects how batch result lines are terminated.
type OutputFormat int

const (
	// Lines separated by "\r\n", the last line followed by a single space
	// and no line break.
	FormatCRLF OutputFormat = iota

	// Every line followed by "\n".
	FormatUnix
)

func (f OutputFormat) String() string {
	switch f {
	case FormatCRLF:
		return "crlf"
	case FormatUnix:
		return "unix"
	}
	return fmt.Sprintf("OutputFormat(%d)", int(f))
}

func ParseOutputFormat(s string) (OutputFormat, error) {
	switch strings.ToLower(s) {
	case "", "crlf":
		return FormatCRLF, nil
	case "unix":
		return FormatUnix, nil
	}
	return 0, fmt.Errorf("unknown output format %q, expected crlf or unix", s)
}

// FormatResults renders one batch: results space separated, NoPid as -1.
func FormatResults(results []domain.Pid) string {
	parts := make([]string, len(results))
	for i, pid := range results {
		parts[i] = strconv.Itoa(int(pid))
	}
	return strings.Join(parts, " ")
}

// WriteResults writes one line per batch in the given format.
// Nothing is written when there are no batches.
func WriteResults(w io.Writer, batches [][]domain.Pid, format OutputFormat) error {
	var b strings.Builder
	for i, results := range batches {
		b.WriteString(FormatResults(results))
		switch {
		case format == FormatUnix:
			b.WriteString("\n")
		case i == len(batches)-1:
			b.WriteString(" ")
		default:
			b.WriteString("\r\n")
		}
	}
	_, err := io.WriteString(w, b.String())
	return err
}
