package cli

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"

	"github.com/dustin/go-humanize"

	"memfootprint/footprint"
)

// Exit codes for CLI commands.
const (
	ExitSuccess      = 0 // Successful execution
	ExitFailure      = 1 // A document could not be measured
	ExitCommandError = 2 // Command error (invalid flags, unreadable files or config)
)

// ExitError represents an error with a specific exit code.
type ExitError struct {
	Code    int    // Exit code (use ExitFailure or ExitCommandError)
	Message string // Error message
	Err     error  // Underlying error (optional)
}

func (e *ExitError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *ExitError) Unwrap() error {
	return e.Err
}

// NewExitError creates a new ExitError with the given code and message.
func NewExitError(code int, message string) *ExitError {
	return &ExitError{Code: code, Message: message}
}

// WrapExitError wraps an existing error with an exit code.
func WrapExitError(code int, message string, err error) *ExitError {
	return &ExitError{Code: code, Message: message, Err: err}
}

// GetExitCode extracts the exit code from an error.
// Returns ExitFailure (1) if the error is not an ExitError.
func GetExitCode(err error) int {
	if err == nil {
		return ExitSuccess
	}

	var exitErr *ExitError
	if errors.As(err, &exitErr) {
		return exitErr.Code
	}
	return ExitFailure
}

// Measurement is the footprint of one decoded document.
type Measurement struct {
	Source   string      `json:"source"`
	Document int         `json:"document"`
	Bytes    uint64      `json:"bytes"`
	Types    []TypeEntry `json:"types,omitempty"`

	report *footprint.Report
}

// TypeEntry is one row of a breakdown.
type TypeEntry struct {
	Type  string `json:"type"`
	Bytes uint64 `json:"bytes"`
	Count uint64 `json:"count"`
}

func newMeasurement(source string, doc int, r *footprint.Report, breakdown bool) Measurement {
	m := Measurement{Source: source, Document: doc, Bytes: r.Total}
	if !breakdown {
		return m
	}

	m.report = r
	for _, t := range r.Types() {
		ts := r.ByType[t]
		m.Types = append(m.Types, TypeEntry{Type: t.String(), Bytes: ts.Total, Count: ts.Count})
	}

	return m
}

func (m Measurement) label() string {
	if m.Document == 0 {
		return m.Source
	}
	return fmt.Sprintf("%s#%d", m.Source, m.Document)
}

// OutputFormatter handles JSON vs text output for CLI commands.
type OutputFormatter struct {
	Format string
	Writer io.Writer
}

// Measurements writes ms in the configured format.
func (f *OutputFormatter) Measurements(ms []Measurement) error {
	if f.Format == "json" {
		enc := json.NewEncoder(f.Writer)
		enc.SetIndent("", "  ")
		return enc.Encode(ms)
	}

	for _, m := range ms {
		if m.report != nil {
			if _, err := fmt.Fprintf(f.Writer, "%s: %s", m.label(), m.report); err != nil {
				return err
			}
			continue
		}

		_, err := fmt.Fprintf(f.Writer, "%s: total %s (%d bytes)\n", m.label(), humanize.IBytes(m.Bytes), m.Bytes)
		if err != nil {
			return err
		}
	}

	return nil
}
