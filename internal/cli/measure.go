package cli

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"memfootprint/internal/common"
)

const stdinName = "-"

// MeasureOptions holds flags for the measure command.
type MeasureOptions struct {
	Breakdown bool
}

// NewMeasureCommand creates the measure command.
func NewMeasureCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &MeasureOptions{}

	cmd := &cobra.Command{
		Use:   "measure [file...]",
		Short: "Measure YAML or JSON documents",
		Long: `Decode every document of the given YAML or JSON files and print its estimated
in-memory footprint. Without files, or with "-", standard input is read.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runMeasure(rootOpts, opts, args, cmd)
		},
	}

	cmd.Flags().BoolVarP(&opts.Breakdown, "breakdown", "b", false, "break the total down by type")

	return cmd
}

func runMeasure(rootOpts *RootOptions, opts *MeasureOptions, args []string, cmd *cobra.Command) error {
	est, logger, err := rootOpts.estimator(cmd)
	if err != nil {
		return err
	}

	if common.IsEmpty(args) {
		args = []string{stdinName}
	}

	var ms []Measurement
	for _, source := range args {
		data, err := readSource(source, cmd.InOrStdin())
		if err != nil {
			return WrapExitError(ExitCommandError, "read "+source, err)
		}

		docs, err := decodeDocuments(data)
		if err != nil {
			return WrapExitError(ExitCommandError, "decode "+source, err)
		}
		logger.Debug("decoded documents", "source", source, "documents", len(docs))

		for i, doc := range docs {
			r, err := est.Report(doc)
			if err != nil {
				return WrapExitError(ExitFailure, fmt.Sprintf("measure %s#%d", source, i), err)
			}

			ms = append(ms, newMeasurement(source, i, r, opts.Breakdown))
		}
	}

	formatter := &OutputFormatter{Format: rootOpts.Format, Writer: cmd.OutOrStdout()}

	return formatter.Measurements(ms)
}

func readSource(source string, stdin io.Reader) ([]byte, error) {
	if source == stdinName {
		return io.ReadAll(stdin)
	}

	return os.ReadFile(source)
}

// decodeDocuments decodes every document of a YAML stream; JSON is a YAML subset.
func decodeDocuments(data []byte) ([]any, error) {
	dec := yaml.NewDecoder(bytes.NewReader(data))

	var docs []any
	for {
		var doc any

		err := dec.Decode(&doc)
		if errors.Is(err, io.EOF) {
			return docs, nil
		}
		if err != nil {
			return nil, err
		}

		docs = append(docs, doc)
	}
}
