package cli

import (
	"fmt"
	"log/slog"
	"slices"

	"github.com/spf13/cobra"

	"memfootprint/footprint"
	"memfootprint/internal/config"
	"memfootprint/primitive"
)

// RootOptions holds global flags for all commands.
type RootOptions struct {
	Verbose bool
	Format  string // "json" | "text"
	Config  string // path to a YAML width table
}

// ValidFormats defines the allowed output formats.
var ValidFormats = []string{"text", "json"}

// NewRootCommand creates the root command for the footprint CLI.
func NewRootCommand() *cobra.Command {
	opts := &RootOptions{}

	cmd := &cobra.Command{
		Use:   "footprint",
		Short: "Estimate the in-memory footprint of documents",
		Long: `Estimate the in-memory byte footprint of decoded YAML and JSON documents.

Values are walked through reflection: primitives cost a fixed width, text a
header plus two bytes per UTF-16 code unit, containers a header plus their
elements. Shared values are charged once.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if !slices.Contains(ValidFormats, opts.Format) {
				return NewExitError(ExitCommandError,
					fmt.Sprintf("invalid format %q: must be one of %v", opts.Format, ValidFormats))
			}
			return nil
		},
	}

	cmd.PersistentFlags().BoolVarP(&opts.Verbose, "verbose", "v", false, "verbose output")
	cmd.PersistentFlags().StringVar(&opts.Format, "format", "text", "output format (json|text)")
	cmd.PersistentFlags().StringVarP(&opts.Config, "config", "c", "", "YAML file overriding the width table")

	cmd.AddCommand(NewMeasureCommand(opts))
	cmd.AddCommand(NewWidthsCommand(opts))

	return cmd
}

// widths loads the width table selected by the global flags.
func (o *RootOptions) widths() (primitive.Widths, error) {
	if o.Config == "" {
		return primitive.DefaultWidths(), nil
	}

	f, err := config.LoadFile(o.Config)
	if err != nil {
		return primitive.Widths{}, WrapExitError(ExitCommandError, "load config", err)
	}

	w, err := f.Table()
	if err != nil {
		return primitive.Widths{}, WrapExitError(ExitCommandError, o.Config, err)
	}

	return w, nil
}

// estimator builds the estimator for one command run, logging to cmd's stderr.
func (o *RootOptions) estimator(cmd *cobra.Command) (*footprint.Estimator, *slog.Logger, error) {
	w, err := o.widths()
	if err != nil {
		return nil, nil, err
	}

	level := slog.LevelInfo
	if o.Verbose {
		level = slog.LevelDebug
	}
	logger := slog.New(slog.NewTextHandler(cmd.ErrOrStderr(), &slog.HandlerOptions{Level: level}))

	return footprint.New(footprint.WithWidths(w), footprint.WithLogger(logger)), logger, nil
}
