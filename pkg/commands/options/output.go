package options

import (
	"encoding/json"
	"errors"
	"fmt"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"tableflip.dev/diary/pkg/printers"
)

// OutputOptions
type OutputOptions struct {
	Output string
}

func AddOutputArg(cmd *cobra.Command, po *OutputOptions) {
	cmd.Flags().StringVarP(&po.Output, "output", "o", "",
		"Output format. One of 'json' or 'yaml'.")
}

// Format validates the --output flag.
func (o *OutputOptions) Format() (printers.Format, error) {
	return printers.ParseFormat(o.Output)
}

// ErrReported matches errors that were already written to the output.
var ErrReported = errors.New("error already reported")

type reportedError struct {
	err error
}

func (e *reportedError) Error() string { return e.err.Error() }

func (e *reportedError) Unwrap() error { return e.err }

func (e *reportedError) Is(target error) bool { return target == ErrReported }

// HandleError prints err as a JSON object when JSON output was requested so
// scripts always get parseable output. The returned error still carries err
// and matches ErrReported.
func (o *OutputOptions) HandleError(err error) error {
	if o.Output == string(printers.FormatJSON) && err != nil {
		out := map[string]string{
			"error": err.Error(),
		}
		b, jerr := json.Marshal(out)
		if jerr != nil {
			return jerr
		}
		_, _ = fmt.Fprintln(color.Output, string(b))
		return &reportedError{err: err}
	}
	return err
}
