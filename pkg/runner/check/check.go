package check

import (
	"context"
	"errors"
	"fmt"
	"io"

	"tableflip.dev/diary/pkg/app"
	"tableflip.dev/diary/pkg/printers"
)

// ErrProblems is returned when the chain is inconsistent so the command exits
// non-zero.
var ErrProblems = errors.New("chain has problems")

// Check reports inconsistencies in the page chain.
type Check struct {
	Service *app.Service
	Output  printers.Format
	Out     io.Writer
}

func (n *Check) Do(ctx context.Context) error {
	report, err := n.Service.Check(ctx)
	if err != nil {
		return err
	}
	if n.Output != printers.FormatText {
		if err := printers.Encode(n.Out, n.Output, report); err != nil {
			return err
		}
	} else {
		pp := printers.PrettyPrint{Out: n.Out}
		pp.Problems(report)
	}
	if !report.OK() {
		return fmt.Errorf("%w: %d found", ErrProblems, len(report.Problems))
	}
	return nil
}
