// Package processor holds the steps run on a checked sample log: showing
// the report and writing the cleaned workbook.
package processor

import (
	"strings"

	"github.com/umeldt/darwinsheet/internal/check"
)

// Processor does something with the result of a check.
type Processor interface {
	Apply(result *check.Result) error
}

// Run applies each processor in turn, stopping at the first error.
func Run(result *check.Result, processors ...Processor) error {
	for _, p := range processors {
		if err := p.Apply(result); err != nil {
			return err
		}
	}
	return nil
}

func spaces(count int) string {
	return strings.Repeat(" ", count)
}
