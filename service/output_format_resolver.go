package service

import (
	"github.com/ludo-technologies/laast/domain"
)

// OutputFormatResolver resolves the output format from boolean shortcut flags.
type OutputFormatResolver struct{}

func NewOutputFormatResolver() *OutputFormatResolver { return &OutputFormatResolver{} }

// Determine returns the single format whose flag is set, or fallback when
// none is. Setting more than one flag is an INVALID_INPUT error.
func (r *OutputFormatResolver) Determine(fallback domain.OutputFormat, flags map[domain.OutputFormat]bool) (domain.OutputFormat, error) {
	var selected domain.OutputFormat
	count := 0
	for format, set := range flags {
		if set {
			selected = format
			count++
		}
	}

	switch {
	case count > 1:
		return "", domain.NewValidationError("only one output format flag can be specified")
	case count == 1:
		return selected, nil
	case fallback == "":
		return domain.OutputFormatText, nil
	default:
		return fallback, nil
	}
}
