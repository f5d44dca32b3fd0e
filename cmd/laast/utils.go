package main

import (
	"fmt"
	"io"

	"github.com/ludo-technologies/laast/service"
)

// printRecoveryHints writes the category of err and what to try next
func printRecoveryHints(w io.Writer, err error) {
	categorizer := service.NewErrorCategorizer()
	categorized := categorizer.Categorize(err)
	if categorized == nil {
		return
	}

	fmt.Fprintf(w, "%s: %s\n", categorized.Category, categorized.Message)
	for _, s := range categorizer.GetRecoverySuggestions(categorized.Category) {
		fmt.Fprintf(w, "  • %s\n", s)
	}
}
