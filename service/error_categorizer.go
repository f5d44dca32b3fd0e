package service

import (
	"context"
	"errors"
	"strings"

	"github.com/ludo-technologies/laast/domain"
)

// ErrorCategorizerImpl implements the ErrorCategorizer interface
type ErrorCategorizerImpl struct {
	codes    map[string]domain.ErrorCategory
	patterns []categoryPatterns
}

type categoryPatterns struct {
	category domain.ErrorCategory
	patterns []string
}

// NewErrorCategorizer creates a new error categorizer
func NewErrorCategorizer() domain.ErrorCategorizer {
	return &ErrorCategorizerImpl{
		codes:    initializeErrorCodes(),
		patterns: initializeErrorPatterns(),
	}
}

func initializeErrorCodes() map[string]domain.ErrorCategory {
	return map[string]domain.ErrorCategory{
		domain.ErrCodeInvalidInput:          domain.ErrorCategoryInput,
		domain.ErrCodeBatchFatal:            domain.ErrorCategoryInput,
		domain.ErrCodeUnrecognizedExtension: domain.ErrorCategoryInput,
		domain.ErrCodeInsufficientInput:     domain.ErrorCategoryInput,
		domain.ErrCodeConfigError:           domain.ErrorCategoryConfig,
		domain.ErrCodeOutputError:           domain.ErrorCategoryOutput,
		domain.ErrCodeUnsupportedFormat:     domain.ErrorCategoryOutput,
		domain.ErrCodeParseError:            domain.ErrorCategoryProcessing,
		domain.ErrCodeNormalizeError:        domain.ErrorCategoryProcessing,
		domain.ErrCodeComputationFatal:      domain.ErrorCategoryProcessing,
		domain.ErrCodeEntryFailure:          domain.ErrorCategoryProcessing,
	}
}

// initializeErrorPatterns covers errors raised outside the domain layer,
// such as cobra argument errors
func initializeErrorPatterns() []categoryPatterns {
	return []categoryPatterns{
		{domain.ErrorCategoryTimeout, []string{"timeout", "deadline", "context canceled"}},
		{domain.ErrorCategoryConfig, []string{"config", "toml"}},
		{domain.ErrorCategoryOutput, []string{"output", "format", "write"}},
		{domain.ErrorCategoryInput, []string{"no such file", "directory", "permission denied", "arg"}},
		{domain.ErrorCategoryProcessing, []string{"parse", "syntax"}},
	}
}

// Categorize determines the category of an error. Cancellation and
// deadlines win over the domain code of the error that carries them.
func (ec *ErrorCategorizerImpl) Categorize(err error) *domain.CategorizedError {
	if err == nil {
		return nil
	}

	category := domain.ErrorCategoryUnknown
	switch {
	case errors.Is(err, context.DeadlineExceeded), errors.Is(err, context.Canceled):
		category = domain.ErrorCategoryTimeout
	default:
		var de domain.DomainError
		if errors.As(err, &de) {
			if c, ok := ec.codes[de.Code]; ok {
				category = c
				break
			}
		}
		errMsg := strings.ToLower(err.Error())
		for _, p := range ec.patterns {
			if containsAnyPattern(errMsg, p.patterns) {
				category = p.category
				break
			}
		}
	}

	message := err.Error()
	if category != domain.ErrorCategoryUnknown {
		message = ec.getCategoryMessage(category)
	}
	return &domain.CategorizedError{
		Category: category,
		Message:  message,
		Original: err,
	}
}

// GetRecoverySuggestions returns recovery suggestions for an error category
func (ec *ErrorCategorizerImpl) GetRecoverySuggestions(category domain.ErrorCategory) []string {
	suggestions := map[domain.ErrorCategory][]string{
		domain.ErrorCategoryInput: {
			"Check that the corpus directory exists and is readable",
			"A corpus needs at least two files in a supported language",
			"Try: laast compare <dir> --verbose to see why entries were dropped",
		},
		domain.ErrorCategoryConfig: {
			"Verify the values in .laast.toml",
			"Try: laast init --force to regenerate a valid config file",
		},
		domain.ErrorCategoryTimeout: {
			"Raise --parse-timeout for unusually large files",
			"Exclude generated sources with --exclude",
		},
		domain.ErrorCategoryOutput: {
			"Use one of --format text, json or yaml",
			"Check that the --output location is writable",
		},
		domain.ErrorCategoryProcessing: {
			"Some files may have syntax errors; try --allow-partial",
			"Inspect a single file with: laast tree <file>",
		},
		domain.ErrorCategoryUnknown: {
			"Run with --verbose for detailed error information",
		},
	}

	if sug, ok := suggestions[category]; ok {
		return sug
	}
	return []string{"Check the error message for more details"}
}

// getCategoryMessage returns a user-friendly message for an error category
func (ec *ErrorCategorizerImpl) getCategoryMessage(category domain.ErrorCategory) string {
	messages := map[domain.ErrorCategory]string{
		domain.ErrorCategoryInput:      "Failed to read the corpus",
		domain.ErrorCategoryConfig:     "Configuration file or settings error",
		domain.ErrorCategoryTimeout:    "Run cancelled or timed out",
		domain.ErrorCategoryOutput:     "Failed to generate or write output",
		domain.ErrorCategoryProcessing: "Error while building or comparing trees",
	}

	if msg, ok := messages[category]; ok {
		return msg
	}
	return "An error occurred"
}

// containsAnyPattern checks if a string contains any of the given patterns
func containsAnyPattern(str string, patterns []string) bool {
	for _, pattern := range patterns {
		if strings.Contains(str, pattern) {
			return true
		}
	}
	return false
}
