package service

import (
	"context"
	"errors"
	"strings"

	"github.com/Mikefromtheback/plagiat-check/domain"
)

// ErrorCategorizerImpl implements the ErrorCategorizer interface
type ErrorCategorizerImpl struct {
	codes    map[string]domain.ErrorCategory
	patterns map[domain.ErrorCategory][]string
}

// NewErrorCategorizer creates a new error categorizer
func NewErrorCategorizer() domain.ErrorCategorizer {
	return &ErrorCategorizerImpl{
		codes:    initializeErrorCodes(),
		patterns: initializeErrorPatterns(),
	}
}

// initializeErrorCodes maps domain error codes to categories
func initializeErrorCodes() map[string]domain.ErrorCategory {
	return map[string]domain.ErrorCategory{
		domain.ErrCodeInvalidInput:      domain.ErrorCategoryInput,
		domain.ErrCodeInputFormatError:  domain.ErrorCategoryInput,
		domain.ErrCodeFileNotFound:      domain.ErrorCategorySource,
		domain.ErrCodeSyntaxError:       domain.ErrorCategorySource,
		domain.ErrCodeStructuralError:   domain.ErrorCategoryProcessing,
		domain.ErrCodeDivisionError:     domain.ErrorCategoryProcessing,
		domain.ErrCodeConfigError:       domain.ErrorCategoryConfig,
		domain.ErrCodeOutputError:       domain.ErrorCategoryOutput,
		domain.ErrCodeUnsupportedFormat: domain.ErrorCategoryOutput,
	}
}

// initializeErrorPatterns initializes error pattern mappings for errors
// that carry no domain code
func initializeErrorPatterns() map[domain.ErrorCategory][]string {
	return map[domain.ErrorCategory][]string{
		domain.ErrorCategoryConfig: {
			"config",
			"configuration",
			"toml",
		},
		domain.ErrorCategoryInput: {
			"invalid input",
			"file not found",
			"no such file",
			"permission denied",
			"accepts",
			"unknown flag",
		},
		domain.ErrorCategoryOutput: {
			"write",
			"output",
		},
	}
}

// categoryOrder fixes the order patterns are tried in
var categoryOrder = []domain.ErrorCategory{
	domain.ErrorCategoryConfig,
	domain.ErrorCategoryInput,
	domain.ErrorCategoryOutput,
}

// Categorize determines the category of an error
func (ec *ErrorCategorizerImpl) Categorize(err error) *domain.CategorizedError {
	if err == nil {
		return nil
	}

	if errors.Is(err, context.DeadlineExceeded) || errors.Is(err, context.Canceled) {
		return &domain.CategorizedError{
			Category: domain.ErrorCategoryTimeout,
			Message:  ec.getCategoryMessage(domain.ErrorCategoryTimeout),
			Original: err,
		}
	}

	if category, ok := ec.codes[domain.ErrorCode(err)]; ok {
		return &domain.CategorizedError{
			Category: category,
			Message:  ec.getCategoryMessage(category),
			Original: err,
		}
	}

	errMsg := strings.ToLower(err.Error())
	for _, category := range categoryOrder {
		if containsAnyPattern(errMsg, ec.patterns[category]) {
			return &domain.CategorizedError{
				Category: category,
				Message:  ec.getCategoryMessage(category),
				Original: err,
			}
		}
	}

	// Default to unknown category
	return &domain.CategorizedError{
		Category: domain.ErrorCategoryUnknown,
		Message:  err.Error(),
		Original: err,
	}
}

// GetRecoverySuggestions returns recovery suggestions for an error category
func (ec *ErrorCategorizerImpl) GetRecoverySuggestions(category domain.ErrorCategory) []string {
	suggestions := map[domain.ErrorCategory][]string{
		domain.ErrorCategoryInput: {
			"Every line of the list must hold exactly two paths separated by whitespace",
			"Check that the listed files exist and are readable",
			"Use --relative-to-list if paths are relative to the list file",
		},
		domain.ErrorCategorySource: {
			"Check that both files of the pair exist",
			"Try: python -m py_compile on the file to check for syntax errors",
			"Use --on-error record to score the remaining pairs",
		},
		domain.ErrorCategoryConfig: {
			"Verify configuration file format and values",
			"Try: plagiat init to generate a valid config file",
			"Check for syntax errors in .plagiat.toml or pyproject.toml",
		},
		domain.ErrorCategoryTimeout: {
			"The run was cancelled before all pairs were compared",
			"Split the pair list into smaller batches",
		},
		domain.ErrorCategoryOutput: {
			"Ensure the output directory exists and is writable",
			"Use --format text, json, yaml, csv or table",
		},
		domain.ErrorCategoryProcessing: {
			"A function definition could not be canonicalized",
			"Run plagiat canonicalize on the file to isolate the problem",
		},
		domain.ErrorCategoryUnknown: {
			"Run with --verbose for detailed error information",
			"Report the issue if it persists",
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
		domain.ErrorCategoryInput:      "Invalid pair list or input path",
		domain.ErrorCategorySource:     "A source file could not be read or parsed",
		domain.ErrorCategoryConfig:     "Configuration file or settings error",
		domain.ErrorCategoryTimeout:    "Comparison was cancelled",
		domain.ErrorCategoryOutput:     "Failed to generate or write output",
		domain.ErrorCategoryProcessing: "Error while canonicalizing source",
		domain.ErrorCategoryUnknown:    "An unexpected error occurred",
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
