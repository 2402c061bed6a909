package service

import (
	"path/filepath"
	"strings"

	"github.com/Mikefromtheback/plagiat-check/domain"
)

// OutputFormatResolver resolves the output format from flags and the output
// path.
type OutputFormatResolver struct{}

func NewOutputFormatResolver() *OutputFormatResolver { return &OutputFormatResolver{} }

// extensionFormats maps output file extensions to formats
var extensionFormats = map[string]domain.OutputFormat{
	".json": domain.OutputFormatJSON,
	".yaml": domain.OutputFormatYAML,
	".yml":  domain.OutputFormatYAML,
	".csv":  domain.OutputFormatCSV,
}

// Determine returns the format to use. An explicit format always wins;
// otherwise a known extension on outputPath selects the format, and
// fallback is used for everything else.
func (r *OutputFormatResolver) Determine(format string, explicit bool, outputPath string, fallback domain.OutputFormat) (domain.OutputFormat, error) {
	if explicit {
		return r.Parse(format)
	}

	if outputPath != "" && outputPath != StdoutPath {
		if f, ok := extensionFormats[strings.ToLower(filepath.Ext(outputPath))]; ok {
			return f, nil
		}
	}

	if fallback == "" {
		fallback = domain.DefaultOutputFormat
	}
	return fallback, nil
}

// Parse validates a format name
func (r *OutputFormatResolver) Parse(format string) (domain.OutputFormat, error) {
	normalized := domain.OutputFormat(strings.ToLower(strings.TrimSpace(format)))
	for _, f := range domain.SupportedOutputFormats {
		if f == normalized {
			return f, nil
		}
	}
	return "", domain.NewUnsupportedFormatError(format)
}
