package domain

import (
	"context"
	"io"
)

// OutputFormat represents the supported output formats
type OutputFormat string

const (
	OutputFormatText  OutputFormat = "text"
	OutputFormatJSON  OutputFormat = "json"
	OutputFormatYAML  OutputFormat = "yaml"
	OutputFormatCSV   OutputFormat = "csv"
	OutputFormatTable OutputFormat = "table"
)

// SupportedOutputFormats lists every format accepted by the formatter.
var SupportedOutputFormats = []OutputFormat{
	OutputFormatText,
	OutputFormatJSON,
	OutputFormatYAML,
	OutputFormatCSV,
	OutputFormatTable,
}

// ErrorMode controls how the batch comparator reacts to a failing pair.
type ErrorMode string

const (
	// ErrorModeFail aborts the whole batch on the first failing pair.
	ErrorModeFail ErrorMode = "fail"
	// ErrorModeRecord stores the failure on the pair and keeps going.
	ErrorModeRecord ErrorMode = "record"
)

// CanonicalizeOptions toggles the individual rewrites applied to a syntax tree.
type CanonicalizeOptions struct {
	NormalizeFunctions   bool `json:"normalize_functions" yaml:"normalize_functions"`
	NormalizeIdentifiers bool `json:"normalize_identifiers" yaml:"normalize_identifiers"`
	StripDocstrings      bool `json:"strip_docstrings" yaml:"strip_docstrings"`
}

// DefaultCanonicalizeOptions enables every rewrite.
func DefaultCanonicalizeOptions() CanonicalizeOptions {
	return CanonicalizeOptions{
		NormalizeFunctions:   true,
		NormalizeIdentifiers: true,
		StripDocstrings:      true,
	}
}

// FilePair is one line of a pair list.
type FilePair struct {
	Line  int    `json:"line" yaml:"line"`
	PathA string `json:"path_a" yaml:"path_a"`
	PathB string `json:"path_b" yaml:"path_b"`
}

// PairListOptions controls how a pair list file is read.
type PairListOptions struct {
	SkipBlankLines  bool
	RelativeToList  bool
	IncludePatterns []string
	ExcludePatterns []string
}

// CompareRequest represents a request for a batch comparison
type CompareRequest struct {
	// Input: either a list file or explicit pairs
	ListPath string
	Pairs    []FilePair

	// Output configuration
	OutputFormat OutputFormat
	OutputWriter io.Writer
	OutputPath   string
	ShowProgress bool

	// Pipeline options
	Canonicalize CanonicalizeOptions
	Workers      int
	ErrorMode    ErrorMode

	// Pair list options
	PairList PairListOptions

	// Configuration
	ConfigPath string

	// ExplicitFlags records CLI flags the user set so merging keeps them
	// over configuration file values.
	ExplicitFlags map[string]bool
}

// PairResult is the outcome of comparing one pair.
type PairResult struct {
	Index    int     `json:"index" yaml:"index"`
	Line     int     `json:"line" yaml:"line"`
	PathA    string  `json:"path_a" yaml:"path_a"`
	PathB    string  `json:"path_b" yaml:"path_b"`
	Score    float64 `json:"score" yaml:"score"`
	Distance int     `json:"distance" yaml:"distance"`
	LengthA  int     `json:"length_a" yaml:"length_a"`
	LengthB  int     `json:"length_b" yaml:"length_b"`
	Error    string  `json:"error,omitempty" yaml:"error,omitempty"`
}

// Failed reports whether the pair was recorded as an error.
func (r PairResult) Failed() bool {
	return r.Error != ""
}

// CompareSummary aggregates a batch.
type CompareSummary struct {
	TotalPairs int `json:"total_pairs" yaml:"total_pairs"`
	Compared   int `json:"compared" yaml:"compared"`
	Failed     int `json:"failed" yaml:"failed"`
}

// CompareResponse represents the result of a batch comparison
type CompareResponse struct {
	Results     []PairResult   `json:"results" yaml:"results"`
	Summary     CompareSummary `json:"summary" yaml:"summary"`
	GeneratedAt string         `json:"generated_at" yaml:"generated_at"`
	Version     string         `json:"version" yaml:"version"`
}

// CanonicalForm is the canonical rendering of a single file.
type CanonicalForm struct {
	Path      string `json:"path" yaml:"path"`
	Canonical string `json:"canonical" yaml:"canonical"`
	Length    int    `json:"length" yaml:"length"`
	Functions int    `json:"functions" yaml:"functions"`
	Names     int    `json:"names" yaml:"names"`
	Nodes     int    `json:"nodes" yaml:"nodes"`
	Depth     int    `json:"depth" yaml:"depth"`
}

// CompareService runs the canonicalize-and-score pipeline.
type CompareService interface {
	// Compare scores every pair of the request in input order
	Compare(ctx context.Context, req CompareRequest) (*CompareResponse, error)

	// ComparePair scores a single pair of files
	ComparePair(ctx context.Context, pair FilePair, opts CanonicalizeOptions) (PairResult, error)

	// Canonicalize returns the canonical form of one file
	Canonicalize(ctx context.Context, path string, opts CanonicalizeOptions) (*CanonicalForm, error)
}

// PairListReader parses a pair list file.
type PairListReader interface {
	// ReadPairs reads and validates every line before returning
	ReadPairs(path string, opts PairListOptions) ([]FilePair, error)

	// ParsePairs validates pairs from an in-memory list
	ParsePairs(source string, r io.Reader, opts PairListOptions) ([]FilePair, error)
}

// SourceReader reads source files for the comparator.
type SourceReader interface {
	// ReadFile reads the content of a file
	ReadFile(path string) ([]byte, error)
}

// CompareOutputFormatter renders a compare response.
type CompareOutputFormatter interface {
	// Format formats the response according to the specified format
	Format(response *CompareResponse, format OutputFormat) (string, error)

	// Write writes the formatted output to the writer
	Write(response *CompareResponse, format OutputFormat, writer io.Writer) error
}

// CompareConfigurationLoader defines the interface for loading configuration
type CompareConfigurationLoader interface {
	// LoadConfig loads configuration from the specified path
	LoadConfig(path string) (*CompareRequest, error)

	// LoadDefaultConfig discovers a project configuration or returns defaults
	LoadDefaultConfig() *CompareRequest

	// MergeConfig merges CLI flags with configuration file
	MergeConfig(base *CompareRequest, override *CompareRequest) *CompareRequest
}

// CanonicalizeRequest asks for the canonical form of one or more files
type CanonicalizeRequest struct {
	Paths        []string
	Options      CanonicalizeOptions
	OutputFormat OutputFormat
	OutputWriter io.Writer
	OutputPath   string
	ConfigPath   string

	ExplicitFlags map[string]bool
}

// DiffRequest asks for a line diff of the canonical forms of two files
type DiffRequest struct {
	PathA        string
	PathB        string
	Options      CanonicalizeOptions
	Context      int
	OutputWriter io.Writer
	ConfigPath   string

	ExplicitFlags map[string]bool
}

// DiffResult is the canonical diff of two files together with their score
type DiffResult struct {
	Pair PairResult `json:"pair" yaml:"pair"`
	Diff string     `json:"diff" yaml:"diff"`
}
