package domain

// Pipeline defaults. Configuration files and CLI flags override them.
const (
	// DefaultWorkers processes pairs strictly one after another.
	DefaultWorkers = 1

	// MaxWorkers bounds the worker pool regardless of configuration.
	MaxWorkers = 256

	// DefaultOutputFormat writes one score per line.
	DefaultOutputFormat = OutputFormatText

	// DefaultErrorMode aborts the batch on the first failing pair so that
	// no partial output file is ever produced.
	DefaultErrorMode = ErrorModeFail

	// DefaultSkipBlankLines ignores empty lines in pair lists, including the
	// trailing newline most editors add.
	DefaultSkipBlankLines = true

	// FailedScoreText is printed in text output for pairs recorded as errors.
	FailedScoreText = "nan"
)

// Log rotation defaults for --log-file.
const (
	DefaultLogLevel      = "warn"
	DefaultLogMaxSizeMB  = 10
	DefaultLogMaxBackups = 3
	DefaultLogMaxAgeDays = 28
)
