package service

import (
	"bytes"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/Mikefromtheback/plagiat-check/domain"
)

// StdoutPath selects the provided writer instead of a file
const StdoutPath = "-"

// FileOutputWriter writes reports to files or provided writers.
type FileOutputWriter struct {
	status io.Writer // where to print status messages (typically stderr)
}

// NewFileOutputWriter creates a new FileOutputWriter. A nil status writer
// silences the "report generated" message.
func NewFileOutputWriter(status io.Writer) *FileOutputWriter {
	if status == nil {
		status = io.Discard
	}
	return &FileOutputWriter{status: status}
}

// Write implements domain.ReportWriter. The report is rendered in memory
// first; a file is only created once writeFunc succeeded, and it appears at
// outputPath through a rename so readers never see a partial report.
func (w *FileOutputWriter) Write(writer io.Writer, outputPath string, format domain.OutputFormat, writeFunc func(io.Writer) error) error {
	if outputPath == "" || outputPath == StdoutPath {
		if writer == nil {
			writer = os.Stdout
		}
		if err := writeFunc(writer); err != nil {
			return wrapOutputError(err)
		}
		return nil
	}

	var buf bytes.Buffer
	if err := writeFunc(&buf); err != nil {
		return wrapOutputError(err)
	}

	if err := writeFileAtomic(outputPath, buf.Bytes()); err != nil {
		return err
	}

	absPath, err := filepath.Abs(outputPath)
	if err != nil {
		absPath = outputPath
	}
	formatName := strings.ToUpper(string(format))
	if formatName == "" {
		formatName = strings.ToUpper(string(domain.OutputFormatText))
	}
	fmt.Fprintf(w.status, "%s report generated: %s\n", formatName, absPath)

	return nil
}

// writeFileAtomic writes data to a temporary file next to path and renames
// it into place.
func writeFileAtomic(path string, data []byte) error {
	dir := filepath.Dir(path)
	tmp, err := os.CreateTemp(dir, "."+filepath.Base(path)+".*.tmp")
	if err != nil {
		return domain.NewOutputError(fmt.Sprintf("failed to create output file: %s", path), err)
	}
	tmpName := tmp.Name()

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return domain.NewOutputError(fmt.Sprintf("failed to write output file: %s", path), err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpName)
		return domain.NewOutputError(fmt.Sprintf("failed to write output file: %s", path), err)
	}
	if err := os.Chmod(tmpName, 0o644); err != nil {
		os.Remove(tmpName)
		return domain.NewOutputError(fmt.Sprintf("failed to set permissions on %s", path), err)
	}
	if err := os.Rename(tmpName, path); err != nil {
		os.Remove(tmpName)
		return domain.NewOutputError(fmt.Sprintf("failed to move output into place: %s", path), err)
	}
	return nil
}

func wrapOutputError(err error) error {
	if domain.ErrorCode(err) != "" {
		return err
	}
	return domain.NewOutputError("failed to write output", err)
}
