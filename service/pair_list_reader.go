package service

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/bmatcuk/doublestar/v4"

	"github.com/Mikefromtheback/plagiat-check/domain"
)

// maxListLineBytes bounds a single line of a pair list
const maxListLineBytes = 1 << 20

// PairListReaderImpl implements the PairListReader interface
type PairListReaderImpl struct{}

// NewPairListReader creates a new pair list reader
func NewPairListReader() *PairListReaderImpl {
	return &PairListReaderImpl{}
}

// ReadPairs opens the list file at path and parses it. Relative entries are
// resolved against the list's directory when opts.RelativeToList is set.
func (r *PairListReaderImpl) ReadPairs(path string, opts domain.PairListOptions) ([]domain.FilePair, error) {
	file, err := os.Open(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, domain.NewFileNotFoundError(path, err)
		}
		return nil, domain.NewInvalidInputError(fmt.Sprintf("cannot open pair list: %s", path), err)
	}
	defer file.Close()

	return r.ParsePairs(path, file, opts)
}

// ParsePairs reads every line of in before returning, so a malformed line
// anywhere in the list fails the call without any pair being compared.
// source names the list in error messages.
func (r *PairListReaderImpl) ParsePairs(source string, in io.Reader, opts domain.PairListOptions) ([]domain.FilePair, error) {
	if source == "" {
		source = "<input>"
	}

	baseDir := ""
	if opts.RelativeToList && source != "-" && source != "<input>" {
		baseDir = filepath.Dir(source)
	}

	scanner := bufio.NewScanner(in)
	scanner.Buffer(make([]byte, 0, 64*1024), maxListLineBytes)

	var pairs []domain.FilePair
	lineNo := 0
	for scanner.Scan() {
		lineNo++
		fields := strings.Fields(scanner.Text())

		if len(fields) == 0 && opts.SkipBlankLines {
			continue
		}
		if len(fields) != 2 {
			return nil, domain.NewInputFormatError(source, lineNo,
				fmt.Sprintf("expected 2 whitespace-separated paths, found %d", len(fields)))
		}

		pair := domain.FilePair{
			Line:  lineNo,
			PathA: resolvePath(baseDir, fields[0]),
			PathB: resolvePath(baseDir, fields[1]),
		}
		for _, p := range []string{pair.PathA, pair.PathB} {
			if err := checkPatterns(p, opts.IncludePatterns, opts.ExcludePatterns); err != nil {
				return nil, domain.NewInputFormatError(source, lineNo, err.Error())
			}
		}
		pairs = append(pairs, pair)
	}

	if err := scanner.Err(); err != nil {
		return nil, domain.NewInputFormatError(source, lineNo+1, fmt.Sprintf("cannot read line: %v", err))
	}

	return pairs, nil
}

func resolvePath(baseDir, path string) string {
	if baseDir == "" || filepath.IsAbs(path) {
		return path
	}
	return filepath.Join(baseDir, path)
}

// checkPatterns rejects a path that matches an exclude pattern or, when
// include patterns are given, matches none of them. Patterns are tried
// against the slash-separated path and its base name.
func checkPatterns(path string, includePatterns, excludePatterns []string) error {
	for _, pattern := range excludePatterns {
		matched, err := matchPath(pattern, path)
		if err != nil {
			return err
		}
		if matched {
			return fmt.Errorf("path %q is excluded by pattern %q", path, pattern)
		}
	}

	if len(includePatterns) == 0 {
		return nil
	}
	for _, pattern := range includePatterns {
		matched, err := matchPath(pattern, path)
		if err != nil {
			return err
		}
		if matched {
			return nil
		}
	}
	return fmt.Errorf("path %q matches no include pattern", path)
}

func matchPath(pattern, path string) (bool, error) {
	slashed := filepath.ToSlash(path)
	matched, err := doublestar.Match(pattern, slashed)
	if err != nil {
		return false, fmt.Errorf("invalid pattern %q: %w", pattern, err)
	}
	if matched {
		return true, nil
	}
	return doublestar.Match(pattern, filepath.Base(path))
}
