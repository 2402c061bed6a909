package service

import (
	"errors"
	"fmt"
	"io/fs"
	"os"

	"github.com/Mikefromtheback/plagiat-check/domain"
)

// FileReaderImpl implements the SourceReader interface
type FileReaderImpl struct{}

// NewFileReader creates a new file reader service
func NewFileReader() *FileReaderImpl {
	return &FileReaderImpl{}
}

// ReadFile reads the content of a file
func (f *FileReaderImpl) ReadFile(path string) ([]byte, error) {
	content, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, domain.NewFileNotFoundError(path, err)
		}
		return nil, domain.NewInvalidInputError(fmt.Sprintf("cannot read file: %s", path), err)
	}
	return content, nil
}
