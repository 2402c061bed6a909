package app_test

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/Mikefromtheback/plagiat-check/app"
	"github.com/Mikefromtheback/plagiat-check/domain"
	"github.com/Mikefromtheback/plagiat-check/service"
)

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

func TestCanonicalizeUseCase_Execute(t *testing.T) {
	dir := t.TempDir()
	a := writeFile(t, dir, "a.py", "def foo(x):\n    return x + 1\n")
	b := writeFile(t, dir, "b.py", "value = compute(1)\n")

	var out bytes.Buffer
	uc := app.NewCanonicalizeUseCase(service.NewCompareService(), nil, service.NewFileOutputWriter(nil))

	forms, err := uc.Execute(context.Background(), domain.CanonicalizeRequest{
		Paths:        []string{a, b},
		Options:      domain.DefaultCanonicalizeOptions(),
		OutputWriter: &out,
	})
	require.NoError(t, err)
	require.Len(t, forms, 2)

	assert.Equal(t, "def function0(arg0):\n    return id_0 + 1", forms[0].Canonical)
	assert.Equal(t, "id_0 = id_1(1)", forms[1].Canonical)
	assert.Equal(t, "# "+a+"\ndef function0(arg0):\n    return id_0 + 1\n\n# "+b+"\nid_0 = id_1(1)\n", out.String())
}

func TestCanonicalizeUseCase_ConfigurationAndFlags(t *testing.T) {
	path := writeFile(t, t.TempDir(), "a.py", "def foo(x):\n    \"doc\"\n    return x\n")

	base := &domain.CompareRequest{Canonicalize: domain.CanonicalizeOptions{
		NormalizeFunctions:   true,
		NormalizeIdentifiers: false,
		StripDocstrings:      true,
	}}
	loader := new(mockConfigLoader)
	loader.On("LoadDefaultConfig").Return(base)
	loader.On("MergeConfig", base, mock.Anything).Return(&domain.CompareRequest{Canonicalize: domain.CanonicalizeOptions{
		NormalizeFunctions:   true,
		NormalizeIdentifiers: false,
		StripDocstrings:      false,
	}})

	var out bytes.Buffer
	uc := app.NewCanonicalizeUseCase(service.NewCompareService(), loader, service.NewFileOutputWriter(nil))
	forms, err := uc.Execute(context.Background(), domain.CanonicalizeRequest{
		Paths:         []string{path},
		OutputWriter:  &out,
		ExplicitFlags: map[string]bool{service.FlagKeepDocstrings: true},
	})
	require.NoError(t, err)

	assert.Equal(t, "def function0(arg0):\n    'doc'\n    return x", forms[0].Canonical)
	loader.AssertExpectations(t)
}

func TestCanonicalizeUseCase_Errors(t *testing.T) {
	dir := t.TempDir()
	broken := writeFile(t, dir, "broken.py", "def broken(:\n")
	uc := app.NewCanonicalizeUseCase(service.NewCompareService(), nil, service.NewFileOutputWriter(nil))

	_, err := uc.Execute(context.Background(), domain.CanonicalizeRequest{OutputWriter: &bytes.Buffer{}})
	assert.True(t, domain.IsErrorCode(err, domain.ErrCodeInvalidInput))

	var out bytes.Buffer
	_, err = uc.Execute(context.Background(), domain.CanonicalizeRequest{
		Paths:        []string{broken},
		Options:      domain.DefaultCanonicalizeOptions(),
		OutputWriter: &out,
	})
	assert.True(t, domain.IsErrorCode(err, domain.ErrCodeSyntaxError))
	assert.Empty(t, out.String())
}
