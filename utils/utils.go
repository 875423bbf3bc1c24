package utils

import (
	"fmt"
	"io/fs"
	"path/filepath"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/linea-lang/linea/token"
	"gopkg.in/yaml.v3"
)

// MsgAt prefixes msg with where the token sits in the source text.
func MsgAt(where token.Token, msg string) string {
	if where.Kind == token.EOF {
		return fmt.Sprintf("at %d:%d: end of input, %s", where.Line, where.Column, msg)
	}
	return fmt.Sprintf("at %d:%d: `%s`, %s", where.Line, where.Column, where.Lexeme, msg)
}

// PosError attaches a source position to Err.
type PosError struct {
	Where token.Token
	Err   error
}

func (e PosError) Error() string {
	return MsgAt(e.Where, e.Err.Error())
}

func (e PosError) Unwrap() error {
	return e.Err
}

// FindSourceFiles returns every .ln file under dir in lexical order.
func FindSourceFiles(dir string) ([]string, error) {
	var files []string
	err := filepath.WalkDir(dir, func(path string, _ fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if filepath.Ext(path) == ".ln" {
			files = append(files, path)
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("walk %s: %w", dir, err)
	}

	return files, nil
}

type TestData struct {
	Label    string
	Enable   bool
	Input    string
	Expected map[string]string
}

func ReadTestData(s []byte) []TestData {
	var data []TestData
	if err := yaml.Unmarshal(s, &data); err != nil {
		panic(err)
	}

	// Remove disabled test cases.
	i := 0
	for _, d := range data {
		if d.Enable {
			data[i] = d
			i++
		}
	}
	data = data[:i]

	return data
}

// RunTest compiles input and compares the rendered result with expected.
func RunTest(t testing.TB, compile func(string) (string, error), label, input, expected string) {
	t.Helper()

	actual, err := compile(input)
	if err != nil {
		t.Errorf("%s returned error: %v", label, err)
		return
	}

	if diff := cmp.Diff(expected, actual); diff != "" {
		t.Errorf("%s mismatch (-expected +actual):\n%s", label, diff)
	}
}
