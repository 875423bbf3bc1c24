package driver_test

import (
	"errors"
	"io/fs"
	"os"
	"strings"
	"testing"

	"github.com/linea-lang/linea/driver"
	"github.com/linea-lang/linea/linearize"
	"github.com/linea-lang/linea/utils"
	"github.com/sebdah/goldie/v2"
)

func compile(source string) (string, error) {
	ops, err := driver.Compile(source)
	if err != nil {
		return "", err
	}

	return linearize.Render(ops), nil
}

func TestCompileFromTestData(t *testing.T) {
	t.Parallel()

	s, err := os.ReadFile("../testdata/testcase.yaml")
	if err != nil {
		panic(err)
	}
	testcases := utils.ReadTestData(s)
	for _, testcase := range testcases {
		if expected, ok := testcase.Expected["compile"]; ok {
			utils.RunTest(t, compile, testcase.Label, testcase.Input, expected)
		} else {
			utils.RunTest(t, compile, testcase.Label, testcase.Input, "no expected value")
		}
	}
}

func BenchmarkFromTestData(b *testing.B) {
	s, err := os.ReadFile("../testdata/testcase.yaml")
	if err != nil {
		panic(err)
	}
	testcases := utils.ReadTestData(s)

	for _, testcase := range testcases {
		b.Run(testcase.Label, func(b *testing.B) {
			for i := 0; i < b.N; i++ {
				utils.RunTest(b, compile, testcase.Label, testcase.Input, testcase.Expected["compile"])
			}
		})
	}
}

func TestGolden(t *testing.T) {
	t.Parallel()

	testfiles, err := utils.FindSourceFiles("../testdata")
	if err != nil {
		t.Errorf("failed to find test files: %v", err)
		return
	}

	for _, testfile := range testfiles {
		ops, err := driver.CompileFile(testfile)
		if err != nil {
			t.Errorf("%s returned error: %v", testfile, err)
			return
		}

		g := goldie.New(t)
		g.Assert(t, testfile, []byte(linearize.Render(ops)+"\n"))
	}
}

func TestStagePrefixes(t *testing.T) {
	t.Parallel()

	testcases := []struct {
		source string
		prefix string
	}{
		{"x = @;", "lex: "},
		{"x = 5", "parse: "},
		{"print(y);", "linearize: "},
	}

	for _, testcase := range testcases {
		_, err := driver.Compile(testcase.source)
		if err == nil {
			t.Errorf("Compile(%q) should fail", testcase.source)
			continue
		}
		if !strings.HasPrefix(err.Error(), testcase.prefix) {
			t.Errorf("Compile(%q) error %q, want %q prefix", testcase.source, err, testcase.prefix)
		}
	}
}

func TestCompileFileMissing(t *testing.T) {
	t.Parallel()

	_, err := driver.CompileFile("no/such/file.ln")
	if !errors.Is(err, fs.ErrNotExist) {
		t.Errorf("CompileFile returned %v, want a not-exist error", err)
	}
}
