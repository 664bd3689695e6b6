package fuzztests

import (
	"io/fs"
	"os"
	"path/filepath"
	"testing"

	"taskfmt/internal/dialect"
)

const (
	maxSeedBytes = 64 << 10
	maxFuzzInput = 1 << 16
)

var builtinSeeds = []string{
	"",
	"version: '3'\n",
	"tasks:\n  build_app:\n    cmds:\n      - echo {{ .X }}\n",
	"vars:\n  out: bin\n  go_flags: -race\nversion: \"3\"\n",
	"tasks:\n  docker:build:\n    desc: |\n      line one\n\n      line two\n",
	"# head\nversion: \"3\"\n\ntasks:\n  a: {cmds: [x]}\n",
	"tasks_ci:\n  lint_all:\n    cmds:\n      - golangci-lint run\n",
	"- not a mapping\n",
	"a: &x 1\nb: *x\n",
}

func addCorpusSeeds(f *testing.F) {
	for _, s := range builtinSeeds {
		f.Add([]byte(s))
	}
	addTestdataSeeds(f)
}

// addTestdataSeeds adds every Taskfile under the repository's testdata tree.
func addTestdataSeeds(f *testing.F) {
	root := filepath.Join("..", "..", "testdata")
	if _, err := os.Stat(root); err != nil {
		return
	}
	_ = filepath.WalkDir(root, func(path string, d fs.DirEntry, walkErr error) error {
		if walkErr != nil || d.IsDir() {
			return nil
		}
		if !dialect.Taskfile.Matches(path) && filepath.Ext(path) != ".yml" {
			return nil
		}
		// #nosec G304 -- path comes from repository testdata walk
		src, err := os.ReadFile(path)
		if err != nil {
			return nil
		}
		f.Add(clampSeed(src))
		return nil
	})
}

func clampSeed(src []byte) []byte {
	if len(src) <= maxSeedBytes {
		return append([]byte(nil), src...)
	}
	return append([]byte(nil), src[:maxSeedBytes]...)
}

func clampInput(input []byte) []byte {
	if len(input) > maxFuzzInput {
		return append([]byte(nil), input[:maxFuzzInput]...)
	}
	return append([]byte(nil), input...)
}
