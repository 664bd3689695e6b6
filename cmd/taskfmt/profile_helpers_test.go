package main

import (
	"os"
	"path/filepath"
	"testing"
)

func TestProfilingFlags(t *testing.T) {
	cpu := filepath.Join(t.TempDir(), "cpu.out")
	t.Cleanup(func() { _ = rootCmd.PersistentFlags().Set("cpu-profile", "") })

	if _, _, err := execute(t, "", "version", "--format", "json", "--cpu-profile", cpu); err != nil {
		t.Fatalf("version: %v", err)
	}
	if activeProfile == nil {
		t.Fatal("profiling session must be active until stopProfiling")
	}
	if err := stopProfiling(); err != nil {
		t.Fatalf("stopProfiling: %v", err)
	}
	if info, err := os.Stat(cpu); err != nil || info.Size() == 0 {
		t.Fatalf("cpu profile: %v", err)
	}
	if err := stopProfiling(); err != nil {
		t.Fatalf("second stopProfiling: %v", err)
	}
}
