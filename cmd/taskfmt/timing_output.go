package main

import (
	"fmt"
	"io"

	"taskfmt/internal/observ"
)

func printPhaseTimings(out io.Writer, timer *observ.Timer, files int) {
	if out == nil || timer == nil {
		return
	}
	if _, err := fmt.Fprintf(out, "formatted %d files\n", files); err != nil {
		return
	}
	_, _ = io.WriteString(out, timer.Summary())
}
