package observ

import (
	"errors"
	"strings"
	"sync"
	"testing"
)

func TestTimer_ReportAggregatesByName(t *testing.T) {
	tm := NewTimer()
	for _, name := range []string{"parse", "format", "parse"} {
		tm.End(tm.Begin(name), "")
	}
	err := tm.Track("write", func() error { return errors.New("boom") })
	if err == nil {
		t.Fatal("Track must return fn's error")
	}

	report := tm.Report()
	if len(report.Phases) != 3 {
		t.Fatalf("phases = %+v", report.Phases)
	}
	want := []struct {
		name  string
		count int
	}{{"parse", 2}, {"format", 1}, {"write", 1}}
	for i, w := range want {
		if report.Phases[i].Name != w.name || report.Phases[i].Count != w.count {
			t.Errorf("phase %d = %+v, want %s x%d", i, report.Phases[i], w.name, w.count)
		}
	}
	if report.Phases[2].Note != "error" {
		t.Errorf("write note = %q", report.Phases[2].Note)
	}
	if !strings.Contains(tm.Summary(), "total") {
		t.Errorf("summary missing total:\n%s", tm.Summary())
	}
}

func TestTimer_Empty(t *testing.T) {
	tm := NewTimer()
	tm.End(5, "ignored")
	if r := tm.Report(); r.TotalMS != 0 || len(r.Phases) != 0 {
		t.Fatalf("report = %+v", r)
	}
}

func TestTimer_Concurrent(t *testing.T) {
	tm := NewTimer()
	var wg sync.WaitGroup
	for range 16 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			tm.End(tm.Begin("format"), "")
		}()
	}
	wg.Wait()
	if r := tm.Report(); len(r.Phases) != 1 || r.Phases[0].Count != 16 {
		t.Fatalf("report = %+v", r)
	}
}
