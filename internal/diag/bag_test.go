package diag

import (
	"sync"
	"testing"
)

func TestBag_LimitAndSeverity(t *testing.T) {
	b := NewBag(2)
	if !b.Add(New(SevWarning, ProjConfigUnknown, At("a", 1, 1), "w")) {
		t.Fatal("first add rejected")
	}
	if b.HasErrors() || !b.HasWarnings() {
		t.Fatalf("HasErrors=%v HasWarnings=%v", b.HasErrors(), b.HasWarnings())
	}
	b.Add(NewError(YAMLInvalid, At("a", 2, 1), "e"))
	if b.Add(NewError(YAMLInvalid, At("a", 3, 1), "dropped")) {
		t.Fatal("add beyond limit accepted")
	}
	if b.Len() != 2 || !b.HasErrors() {
		t.Fatalf("Len=%d HasErrors=%v", b.Len(), b.HasErrors())
	}
}

func TestNewBag_Clamp(t *testing.T) {
	if got := NewBag(0).Cap(); got != 1 {
		t.Errorf("NewBag(0).Cap() = %d", got)
	}
	if got := NewBag(1 << 20).Cap(); got != 65535 {
		t.Errorf("NewBag(huge).Cap() = %d", got)
	}
}

func TestBag_SortMergeDedup(t *testing.T) {
	b := NewBag(10)
	b.Add(NewError(FmtFailed, At("b.yml", 1, 1), "x"))
	b.Add(New(SevWarning, YAMLInvalid, At("a.yml", 2, 1), "y"))
	b.Add(NewError(YAMLInvalid, At("a.yml", 2, 1), "z"))

	other := NewBag(1)
	other.Add(NewError(FmtFailed, At("b.yml", 1, 1), "x"))
	b.Merge(other)
	b.Dedup()
	b.Sort()

	items := b.Items()
	if len(items) != 3 {
		t.Fatalf("len = %d, want 3", len(items))
	}
	if items[0].Message != "z" || items[1].Message != "y" || items[2].Message != "x" {
		t.Fatalf("order = %q %q %q", items[0].Message, items[1].Message, items[2].Message)
	}
}

func TestReportBuilder_EmitOnce(t *testing.T) {
	bag := NewBag(10)
	r := NewBagReporter(bag)

	b := ReportError(r, YAMLInvalid, At("Taskfile.yml", 4, 2), "bad").
		WithNote(At("Taskfile.yml", 1, 1), "document starts here")
	b.Emit()
	b.Emit()

	if bag.Len() != 1 {
		t.Fatalf("Len = %d, want 1", bag.Len())
	}
	d := bag.Items()[0]
	if d.Severity != SevError || len(d.Notes) != 1 || d.Primary.String() != "Taskfile.yml:4:2" {
		t.Fatalf("diagnostic = %+v", d)
	}
}

func TestBagReporter_Concurrent(t *testing.T) {
	bag := NewBag(100)
	r := NewBagReporter(bag)
	var wg sync.WaitGroup
	for i := range 50 {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			ReportWarning(r, FmtNeedsFormatting, At("f.yml", i+1, 1), "needs formatting").Emit()
		}(i)
	}
	wg.Wait()
	if bag.Len() != 50 {
		t.Fatalf("Len = %d, want 50", bag.Len())
	}
}

func TestCodeStrings(t *testing.T) {
	tests := []struct {
		code Code
		want string
	}{
		{YAMLInvalid, "[YML2001]: Invalid YAML"},
		{FmtFailed, "[FMT3001]: Formatting failed"},
		{IOWriteFileError, "[IO4002]: I/O write file error"},
		{UnknownCode, "[E0000]: Unknown error"},
	}
	for _, tt := range tests {
		if got := tt.code.String(); got != tt.want {
			t.Errorf("%d.String() = %q, want %q", tt.code, got, tt.want)
		}
	}
}

func TestLocationString(t *testing.T) {
	if got := At("f", 0, 3).String(); got != "f" {
		t.Errorf("got %q", got)
	}
	if got := At("f", 2, 0).String(); got != "f:2" {
		t.Errorf("got %q", got)
	}
}
