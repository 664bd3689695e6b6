package diagfmt

import (
	"bytes"
	"encoding/json"
	"testing"

	"taskfmt/internal/diag"
)

func TestSarif(t *testing.T) {
	bag := diag.NewBag(4)
	bag.Add(diag.NewError(diag.YAMLInvalid, diag.At("Taskfile.yml", 3, 2), "bad indentation"))
	bag.Add(diag.New(diag.SevWarning, diag.FmtNeedsFormatting, diag.At("Taskfile.yml", 0, 0), "not formatted"))

	var buf bytes.Buffer
	err := Sarif(&buf, bag, nil, SarifRunMeta{ToolName: "taskfmt", ToolVersion: "1.0.0", InvocationArgs: []string{"fmt", "--check"}})
	if err != nil {
		t.Fatalf("Sarif: %v", err)
	}

	var log sarifLog
	if err := json.Unmarshal(buf.Bytes(), &log); err != nil {
		t.Fatalf("invalid SARIF: %v\n%s", err, buf.String())
	}
	if log.Version != "2.1.0" || len(log.Runs) != 1 {
		t.Fatalf("unexpected log: %+v", log)
	}
	run := log.Runs[0]
	if run.Tool.Driver.Name != "taskfmt" || len(run.Tool.Driver.Rules) != 2 {
		t.Fatalf("unexpected driver: %+v", run.Tool.Driver)
	}
	if run.Tool.Driver.Rules[0].ID != "FMT3002" {
		t.Errorf("rules not sorted: %+v", run.Tool.Driver.Rules)
	}
	if len(run.Results) != 2 || run.Results[0].Level != "error" || run.Results[1].Level != "warning" {
		t.Fatalf("unexpected results: %+v", run.Results)
	}
	if r := run.Results[0].Locations[0].PhysicalLocation.Region; r == nil || r.StartLine != 3 {
		t.Errorf("region = %+v", r)
	}
	if r := run.Results[1].Locations[0].PhysicalLocation.Region; r != nil {
		t.Errorf("file-level result has region %+v", r)
	}
	if len(run.Invocations) != 1 || run.Invocations[0].ExecutionSuccessful {
		t.Errorf("invocation = %+v", run.Invocations)
	}
}
