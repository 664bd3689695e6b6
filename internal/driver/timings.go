package driver

import (
	"encoding/json"
	"fmt"

	"taskfmt/internal/diag"
	"taskfmt/internal/observ"
)

type timingPayload struct {
	Kind    string               `json:"kind"`
	Files   int                  `json:"files,omitempty"`
	TotalMS float64              `json:"total_ms"`
	Phases  []observ.PhaseReport `json:"phases"`
}

// AppendTimingDiagnostic records timer's report as an info diagnostic whose
// note carries the JSON payload. A full bag is grown by one slot.
func AppendTimingDiagnostic(bag *diag.Bag, timer *observ.Timer, files int) {
	if bag == nil || timer == nil {
		return
	}
	report := timer.Report()
	payload := timingPayload{Kind: "fmt", Files: files, TotalMS: report.TotalMS, Phases: report.Phases}
	data, err := json.Marshal(payload)
	if err != nil {
		return
	}

	entry := diag.Diagnostic{
		Severity: diag.SevInfo,
		Code:     diag.ObsTimings,
		Message:  fmt.Sprintf("timings (%s): total %.2f ms over %d files", payload.Kind, payload.TotalMS, files),
		Notes:    []diag.Note{{Msg: string(data)}},
	}
	if bag.Add(entry) {
		return
	}
	overflow := diag.NewBag(bag.Len() + 1)
	overflow.Add(entry)
	bag.Merge(overflow)
}
