package models

import (
	"fmt"
	"strings"
	"time"
)

// OperationReport collects everything the reporting surface may print about
// one recorded operation. The fields stay distinct values; Render is a
// convenience for callers that want the plain-text form.
type OperationReport struct {
	RecordID          string          `json:"record_id"`
	Timestamp         time.Time       `json:"timestamp"`
	Label             string          `json:"label"`
	Method            Method          `json:"method"`
	Key               int             `json:"key"`
	KeyStrength       int             `json:"key_strength"`
	Width             int             `json:"width"`
	Height            int             `json:"height"`
	Channels          int             `json:"channels"`
	Analysis          *AnalysisResult `json:"analysis,omitempty"`
	ProcessingTimeSec float64         `json:"processing_time_sec"`
}

// Render formats the report as plain text.
func (r OperationReport) Render() string {
	var b strings.Builder

	fmt.Fprintf(&b, "PIXEL TRANSFORM REPORT\n")
	fmt.Fprintf(&b, "%s\n\n", strings.Repeat("=", 50))
	fmt.Fprintf(&b, "Timestamp: %s\n", r.Timestamp.Format("2006-01-02 15:04:05"))
	fmt.Fprintf(&b, "Operation: %s\n\n", r.Label)

	fmt.Fprintf(&b, "[IMAGE]\n")
	fmt.Fprintf(&b, "Size: %dx%d\n", r.Width, r.Height)
	fmt.Fprintf(&b, "Channels: %d\n\n", r.Channels)

	fmt.Fprintf(&b, "[SETTINGS]\n")
	fmt.Fprintf(&b, "Method: %s\n", r.Method)
	fmt.Fprintf(&b, "Key: %d\n", r.Key)
	fmt.Fprintf(&b, "Key Strength: %d/10\n\n", r.KeyStrength)

	if r.Analysis != nil {
		fmt.Fprintf(&b, "[ANALYSIS]\n")
		fmt.Fprintf(&b, "Entropy: %.2f\n", r.Analysis.Entropy)
		fmt.Fprintf(&b, "Contrast: %.1f\n", r.Analysis.Contrast)
		fmt.Fprintf(&b, "Brightness: %.1f\n", r.Analysis.Brightness)
		fmt.Fprintf(&b, "Edge Density: %.3f\n", r.Analysis.EdgeDensity)
		fmt.Fprintf(&b, "Complexity: %s\n\n", r.Analysis.Complexity)
	}

	fmt.Fprintf(&b, "[METRICS]\n")
	fmt.Fprintf(&b, "Processing Time: %.3fs\n", r.ProcessingTimeSec)

	return b.String()
}
