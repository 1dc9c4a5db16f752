package reporting

import (
	"encoding/json"
	"os"
)

// WriteReportJSON writes the full report as indented JSON, for downstream
// tooling that wants the raw numbers rather than a rendering.
func WriteReportJSON(report *AuditReport, path string) error {
	if err := EnsureDirectoryExists(path); err != nil {
		return err
	}

	data, err := json.MarshalIndent(report, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}
