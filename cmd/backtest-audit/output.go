package main

import (
	"os"

	"github.com/phamtrung93/fx-sentinel/pkg/reporting"
)

func writeText(path, content string) error {
	if err := reporting.EnsureDirectoryExists(path); err != nil {
		return err
	}
	return os.WriteFile(path, []byte(content), 0644)
}
