// Package sink persists harvest results: the series dataset as indented JSON
// and the failed request URLs as a plain text list.
package sink

import (
	"bufio"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"aniharvest/internal/harvest"
)

// WriteRecords writes the dataset to path as a 4-space-indented JSON array.
// An empty run still produces a file holding an empty array.
func WriteRecords(path string, records []harvest.SeriesRecord) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("ensure output directory: %w", err)
	}

	file, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create dataset file: %w", err)
	}
	defer file.Close()

	if records == nil {
		records = []harvest.SeriesRecord{}
	}

	encoder := json.NewEncoder(file)
	encoder.SetIndent("", "    ")
	encoder.SetEscapeHTML(false)
	if err := encoder.Encode(records); err != nil {
		return fmt.Errorf("encode dataset: %w", err)
	}
	return file.Close()
}

// WriteFailures writes the failed URLs to path, one per line. When the run
// had no failures no file is written and any stale file from a previous run
// is removed.
func WriteFailures(path string, urls []string) error {
	if len(urls) == 0 {
		if err := os.Remove(path); err != nil && !os.IsNotExist(err) {
			return fmt.Errorf("remove stale failures file: %w", err)
		}
		return nil
	}

	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("ensure output directory: %w", err)
	}

	file, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create failures file: %w", err)
	}
	defer file.Close()

	writer := bufio.NewWriter(file)
	for _, url := range urls {
		if _, err := fmt.Fprintln(writer, url); err != nil {
			return fmt.Errorf("write failures file: %w", err)
		}
	}
	if err := writer.Flush(); err != nil {
		return fmt.Errorf("flush failures file: %w", err)
	}
	return file.Close()
}
