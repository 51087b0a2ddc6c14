package report

import (
	"bytes"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/Sudheer-CodeCrusader/attribute-combination-suggest-Agent/pkg/analyzer"
)

// Report file names inside an output directory.
const (
	SummaryFile = "summary.json"
	HTMLFile    = "report.html"
)

// WriteDir writes summary.json and report.html into outputDir,
// creating it if needed.
func WriteDir(outputDir string, s *analyzer.Summary, cfg HTMLConfig) error {
	if err := ensureDir(outputDir); err != nil {
		return fmt.Errorf("create output dir: %w", err)
	}

	if err := atomicWriteJSON(filepath.Join(outputDir, SummaryFile), s); err != nil {
		return fmt.Errorf("write summary: %w", err)
	}

	var buf bytes.Buffer
	if err := WriteHTML(&buf, s, cfg); err != nil {
		return fmt.Errorf("generate html: %w", err)
	}
	if err := atomicWrite(filepath.Join(outputDir, HTMLFile), buf.Bytes()); err != nil {
		return fmt.Errorf("write html: %w", err)
	}

	return nil
}

func ensureDir(path string) error {
	return os.MkdirAll(path, 0755)
}

func atomicWriteJSON(path string, v interface{}) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return err
	}
	return atomicWrite(path, data)
}

// atomicWrite writes to a temp file in the same directory and renames it
// over path, so readers never see a partial file.
func atomicWrite(path string, data []byte) error {
	tmp, err := os.CreateTemp(filepath.Dir(path), filepath.Base(path)+".tmp-*")
	if err != nil {
		return err
	}
	tmpName := tmp.Name()

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return err
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpName)
		return err
	}
	if err := os.Chmod(tmpName, 0644); err != nil {
		os.Remove(tmpName)
		return err
	}
	return os.Rename(tmpName, path)
}
