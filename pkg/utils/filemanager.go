// =============================================================================
// Deterioro Report - File Manager Utility
// =============================================================================
//
// This module provides the file handling around the report workbook:
//   - Directory creation for the output path
//   - Temporary sibling names for in-progress workbooks
//   - Atomic replacement of the report once a workbook is fully saved
//
// REPLACEMENT STRATEGY:
//   A workbook is always saved to a uuid-named sibling of the target first
//   and then renamed over the target. A run that fails while saving leaves the
//   previous report (or no report) in place, never a truncated file.
//
// =============================================================================

package utils

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
)

// =============================================================================
// FILE MANAGER
// =============================================================================

// FileManager stages writes to a single output file.
type FileManager struct {
	// Target is the final path of the output file.
	Target string
}

// NewFileManager creates a FileManager for the given output path.
func NewFileManager(target string) *FileManager {
	return &FileManager{Target: target}
}

// EnsureDirectory creates the directory of the target if it doesn't exist.
func (fm *FileManager) EnsureDirectory() error {
	dir := filepath.Dir(fm.Target)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("failed to create directory %s: %w", dir, err)
	}
	return nil
}

// TempPath returns a fresh, unused sibling path for the target. The target's
// extension is kept because the xlsx writer selects the format from it.
//
// EXAMPLE:
//   target: "out/ANALISIS_DETERIORO_2025_modificado.xlsx"
//   result: "out/.~ANALISIS_DETERIORO_2025_modificado-3f2b...e1.xlsx"
func (fm *FileManager) TempPath() string {
	dir := filepath.Dir(fm.Target)
	base := filepath.Base(fm.Target)
	ext := filepath.Ext(base)
	name := strings.TrimSuffix(base, ext)

	return filepath.Join(dir, fmt.Sprintf(".~%s-%s%s", name, uuid.New().String(), ext))
}

// Commit moves a fully written temporary file over the target.
func (fm *FileManager) Commit(tempPath string) error {
	if err := os.Rename(tempPath, fm.Target); err != nil {
		// If rename fails (e.g., cross-device), try copy and delete.
		if err := copyFile(tempPath, fm.Target); err != nil {
			return fmt.Errorf("failed to replace %s: %w", fm.Target, err)
		}
		if err := os.Remove(tempPath); err != nil {
			return fmt.Errorf("failed to remove temporary file: %w", err)
		}
	}
	return nil
}

// Discard removes a temporary file after a failed write. Errors are ignored
// because the file may never have been created.
func (fm *FileManager) Discard(tempPath string) {
	_ = os.Remove(tempPath)
}

// =============================================================================
// UTILITY FUNCTIONS
// =============================================================================

// copyFile copies a file from src to dst.
func copyFile(src, dst string) error {
	sourceFile, err := os.Open(src)
	if err != nil {
		return err
	}
	defer sourceFile.Close()

	destFile, err := os.Create(dst)
	if err != nil {
		return err
	}
	defer destFile.Close()

	_, err = io.Copy(destFile, sourceFile)
	if err != nil {
		return err
	}

	return destFile.Sync()
}

// FileExists checks if a file exists.
func FileExists(path string) bool {
	_, err := os.Stat(path)
	return !os.IsNotExist(err)
}
