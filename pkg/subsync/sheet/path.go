package sheet

import (
	"os"
	"path/filepath"
)

// ResolvePath returns the workbook path for a DDMMYYYY date inside folder.
// The audio variant <date>_A.xlsx takes precedence over <date>.xlsx whenever
// it exists, matching the convention of the downstream sender.
func ResolvePath(folder, date string) string {
	audio := filepath.Join(folder, date+"_A.xlsx")
	if _, err := os.Stat(audio); err == nil {
		return audio
	}
	return filepath.Join(folder, date+".xlsx")
}
