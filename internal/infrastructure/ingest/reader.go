package ingest

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// ReadFile opens a source file and reads it with the reader matching the
// format. Format "auto" selects by extension, defaulting to CSV.
func ReadFile(path, format string, delimiter rune) (*Dataset, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open input file: %w", err)
	}
	defer func() {
		_ = f.Close()
	}()

	if format == "" || format == "auto" {
		switch strings.ToLower(filepath.Ext(path)) {
		case ".xlsx", ".xlsm":
			format = "xlsx"
		default:
			format = "csv"
		}
	}

	source := filepath.Base(path)
	switch format {
	case "xlsx":
		return NewXLSXReader().Read(source, f)
	case "csv":
		return NewCSVReader(WithDelimiter(delimiter)).Read(source, f)
	default:
		return nil, fmt.Errorf("unsupported input format %q", format)
	}
}
