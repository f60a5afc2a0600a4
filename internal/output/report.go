package output

import (
	"fmt"
	"strings"

	"github.com/defycont/SIFIDE2025-v1.0/internal/domain"
)

// GenerateReport writes the report in the named format to dir and returns the
// files it created. "all" writes the verbose console, detailed CSV and HTML outputs.
func GenerateReport(report *domain.FiscalReport, format, dir string) ([]string, error) {
	if NormalizeFormatName(format) == "all" {
		var files []string
		for _, name := range []string{"console", "detailed-csv", "html"} {
			file, err := WriteFormatted(GetFormatterByName(name), report, dir, extensionFor(name))
			if err != nil {
				return files, err
			}
			files = append(files, file)
		}
		return files, nil
	}

	f := GetFormatterByName(format)
	if f == nil {
		// enrich error with available formatters and aliases
		return nil, fmt.Errorf("%w: %q. Try one of: %s (aliases: %s)", ErrUnsupportedFormat, format,
			strings.Join(AvailableFormatterNames(), ", "), strings.Join(AvailableFormatAliases(), ", "))
	}
	file, err := WriteFormatted(f, report, dir, extensionFor(f.Name()))
	if err != nil {
		return nil, err
	}
	return []string{file}, nil
}
