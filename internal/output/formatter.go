package output

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
)

// Formatter renders a report into bytes
type Formatter interface {
	Name() string
	Format(r *Report) ([]byte, error)
}

// FormatterFunc adapts a plain function to the Formatter interface
type FormatterFunc struct {
	ID string
	F  func(r *Report) ([]byte, error)
}

func (f FormatterFunc) Name() string { return f.ID }

func (f FormatterFunc) Format(r *Report) ([]byte, error) { return f.F(r) }

var formatters = map[string]func() Formatter{
	"console": func() Formatter { return ConsoleFormatter{} },
	"json":    func() Formatter { return JSONFormatter{} },
	"csv":     func() Formatter { return CSVFormatter{} },
	"html":    func() Formatter { return HTMLFormatter{} },
	"pdf":     func() Formatter { return PDFFormatter{} },
}

var aliases = map[string]string{
	"text":  "console",
	"table": "console",
	"htm":   "html",
}

// AvailableFormatterNames returns the registered formatter names, sorted
func AvailableFormatterNames() []string {
	names := make([]string, 0, len(formatters))
	for name := range formatters {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// AvailableFormatAliases returns the accepted alternative names, sorted
func AvailableFormatAliases() []string {
	out := make([]string, 0, len(aliases))
	for alias := range aliases {
		out = append(out, alias)
	}
	sort.Strings(out)
	return out
}

// GetFormatterByName returns the formatter registered under name or alias,
// or nil when there is none
func GetFormatterByName(name string) Formatter {
	name = strings.ToLower(strings.TrimSpace(name))
	if target, ok := aliases[name]; ok {
		name = target
	}
	ctor, ok := formatters[name]
	if !ok {
		return nil
	}
	return ctor()
}

// WriteFormatted renders the report and writes it to dir as
// goal_report_<timestamp>.<ext>, returning the file path
func WriteFormatted(f Formatter, r *Report, dir, ext string) (string, error) {
	data, err := f.Format(r)
	if err != nil {
		return "", err
	}
	name := fmt.Sprintf("goal_report_%s.%s", r.GeneratedAt.Format("20060102_150405"), strings.TrimPrefix(ext, "."))
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return "", fmt.Errorf("failed to write %s: %w", path, err)
	}
	return path, nil
}
