// Package export renders simulation results to files: JSON and CSV data,
// and SVG, HTML and PNG plots.
package export

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/san-kum/memsim/internal/sim"
)

type Format string

const (
	FormatJSON Format = "json"
	FormatCSV  Format = "csv"
	FormatSVG  Format = "svg"
	FormatHTML Format = "html"
	FormatPNG  Format = "png"
)

func Formats() []Format {
	return []Format{FormatJSON, FormatCSV, FormatSVG, FormatHTML, FormatPNG}
}

// ParseFormat accepts a format name or a file name with a known extension.
func ParseFormat(s string) (Format, error) {
	s = strings.ToLower(s)
	if i := strings.LastIndexByte(s, '.'); i >= 0 {
		s = s[i+1:]
	}
	for _, f := range Formats() {
		if string(f) == s {
			return f, nil
		}
	}
	return "", fmt.Errorf("export: unknown format %q", s)
}

// Document is a result with the run context exporters print alongside it.
type Document struct {
	Title  string
	Model  string
	Preset string
	Config sim.Config
	Result *sim.Result
}

// Write renders doc in format f to w.
func Write(w io.Writer, f Format, doc Document) error {
	switch f {
	case FormatJSON:
		return JSON(w, doc)
	case FormatCSV:
		return CSV(w, doc.Result)
	case FormatSVG:
		return SVG(w, doc.Result, PlotIV, 800, 600)
	case FormatHTML:
		return HTML(w, doc)
	case FormatPNG:
		return PNG(w, doc)
	default:
		return fmt.Errorf("export: unknown format %q", f)
	}
}

// WriteFile renders doc to path, choosing the format from its extension.
func WriteFile(path string, doc Document) error {
	f, err := ParseFormat(path)
	if err != nil {
		return err
	}

	file, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := Write(file, f, doc); err != nil {
		file.Close()
		return err
	}
	return file.Close()
}
