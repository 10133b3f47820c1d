package config

import (
	"io"
	"os"
	"path/filepath"

	"github.com/hashicorp/hcl2/gohcl"
	"github.com/hashicorp/hcl2/hcl"
	"github.com/hashicorp/hcl2/hclparse"
	"github.com/mattn/go-isatty"
)

// FileName is the name of the profiles file the Loader looks for.
const FileName = "logic.hcl"

// A Loader loads capture profiles from a logic.hcl file on disk.
//
// The zero value is ready to use.
type Loader struct {
	parser *hclparse.Parser
}

// Root finds the directory containing a profiles file, starting at dir and
// traversing parents. An empty string is returned when no profiles file was
// found; an error only when dir itself cannot be read.
func (l *Loader) Root(dir string) (string, error) {
	if _, err := os.Stat(dir); err != nil {
		return "", err
	}
	for {
		f := filepath.Join(dir, FileName)
		if stat, err := os.Stat(f); err == nil && !stat.IsDir() {
			return filepath.Abs(dir)
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			return "", nil
		}
		dir = parent
	}
}

// Load parses the profiles file in dir and decodes it. Parse and decode
// problems are returned as diagnostics; print them with WriteDiagnostics.
func (l *Loader) Load(dir string) (*Root, hcl.Diagnostics) {
	if l.parser == nil {
		l.parser = hclparse.NewParser()
	}

	f, diags := l.parser.ParseHCLFile(filepath.Join(dir, FileName))
	if diags.HasErrors() {
		return nil, diags
	}

	root := &Root{}
	diags = append(diags, gohcl.DecodeBody(f.Body, nil, root)...)
	if diags.HasErrors() {
		return nil, diags
	}
	return root, diags
}

// WriteDiagnostics writes diagnostics as a human readable string to w,
// colorized when stdout is a terminal. Only diagnostics originating from
// files loaded by this Loader carry source context.
func (l *Loader) WriteDiagnostics(w io.Writer, diags hcl.Diagnostics) {
	var files map[string]*hcl.File
	if l.parser != nil {
		files = l.parser.Files()
	}
	color := isatty.IsTerminal(os.Stdout.Fd())
	wr := hcl.NewDiagnosticTextWriter(w, files, 78, color)
	_ = wr.WriteDiagnostics(diags)
}
