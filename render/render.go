package render

import (
	"fmt"
	"io"

	"github.com/akrennmair/jack/parser"
	"github.com/davecgh/go-spew/spew"
)

type Format string

const (
	FormatXML  Format = "xml"
	FormatYAML Format = "yaml"
	FormatDump Format = "dump"
)

var Formats = []Format{FormatXML, FormatYAML, FormatDump}

func ParseFormat(s string) (Format, error) {
	for _, f := range Formats {
		if string(f) == s {
			return f, nil
		}
	}
	return "", fmt.Errorf("unknown output format %q", s)
}

// Ext is the file extension used for output files of this format.
func (f Format) Ext() string {
	if f == FormatDump {
		return ".txt"
	}
	return "." + string(f)
}

func Write(w io.Writer, f Format, n parser.Node) error {
	switch f {
	case FormatXML:
		return XML(w, n)
	case FormatYAML:
		return YAML(w, n)
	case FormatDump:
		Dump(w, n)
		return nil
	}
	return fmt.Errorf("unknown output format %q", f)
}

var dumpConfig = spew.ConfigState{
	Indent:                  "  ",
	DisablePointerAddresses: true,
	DisableCapacities:       true,
	SortKeys:                true,
}

// Dump writes the typed tree with go-spew, mostly useful for debugging the
// parser itself.
func Dump(w io.Writer, n parser.Node) {
	dumpConfig.Fdump(w, n)
}
