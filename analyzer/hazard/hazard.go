package hazard

import (
	"fmt"
	"sort"
	"unicode/utf16"
	"unicode/utf8"

	sitter "github.com/smacker/go-tree-sitter"
)

// Message is reported for every hazard
const Message = "unsafe use of a terminal single-value operator directly on the tracked source"

// Location represents a source span, lines and columns are 1-based, end column is exclusive
type Location struct {
	FilePath    string `yaml:"filePath"`    // File path
	LineNumber  int    `yaml:"lineNumber"`  // Start line
	ColumnStart int    `yaml:"columnStart"` // Start column
	LineEnd     int    `yaml:"lineEnd"`     // End line
	ColumnEnd   int    `yaml:"columnEnd"`   // End column
}

// String returns path:line:column
func (l Location) String() string {
	return fmt.Sprintf("%s:%d:%d", l.FilePath, l.LineNumber, l.ColumnStart)
}

// NodeLocation returns the span of a node, columns count UTF-16 code units like editors and ESLint do
func NodeLocation(path string, n *sitter.Node, src []byte) Location {
	start, end := n.StartPoint(), n.EndPoint()
	return Location{
		FilePath:    path,
		LineNumber:  int(start.Row) + 1,
		ColumnStart: column(src, n.StartByte(), start.Column) + 1,
		LineEnd:     int(end.Row) + 1,
		ColumnEnd:   column(src, n.EndByte(), end.Column) + 1,
	}
}

// column converts a byte column ending at offset into UTF-16 code units
func column(src []byte, offset, byteColumn uint32) int {
	if offset > uint32(len(src)) || byteColumn > offset {
		return int(byteColumn)
	}
	prefix := src[offset-byteColumn : offset]
	units := 0
	for len(prefix) > 0 {
		r, size := utf8.DecodeRune(prefix)
		prefix = prefix[size:]
		units += utf16.RuneLen(r)
	}
	return units
}

// Hazard represents a terminal single-value operator applied to the tracked source
type Hazard struct {
	Location    `yaml:",inline"`
	Operator    string `yaml:"operator"`
	Message     string `yaml:"message"`
	Fingerprint string `yaml:"fingerprint,omitempty"` // Stable identity used by baselines
}

// New creates a hazard, fingerprint is usually computed with Fingerprint
func New(location Location, operator, fingerprint string) *Hazard {
	return &Hazard{
		Location:    location,
		Operator:    operator,
		Message:     Message,
		Fingerprint: fingerprint,
	}
}

// Sort orders hazards by file keeping the in-file order stable
func Sort(hazards []*Hazard) {
	sort.SliceStable(hazards, func(i, j int) bool {
		return hazards[i].FilePath < hazards[j].FilePath
	})
}
