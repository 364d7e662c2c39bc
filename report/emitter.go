package report

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/viant/rxguard/analyzer/hazard"
	"gopkg.in/yaml.v3"
)

// Emitter represents hazard formatter
type Emitter interface {
	Emit(hazards []*hazard.Hazard) ([]byte, error)
}

// Supported formats
const (
	FormatText = "text"
	FormatYAML = "yaml"
)

// NewEmitter returns an emitter for format
func NewEmitter(format string) (Emitter, error) {
	switch strings.ToLower(format) {
	case "", FormatText:
		return &TextEmitter{}, nil
	case FormatYAML, "yml":
		return &YAMLEmitter{}, nil
	}
	return nil, fmt.Errorf("unsupported format: %s", format)
}

// TextEmitter emits one path:line:column: message (operator) line per hazard
type TextEmitter struct{}

func (e *TextEmitter) Emit(hazards []*hazard.Hazard) ([]byte, error) {
	buf := bytes.Buffer{}
	for _, h := range hazards {
		fmt.Fprintf(&buf, "%s: %s (%s)\n", h.Location.String(), h.Message, h.Operator)
	}
	return buf.Bytes(), nil
}

// YAMLEmitter emits hazards as a YAML document
type YAMLEmitter struct{}

func (e *YAMLEmitter) Emit(hazards []*hazard.Hazard) ([]byte, error) {
	doc := struct {
		Hazards []*hazard.Hazard `yaml:"hazards"`
	}{Hazards: hazards}
	if doc.Hazards == nil {
		doc.Hazards = []*hazard.Hazard{}
	}
	return yaml.Marshal(doc)
}
