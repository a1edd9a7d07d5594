package exporter

import (
	"bytes"
	"encoding/json"
	"fmt"

	"route-postman/internal/config"
	"route-postman/internal/exporter/common"
	"route-postman/internal/model"
)

// JSONExporter writes the Postman collection file
type JSONExporter struct{}

// NewJSONExporter creates a new JSONExporter
func NewJSONExporter() *JSONExporter {
	return &JSONExporter{}
}

// Name returns the format name
func (e *JSONExporter) Name() string {
	return "json"
}

// Export writes <dir>/<file_name>.json
func (e *JSONExporter) Export(doc *model.Collection, cfg *config.Config) (string, error) {
	data, err := EncodeCollection(doc)
	if err != nil {
		return "", err
	}

	outputFile := cfg.GetOutputPath("json")
	if err := common.WriteFileAtomic(outputFile, data); err != nil {
		return "", err
	}
	return outputFile, nil
}

// EncodeCollection renders doc as indented JSON with slashes and HTML left unescaped
func EncodeCollection(doc *model.Collection) ([]byte, error) {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", "    ")
	if err := enc.Encode(doc); err != nil {
		return nil, fmt.Errorf("failed to encode collection: %w", err)
	}
	return buf.Bytes(), nil
}
