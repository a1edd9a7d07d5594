package exporter

import (
	"fmt"

	"sigs.k8s.io/yaml"

	"route-postman/internal/config"
	"route-postman/internal/exporter/common"
	"route-postman/internal/model"
)

// YAMLExporter writes the collection as YAML
type YAMLExporter struct{}

// NewYAMLExporter creates a new YAMLExporter
func NewYAMLExporter() *YAMLExporter {
	return &YAMLExporter{}
}

// Name returns the format name
func (e *YAMLExporter) Name() string {
	return "yaml"
}

// Export converts the JSON document to YAML, so field names match the JSON output
func (e *YAMLExporter) Export(doc *model.Collection, cfg *config.Config) (string, error) {
	jsonData, err := EncodeCollection(doc)
	if err != nil {
		return "", err
	}

	data, err := yaml.JSONToYAML(jsonData)
	if err != nil {
		return "", fmt.Errorf("failed to convert collection to YAML: %w", err)
	}

	outputFile := cfg.GetOutputPath("yaml")
	if err := common.WriteFileAtomic(outputFile, data); err != nil {
		return "", err
	}
	return outputFile, nil
}
