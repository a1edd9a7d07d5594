package exporter

import (
	"route-postman/internal/config"
	"route-postman/internal/model"
)

// Exporter is the unified interface for all output formats.
// Export returns the path of the file it wrote.
type Exporter interface {
	Name() string
	Export(doc *model.Collection, cfg *config.Config) (string, error)
}
