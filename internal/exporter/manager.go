package exporter

import (
	"context"
	"fmt"
	"strings"

	"golang.org/x/sync/errgroup"

	"route-postman/internal/config"
	"route-postman/internal/exporter/html"
	"route-postman/internal/exporter/openapi"
	"route-postman/internal/exporter/word"
	"route-postman/internal/logger"
	"route-postman/internal/model"
)

// GetExporters returns the exporters for the requested formats, once each
func GetExporters(formats []string) ([]Exporter, error) {
	exporters := []Exporter{}
	seen := make(map[string]bool)

	for _, fmtStr := range formats {
		fmtStr = strings.ToLower(strings.TrimSpace(fmtStr))
		if fmtStr == "" {
			continue
		}

		var e Exporter
		switch fmtStr {
		case "json", "postman":
			e = NewJSONExporter()
		case "yaml", "yml":
			e = NewYAMLExporter()
		case "openapi", "swagger":
			e = openapi.NewOpenAPIExporter()
		case "excel", "xlsx":
			e = NewExcelExporter()
		case "html":
			e = html.NewHTMLExporter()
		case "word", "docx":
			e = word.NewWordExporter()
		default:
			return nil, fmt.Errorf("unsupported output format: %q", fmtStr)
		}

		if seen[e.Name()] {
			continue
		}
		seen[e.Name()] = true
		exporters = append(exporters, e)
	}

	return exporters, nil
}

// Run executes the exporters concurrently. The document is read-only while
// they run. done is called after each successful export and may be nil.
func Run(ctx context.Context, exporters []Exporter, doc *model.Collection, cfg *config.Config, done func(name, path string)) ([]string, error) {
	paths := make([]string, len(exporters))

	g, ctx := errgroup.WithContext(ctx)
	for i, e := range exporters {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}

			path, err := e.Export(doc, cfg)
			if err != nil {
				return fmt.Errorf("%s export failed: %w", e.Name(), err)
			}
			logger.Debug("%s export written to %s", e.Name(), path)

			paths[i] = path
			if done != nil {
				done(e.Name(), path)
			}
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}
	return paths, nil
}
