package word

import (
	"bytes"
	"fmt"
	"os"
	"strings"
	"time"

	"route-postman/internal/config"
	"route-postman/internal/exporter/common"
	"route-postman/internal/model"

	"github.com/nguyenthenguyen/docx"
)

// The docx encoder turns CRLF into <w:br/>; a bare LF would be lost
const lineBreak = "\r\n"

type WordExporter struct {
	now func() time.Time
}

func NewWordExporter() *WordExporter {
	return &WordExporter{now: time.Now}
}

func (e *WordExporter) Name() string {
	return "word"
}

func (e *WordExporter) Export(collection *model.Collection, cfg *config.Config) (string, error) {
	// 1. Materialize the template to a temp file
	templateBytes, err := buildTemplate()
	if err != nil {
		return "", fmt.Errorf("failed to build template: %w", err)
	}

	tmpFile, err := os.CreateTemp("", "route-postman-template-*.docx")
	if err != nil {
		return "", fmt.Errorf("failed to create temp file: %w", err)
	}
	defer os.Remove(tmpFile.Name())

	if _, err := tmpFile.Write(templateBytes); err != nil {
		tmpFile.Close()
		return "", fmt.Errorf("failed to write template to temp file: %w", err)
	}
	if err := tmpFile.Close(); err != nil {
		return "", fmt.Errorf("failed to close temp file: %w", err)
	}

	r, err := docx.ReadDocxFile(tmpFile.Name())
	if err != nil {
		return "", fmt.Errorf("failed to read docx from temp file: %w", err)
	}
	defer r.Close()

	doc := r.Editable()

	// 2. Summary placeholders
	rows := common.SortByPath(common.FlattenCollection(collection))
	totalFolders := common.CountFolders(collection.Item)

	replacements := []struct{ old, new string }{
		{"{{Title}}", collection.Info.Name},
		{"{{Date}}", e.now().Format("2006-01-02 15:04:05")},
		{"{{TotalRequests}}", fmt.Sprintf("%d", len(rows))},
		{"{{TotalFolders}}", fmt.Sprintf("%d", totalFolders)},
		{"{{Content}}", buildContent(collection, rows)},
	}
	for _, rep := range replacements {
		if err := doc.Replace(rep.old, rep.new, -1); err != nil {
			return "", fmt.Errorf("failed to fill %s: %w", rep.old, err)
		}
	}

	var buf bytes.Buffer
	if err := doc.Write(&buf); err != nil {
		return "", fmt.Errorf("failed to write Word document: %w", err)
	}

	outFile := cfg.GetOutputPath("docx")
	if err := common.WriteFileAtomic(outFile, buf.Bytes()); err != nil {
		return "", err
	}
	return outFile, nil
}

// buildContent renders the request listing as plain text
func buildContent(collection *model.Collection, rows []*common.FlattenedRequest) string {
	var sb strings.Builder

	authType := model.AuthTypeNone
	if collection.Auth != nil {
		authType = collection.Auth.Type
	}

	sb.WriteString("REQUEST INDEX" + lineBreak + lineBreak)
	if collection.Info.Description != "" {
		sb.WriteString(collection.Info.Description + lineBreak)
	}
	sb.WriteString(fmt.Sprintf("Collection Auth: %s%s", authType, lineBreak))
	sb.WriteString(strings.Repeat("=", 80) + lineBreak + lineBreak)

	lastFolder := ""
	for i, r := range rows {
		if folder := r.Folder(); folder != lastFolder {
			if i > 0 {
				sb.WriteString(lineBreak)
			}
			sb.WriteString(fmt.Sprintf("FOLDER: %s%s", folder, lineBreak))
			sb.WriteString(strings.Repeat("-", 80) + lineBreak)
			lastFolder = folder
		}
		buildRequestText(&sb, r.Item)
	}

	return sb.String()
}

// buildRequestText writes one request entry
func buildRequestText(sb *strings.Builder, item *model.RequestItem) {
	req := item.Request

	sb.WriteString(fmt.Sprintf("[%s] %s%s", req.Method, req.URL.Raw, lineBreak))
	sb.WriteString(fmt.Sprintf("  Name: %s%s", item.Name, lineBreak))

	auth := "inherit"
	if req.Auth != nil {
		auth = req.Auth.Type
	}
	sb.WriteString(fmt.Sprintf("  Auth: %s%s", auth, lineBreak))

	if req.Body != nil {
		if req.Body.Mode == model.BodyModeFormData {
			sb.WriteString("  Form Data:" + lineBreak)
			for _, p := range req.Body.FormData {
				sb.WriteString(fmt.Sprintf("    %-30s %v%s", truncate(p.Key, 30), p.Value, lineBreak))
			}
		} else {
			sb.WriteString("  Body:" + lineBreak)
			for _, line := range strings.Split(req.Body.Raw, "\n") {
				sb.WriteString("    " + line + lineBreak)
			}
		}
	}
	sb.WriteString(lineBreak)
}

// truncate truncates a string to a maximum length
func truncate(s string, maxLen int) string {
	if len(s) <= maxLen {
		return s
	}
	return s[:maxLen-3] + "..."
}
