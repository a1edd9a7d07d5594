package html

import (
	"bytes"
	"fmt"
	"html/template"
	"strings"
	"time"

	"route-postman/internal/config"
	"route-postman/internal/exporter/common"
	"route-postman/internal/model"
)

type HTMLExporter struct {
	now func() time.Time
}

func NewHTMLExporter() *HTMLExporter {
	return &HTMLExporter{now: time.Now}
}

// Data structures for the collection report template
type ReportData struct {
	Name          string
	Description   string
	GeneratedAt   string
	TotalRequests int
	TotalFolders  int
	AuthType      string
	Groups        []FolderGroup
}

// FolderGroup is one folder path with the requests directly inside it
type FolderGroup struct {
	Folder   string
	Requests []RequestView
}

// RequestView is the template-facing shape of a request
type RequestView struct {
	Name     string
	Method   string
	URL      string
	Auth     string
	Headers  []model.Header
	RawBody  string
	FormData []model.FormParam
}

func (e *HTMLExporter) Name() string {
	return "html"
}

func (e *HTMLExporter) Export(doc *model.Collection, cfg *config.Config) (string, error) {
	data := e.buildReport(doc)

	tmpl, err := template.New("collection-report").Funcs(template.FuncMap{
		"methodColor": getMethodColor,
		"methodBadge": getMethodBadge,
	}).Parse(CollectionReportTemplate)
	if err != nil {
		return "", err
	}

	var buf bytes.Buffer
	if err := tmpl.Execute(&buf, data); err != nil {
		return "", fmt.Errorf("failed to render HTML report: %w", err)
	}

	outputFile := cfg.GetOutputPath("html")
	if err := common.WriteFileAtomic(outputFile, buf.Bytes()); err != nil {
		return "", err
	}
	return outputFile, nil
}

func (e *HTMLExporter) buildReport(doc *model.Collection) ReportData {
	rows := common.SortByPath(common.FlattenCollection(doc))

	// Group consecutive rows by folder; the sort keeps each path contiguous
	var groups []FolderGroup
	for _, r := range rows {
		folder := r.Folder()
		if len(groups) == 0 || groups[len(groups)-1].Folder != folder {
			groups = append(groups, FolderGroup{Folder: folder})
		}
		last := &groups[len(groups)-1]
		last.Requests = append(last.Requests, toView(r.Item))
	}

	authType := model.AuthTypeNone
	if doc.Auth != nil {
		authType = doc.Auth.Type
	}

	return ReportData{
		Name:          doc.Info.Name,
		Description:   doc.Info.Description,
		GeneratedAt:   e.now().Format("2006-01-02 15:04:05"),
		TotalRequests: len(rows),
		TotalFolders:  common.CountFolders(doc.Item),
		AuthType:      authType,
		Groups:        groups,
	}
}

func toView(item *model.RequestItem) RequestView {
	req := item.Request
	view := RequestView{
		Name:    item.Name,
		Method:  req.Method,
		URL:     req.URL.Raw,
		Auth:    "inherit",
		Headers: req.Header,
	}
	if req.Auth != nil {
		view.Auth = req.Auth.Type
	}
	if req.Body != nil {
		if req.Body.Mode == model.BodyModeFormData {
			view.FormData = req.Body.FormData
		} else {
			view.RawBody = req.Body.Raw
		}
	}
	return view
}

// getMethodColor returns CSS color class for HTTP method
func getMethodColor(method string) string {
	switch strings.ToUpper(method) {
	case "GET":
		return "method-get"
	case "POST":
		return "method-post"
	case "PUT":
		return "method-put"
	case "DELETE":
		return "method-delete"
	case "PATCH":
		return "method-patch"
	default:
		return "method-default"
	}
}

// getMethodBadge returns badge text for HTTP method
func getMethodBadge(method string) string {
	return strings.ToUpper(method)
}
