package word

import (
	"archive/zip"
	"bytes"
	"testing"
	"time"

	"github.com/nguyenthenguyen/docx"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"route-postman/internal/config"
	"route-postman/internal/exporter/common"
	"route-postman/internal/model"
)

func sampleCollection() *model.Collection {
	users := model.NewFolder("users")
	users.Items = append(users.Items,
		model.RequestNode(&model.RequestItem{
			Name: "Store",
			Request: model.Request{
				Method: "POST",
				URL:    model.URL{Raw: "{{base_url}}/api/users"},
				Body:   &model.Body{Mode: model.BodyModeRaw, Raw: "{\n    \"name\": \"\"\n}"},
			},
		}),
		model.RequestNode(&model.RequestItem{
			Name: "Avatar",
			Request: model.Request{
				Method: "POST",
				URL:    model.URL{Raw: "{{base_url}}/api/users/avatar"},
				Body:   &model.Body{Mode: model.BodyModeFormData, FormData: []model.FormParam{{Key: "file", Value: "", Type: "text"}}},
				Auth:   model.NoAuth(),
			},
		}),
	)

	return &model.Collection{
		Info: model.Info{Name: "Shop", Description: "API Documentation"},
		Item: []model.Item{
			model.FolderItem(users),
			model.RequestNode(&model.RequestItem{
				Name:    "Health",
				Request: model.Request{Method: "GET", URL: model.URL{Raw: "{{base_url}}/api/health"}},
			}),
		},
	}
}

func TestBuildTemplate(t *testing.T) {
	data, err := buildTemplate()
	require.NoError(t, err)

	zr, err := zip.NewReader(bytes.NewReader(data), int64(len(data)))
	require.NoError(t, err)

	names := make([]string, 0, len(zr.File))
	for _, f := range zr.File {
		names = append(names, f.Name)
	}
	assert.Contains(t, names, "word/document.xml")
	assert.Contains(t, names, "[Content_Types].xml")
}

func TestBuildContent(t *testing.T) {
	doc := sampleCollection()
	content := buildContent(doc, common.SortByPath(common.FlattenCollection(doc)))

	assert.Contains(t, content, "Collection Auth: noauth")
	assert.Contains(t, content, "FOLDER: users")
	assert.Contains(t, content, "FOLDER: -")
	assert.Contains(t, content, "[POST] {{base_url}}/api/users"+lineBreak)
	assert.Contains(t, content, "  Auth: noauth")
	assert.Contains(t, content, "  Form Data:")
	assert.Contains(t, content, `    "name": ""`)
	assert.NotContains(t, content, "\n\n")
}

func TestWordExport(t *testing.T) {
	cfg := config.Default()
	cfg.Output.Dir = t.TempDir()

	e := NewWordExporter()
	e.now = func() time.Time { return time.Date(2024, 3, 5, 9, 7, 3, 0, time.UTC) }

	path, err := e.Export(sampleCollection(), cfg)
	require.NoError(t, err)
	assert.Equal(t, cfg.GetOutputPath("docx"), path)

	r, err := docx.ReadDocxFile(path)
	require.NoError(t, err)
	defer r.Close()

	content := r.Editable().GetContent()
	assert.Contains(t, content, "Shop")
	assert.Contains(t, content, "2024-03-05 09:07:03")
	assert.Contains(t, content, ">3<")
	assert.Contains(t, content, "REQUEST INDEX")
	assert.NotContains(t, content, "{{TotalRequests}}")
	assert.NotContains(t, content, "{{Content}}")
}
