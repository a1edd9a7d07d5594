package html

import (
	"os"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"route-postman/internal/config"
	"route-postman/internal/model"
)

func item(name, method, raw string, body *model.Body, auth *model.Auth) model.Item {
	return model.RequestNode(&model.RequestItem{
		Name: name,
		Request: model.Request{
			Method: method,
			Header: []model.Header{{Key: "Accept", Value: "application/json", Type: "text"}},
			URL:    model.URL{Raw: raw},
			Body:   body,
			Auth:   auth,
		},
	})
}

func sampleCollection() *model.Collection {
	posts := model.NewFolder("posts")
	posts.Items = append(posts.Items,
		item("Store", "POST", "{{base_url}}/api/posts",
			&model.Body{Mode: model.BodyModeRaw, Raw: `{"title": "<b>"}`}, nil),
		item("Upload", "POST", "{{base_url}}/api/posts/upload",
			&model.Body{Mode: model.BodyModeFormData, FormData: []model.FormParam{{Key: "cover", Value: "", Type: "text"}}}, nil),
	)

	return &model.Collection{
		Info: model.Info{Name: "Blog", Description: "API Documentation"},
		Item: []model.Item{
			model.FolderItem(posts),
			item("Login", "POST", "{{base_url}}/api/login", nil, model.NoAuth()),
		},
		Auth: &model.Auth{Type: model.AuthTypeBearer},
	}
}

func TestBuildReport(t *testing.T) {
	e := NewHTMLExporter()
	e.now = func() time.Time { return time.Date(2024, 3, 5, 9, 7, 3, 0, time.UTC) }

	data := e.buildReport(sampleCollection())

	assert.Equal(t, "Blog", data.Name)
	assert.Equal(t, "2024-03-05 09:07:03", data.GeneratedAt)
	assert.Equal(t, 3, data.TotalRequests)
	assert.Equal(t, 1, data.TotalFolders)
	assert.Equal(t, model.AuthTypeBearer, data.AuthType)

	require.Len(t, data.Groups, 2)
	assert.Equal(t, "-", data.Groups[0].Folder)
	assert.Equal(t, "noauth", data.Groups[0].Requests[0].Auth)

	posts := data.Groups[1]
	assert.Equal(t, "posts", posts.Folder)
	require.Len(t, posts.Requests, 2)
	assert.Equal(t, "inherit", posts.Requests[0].Auth)
	assert.Equal(t, `{"title": "<b>"}`, posts.Requests[0].RawBody)
	assert.Empty(t, posts.Requests[1].RawBody)
	assert.Len(t, posts.Requests[1].FormData, 1)
}

func TestHTMLExport(t *testing.T) {
	cfg := config.Default()
	cfg.Output.Dir = t.TempDir()

	path, err := NewHTMLExporter().Export(sampleCollection(), cfg)
	require.NoError(t, err)
	assert.Equal(t, cfg.GetOutputPath("html"), path)

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	page := string(data)

	assert.True(t, strings.HasPrefix(page, "<!DOCTYPE html>"))
	assert.Contains(t, page, `<h2 class="folder-title">posts</h2>`)
	assert.Contains(t, page, `method-badge method-post`)
	assert.Contains(t, page, "{{base_url}}/api/posts/upload")
	assert.Contains(t, page, `<span class="auth-none">none</span>`)

	// Sample bodies are escaped
	assert.Contains(t, page, "&lt;b&gt;")
	assert.NotContains(t, page, `"<b>"`)
}

func TestHTMLExportEmptyCollection(t *testing.T) {
	cfg := config.Default()
	cfg.Output.Dir = t.TempDir()

	path, err := NewHTMLExporter().Export(&model.Collection{Info: model.Info{Name: "Empty"}}, cfg)
	require.NoError(t, err)

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), "No requests found")
}

func TestMethodColor(t *testing.T) {
	assert.Equal(t, "method-get", getMethodColor("get"))
	assert.Equal(t, "method-delete", getMethodColor("DELETE"))
	assert.Equal(t, "method-default", getMethodColor("HEAD"))
	assert.Equal(t, "PATCH", getMethodBadge("patch"))
}
