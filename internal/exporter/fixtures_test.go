package exporter

import (
	"strings"

	"route-postman/internal/model"
)

func testRequest(name, method, uri string, body *model.Body, auth *model.Auth) model.Item {
	return model.RequestNode(&model.RequestItem{
		Name: name,
		Request: model.Request{
			Method: method,
			Header: []model.Header{{Key: "Accept", Value: "application/json", Type: "text"}},
			URL: model.URL{
				Raw:  "{{base_url}}/" + uri,
				Host: []string{"{{base_url}}"},
				Path: strings.Split(uri, "/"),
			},
			Body: body,
			Auth: auth,
		},
	})
}

// testCollection builds:
//
//	users/
//	  admin/
//	    DELETE api/users/{id}
//	  POST api/users
//	  GET api/users
//	GET api/health
func testCollection() *model.Collection {
	bearer := &model.Auth{Type: model.AuthTypeBearer, Bearer: []model.AuthParam{{Key: "token", Value: "{{token}}"}}}

	admin := model.NewFolder("admin")
	admin.Items = append(admin.Items,
		testRequest("Destroy", "DELETE", "api/users/{id}", nil, bearer),
	)

	users := model.NewFolder("users")
	users.Items = append(users.Items,
		model.FolderItem(admin),
		testRequest("Store", "POST", "api/users",
			&model.Body{Mode: model.BodyModeRaw, Raw: "{\n    \"name\": \"\",\n    \"email\": \"user@user.com\"\n}"}, bearer),
		testRequest("Index", "GET", "api/users", nil, nil),
	)

	return &model.Collection{
		Info: model.Info{Name: "Shop", Description: "API Documentation", Schema: model.SchemaV21},
		Item: []model.Item{
			model.FolderItem(users),
			testRequest("Health", "GET", "api/health", nil, model.NoAuth()),
		},
		Variable: []model.Variable{{Key: "base_url", Value: "http://localhost"}},
		Auth:     bearer,
	}
}
