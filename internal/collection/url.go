package collection

import (
	"strings"

	"route-postman/internal/model"
)

// BaseURLVariable is the placeholder every request URL starts with
const BaseURLVariable = "{{base_url}}"

// BuildURL turns a URI template into a Postman URL. Parameter segments such as
// "{id}" are kept verbatim.
func BuildURL(uri string) model.URL {
	return model.URL{
		Raw:  BaseURLVariable + "/" + uri,
		Host: []string{BaseURLVariable},
		Path: strings.Split(uri, "/"),
	}
}
