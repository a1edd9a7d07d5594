package sample

import (
	"bytes"
	"encoding/json"
	"fmt"
	"sort"

	"route-postman/internal/model"
)

// Flatten turns a nested sample document into form-data pairs using
// parent[child][index] keys, depth first, in insertion order. Empty
// containers produce no entries.
func Flatten(doc *Object) []model.FormParam {
	result := make([]model.FormParam, 0)
	return flattenObject(doc, "", result)
}

func flattenObject(o *Object, prefix string, result []model.FormParam) []model.FormParam {
	for _, key := range o.keys {
		newKey := key
		if prefix != "" {
			newKey = fmt.Sprintf("%s[%s]", prefix, key)
		}
		result = flattenValue(o.values[key], newKey, result)
	}
	return result
}

func flattenValue(value any, key string, result []model.FormParam) []model.FormParam {
	switch v := value.(type) {
	case *Object:
		return flattenObject(v, key, result)
	case *List:
		for i, item := range v.Items {
			result = flattenValue(item, fmt.Sprintf("%s[%d]", key, i), result)
		}
		return result
	case []any:
		return flattenValue(&List{Items: v}, key, result)
	case map[string]any:
		// Configured overrides decode to plain maps; keys have no source order
		keys := make([]string, 0, len(v))
		for k := range v {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		for _, k := range keys {
			result = flattenValue(v[k], fmt.Sprintf("%s[%s]", key, k), result)
		}
		return result
	}
	return append(result, model.FormParam{Key: key, Value: value, Type: "text"})
}

// indent pretty-prints compact JSON with four spaces
func indent(compact []byte) (string, error) {
	var out bytes.Buffer
	if err := json.Indent(&out, compact, "", "    "); err != nil {
		return "", err
	}
	return out.String(), nil
}
