package common

import "route-postman/internal/model"

// FlattenedRequest is one request with the folder path leading to it
type FlattenedRequest struct {
	Folders []string
	Item    *model.RequestItem
	Indent  int // Nesting depth, 0 for root-level requests
}

// Folder returns the folder path joined with " / ", or "-" at root level
func (r *FlattenedRequest) Folder() string {
	if len(r.Folders) == 0 {
		return "-"
	}
	path := r.Folders[0]
	for _, f := range r.Folders[1:] {
		path += " / " + f
	}
	return path
}

// TopFolder returns the first folder of the path, empty at root level
func (r *FlattenedRequest) TopFolder() string {
	if len(r.Folders) == 0 {
		return ""
	}
	return r.Folders[0]
}

// FlattenCollection lists every request depth first in document order
func FlattenCollection(doc *model.Collection) []*FlattenedRequest {
	var rows []*FlattenedRequest
	doc.Walk(func(path []string, r *model.RequestItem) {
		rows = append(rows, &FlattenedRequest{
			Folders: path,
			Item:    r,
			Indent:  len(path),
		})
	})
	return rows
}

// CountFolders returns the number of folders at every level of the tree
func CountFolders(items []model.Item) int {
	n := 0
	for _, it := range items {
		if it.Folder != nil {
			n += 1 + CountFolders(it.Folder.Items)
		}
	}
	return n
}
