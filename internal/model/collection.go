package model

import (
	"bytes"
	"encoding/json"
	"errors"
)

// SchemaV21 identifies the Postman collection format we emit
const SchemaV21 = "https://schema.getpostman.com/json/collection/v2.1.0/collection.json"

// Auth types as understood by Postman
const (
	AuthTypeBearer = "bearer"
	AuthTypeBasic  = "basic"
	AuthTypeAPIKey = "apikey"
	AuthTypeNone   = "noauth"
)

// Body modes
const (
	BodyModeRaw      = "raw"
	BodyModeFormData = "formdata"
)

// Collection is the exported document root
type Collection struct {
	Info     Info       `json:"info"`
	Item     []Item     `json:"item"`
	Variable []Variable `json:"variable"`
	Auth     *Auth      `json:"auth,omitempty"`
}

// Info holds collection metadata
type Info struct {
	Name        string `json:"name"`
	Description string `json:"description"`
	Schema      string `json:"schema"`
}

// Variable is a collection-level variable
type Variable struct {
	Key         string `json:"key"`
	Value       string `json:"value"`
	Type        string `json:"type,omitempty"`
	Description string `json:"description,omitempty"`
}

// Item is either a Folder or a RequestItem. Exactly one side is set.
type Item struct {
	Folder  *Folder
	Request *RequestItem
}

// Folder groups child items
type Folder struct {
	Name  string `json:"name"`
	Items []Item `json:"item"`
}

// RequestItem is a leaf node carrying one request
type RequestItem struct {
	Name    string  `json:"name"`
	Request Request `json:"request"`
	Event   []Event `json:"event,omitempty"`
}

// Request describes a single HTTP request
type Request struct {
	Method string   `json:"method"`
	Header []Header `json:"header"`
	URL    URL      `json:"url"`
	Body   *Body    `json:"body,omitempty"`
	Auth   *Auth    `json:"auth,omitempty"`
}

// Header is a request header entry
type Header struct {
	Key   string `json:"key"`
	Value string `json:"value"`
	Type  string `json:"type"`
}

// URL is the structured request URL
type URL struct {
	Raw  string   `json:"raw"`
	Host []string `json:"host"`
	Path []string `json:"path"`
}

// Body is a request body. Raw is used in raw mode, FormData in formdata mode.
type Body struct {
	Mode     string
	Raw      string
	FormData []FormParam
	Options  *BodyOptions
}

// FormParam is one flattened form-data entry
type FormParam struct {
	Key   string `json:"key"`
	Value any    `json:"value"`
	Type  string `json:"type"`
}

// BodyOptions carries editor hints for the body
type BodyOptions struct {
	Raw *RawOptions `json:"raw,omitempty"`
}

// RawOptions tells Postman how to highlight a raw body
type RawOptions struct {
	Language string `json:"language"`
}

// Auth is an authentication block at collection or request level
type Auth struct {
	Type   string      `json:"type"`
	Bearer []AuthParam `json:"bearer,omitempty"`
	Basic  []AuthParam `json:"basic,omitempty"`
	APIKey []AuthParam `json:"apikey,omitempty"`
}

// AuthParam is one credential entry of an auth block
type AuthParam struct {
	Key   string `json:"key"`
	Value string `json:"value"`
	Type  string `json:"type,omitempty"`
}

// Event is a lifecycle script attached to a request
type Event struct {
	Listen string `json:"listen"`
	Script Script `json:"script"`
}

// Script is the executable part of an Event
type Script struct {
	Exec []string `json:"exec"`
	Type string   `json:"type"`
}

// NoAuth returns an auth block that disables inherited authentication
func NoAuth() *Auth {
	return &Auth{Type: AuthTypeNone}
}

// NewFolder creates an empty folder
func NewFolder(name string) *Folder {
	return &Folder{Name: name, Items: make([]Item, 0)}
}

// FolderItem wraps a folder as an Item
func FolderItem(f *Folder) Item {
	return Item{Folder: f}
}

// RequestNode wraps a request as an Item
func RequestNode(r *RequestItem) Item {
	return Item{Request: r}
}

// IsFolder reports whether the item is a folder
func (i Item) IsFolder() bool {
	return i.Folder != nil
}

// Name returns the display name of either side
func (i Item) Name() string {
	switch {
	case i.Folder != nil:
		return i.Folder.Name
	case i.Request != nil:
		return i.Request.Name
	}
	return ""
}

// MarshalJSON encodes whichever side is set
func (i Item) MarshalJSON() ([]byte, error) {
	switch {
	case i.Folder != nil:
		return marshalNoEscape(i.Folder)
	case i.Request != nil:
		return marshalNoEscape(i.Request)
	}
	return nil, errors.New("model: empty collection item")
}

// UnmarshalJSON decodes a request item when a "request" member exists, a folder otherwise
func (i *Item) UnmarshalJSON(data []byte) error {
	var probe struct {
		Request json.RawMessage `json:"request"`
	}
	if err := json.Unmarshal(data, &probe); err != nil {
		return err
	}

	if len(probe.Request) > 0 {
		var r RequestItem
		if err := json.Unmarshal(data, &r); err != nil {
			return err
		}
		*i = Item{Request: &r}
		return nil
	}

	var f Folder
	if err := json.Unmarshal(data, &f); err != nil {
		return err
	}
	if f.Items == nil {
		f.Items = make([]Item, 0)
	}
	*i = Item{Folder: &f}
	return nil
}

type bodyJSON struct {
	Mode     string       `json:"mode"`
	Raw      *string      `json:"raw,omitempty"`
	FormData *[]FormParam `json:"formdata,omitempty"`
	Options  *BodyOptions `json:"options,omitempty"`
}

// MarshalJSON always emits the member matching the mode, even when empty
func (b Body) MarshalJSON() ([]byte, error) {
	out := bodyJSON{Mode: b.Mode, Options: b.Options}
	switch b.Mode {
	case BodyModeFormData:
		params := b.FormData
		if params == nil {
			params = make([]FormParam, 0)
		}
		out.FormData = &params
	default:
		raw := b.Raw
		out.Raw = &raw
	}
	return marshalNoEscape(out)
}

// UnmarshalJSON decodes a body written by MarshalJSON
func (b *Body) UnmarshalJSON(data []byte) error {
	var in bodyJSON
	if err := json.Unmarshal(data, &in); err != nil {
		return err
	}
	*b = Body{Mode: in.Mode, Options: in.Options}
	if in.Raw != nil {
		b.Raw = *in.Raw
	}
	if in.FormData != nil {
		b.FormData = *in.FormData
	}
	return nil
}

// Walk visits every request depth-first, passing the folder names leading to it
func (c *Collection) Walk(fn func(path []string, r *RequestItem)) {
	walkItems(c.Item, nil, fn)
}

func walkItems(items []Item, path []string, fn func(path []string, r *RequestItem)) {
	for _, it := range items {
		if it.Folder != nil {
			next := append(append([]string(nil), path...), it.Folder.Name)
			walkItems(it.Folder.Items, next, fn)
			continue
		}
		if it.Request != nil {
			fn(path, it.Request)
		}
	}
}

// CountRequests returns the number of request leaves in the tree
func (c *Collection) CountRequests() int {
	n := 0
	c.Walk(func([]string, *RequestItem) { n++ })
	return n
}

// marshalNoEscape encodes v without HTML escaping so nested values match the
// outer encoder's output byte for byte
func marshalNoEscape(v any) ([]byte, error) {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	if err := enc.Encode(v); err != nil {
		return nil, err
	}
	return bytes.TrimRight(buf.Bytes(), "\n"), nil
}
