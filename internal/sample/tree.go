package sample

import (
	"bytes"
	"encoding/json"
	"strings"
)

// Object is a JSON object that remembers insertion order
type Object struct {
	keys   []string
	values map[string]any
}

// List is a JSON array. It is a pointer type so a representative element can
// be filled in after the list was placed in its parent.
type List struct {
	Items []any
}

// NewObject creates an empty ordered object
func NewObject() *Object {
	return &Object{values: make(map[string]any)}
}

// NewList creates an empty list
func NewList() *List {
	return &List{Items: make([]any, 0)}
}

// Set assigns key, keeping the original position when the key already exists
func (o *Object) Set(key string, value any) {
	if _, ok := o.values[key]; !ok {
		o.keys = append(o.keys, key)
	}
	o.values[key] = value
}

// Get returns the value stored under key
func (o *Object) Get(key string) (any, bool) {
	v, ok := o.values[key]
	return v, ok
}

// Keys returns the keys in insertion order
func (o *Object) Keys() []string {
	return append([]string(nil), o.keys...)
}

// Len returns the number of keys
func (o *Object) Len() int {
	return len(o.keys)
}

// MarshalJSON encodes the object with keys in insertion order
func (o *Object) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, k := range o.keys {
		if i > 0 {
			buf.WriteByte(',')
		}
		kb, err := marshalNoEscape(k)
		if err != nil {
			return nil, err
		}
		buf.Write(kb)
		buf.WriteByte(':')
		vb, err := marshalNoEscape(o.values[k])
		if err != nil {
			return nil, err
		}
		buf.Write(vb)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

// MarshalJSON encodes the list, never as null
func (l *List) MarshalJSON() ([]byte, error) {
	if l.Items == nil {
		return []byte("[]"), nil
	}
	return marshalNoEscape(l.Items)
}

func marshalNoEscape(v any) ([]byte, error) {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	if err := enc.Encode(v); err != nil {
		return nil, err
	}
	return bytes.TrimRight(buf.Bytes(), "\n"), nil
}

// Assign places value at field inside root. Plain dotted paths create
// intermediate objects; ".*" segments descend into a single representative
// list element.
func Assign(root *Object, field string, value any) {
	if strings.Contains(field, ".*") {
		assignWildcard(root, field, value)
		return
	}
	assignPath(root, field, value)
}

func assignPath(target *Object, path string, value any) {
	parts := strings.Split(path, ".")
	for _, part := range parts[:len(parts)-1] {
		target = childObject(target, part)
	}
	setValue(target, parts[len(parts)-1], value)
}

func assignWildcard(root *Object, field string, value any) {
	parts := strings.Split(field, ".*")

	list := listAt(root, parts[0])
	for _, mid := range parts[1 : len(parts)-1] {
		mid = strings.TrimPrefix(mid, ".")
		if mid == "" {
			list = nestedList(list)
			continue
		}
		list = listAt(representative(list), mid)
	}

	tail := strings.TrimPrefix(parts[len(parts)-1], ".")
	if tail == "" {
		// "tags.*": the value itself is the representative element
		if len(list.Items) == 0 {
			list.Items = append(list.Items, value)
		}
		return
	}
	assignPath(representative(list), tail, value)
}

// setValue stores value under key. An empty list (the "array" rule) never
// replaces a container that already holds data.
func setValue(target *Object, key string, value any) {
	if l, ok := value.(*List); ok && len(l.Items) == 0 {
		if existing, found := target.Get(key); found && !isEmptyContainer(existing) {
			switch existing.(type) {
			case *List, *Object:
				return
			}
		}
	}
	target.Set(key, value)
}

func childObject(parent *Object, key string) *Object {
	if existing, ok := parent.Get(key); ok {
		if obj, isObj := existing.(*Object); isObj {
			return obj
		}
	}
	obj := NewObject()
	parent.Set(key, obj)
	return obj
}

func listAt(root *Object, path string) *List {
	parts := strings.Split(path, ".")
	target := root
	for _, part := range parts[:len(parts)-1] {
		target = childObject(target, part)
	}

	key := parts[len(parts)-1]
	if existing, ok := target.Get(key); ok {
		if l, isList := existing.(*List); isList {
			return l
		}
	}
	l := NewList()
	target.Set(key, l)
	return l
}

// representative returns the single element object of list, creating it
func representative(list *List) *Object {
	if len(list.Items) > 0 {
		if obj, ok := list.Items[0].(*Object); ok {
			return obj
		}
		obj := NewObject()
		list.Items[0] = obj
		return obj
	}
	obj := NewObject()
	list.Items = append(list.Items, obj)
	return obj
}

// nestedList returns the representative element of list as a list ("a.*.*")
func nestedList(list *List) *List {
	if len(list.Items) > 0 {
		if inner, ok := list.Items[0].(*List); ok {
			return inner
		}
		inner := NewList()
		list.Items[0] = inner
		return inner
	}
	inner := NewList()
	list.Items = append(list.Items, inner)
	return inner
}

func isEmptyContainer(v any) bool {
	switch c := v.(type) {
	case *Object:
		return c.Len() == 0
	case *List:
		return len(c.Items) == 0
	}
	return false
}
