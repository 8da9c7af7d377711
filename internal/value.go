package internal

import "encoding/json"

// Kind enumerates the shapes a decoded store value can take.
type Kind int

const (
	KindNull Kind = iota
	KindString
	KindNumber
	KindBool
	KindList
	KindMap
)

// Value is a decoded record value: a small tagged tree over the JSON
// shapes. Accessors never panic; a lookup against the wrong kind reports
// failure through the ok result instead.
type Value struct {
	kind    Kind
	str     string
	num     float64
	boolean bool
	list    []Value
	entries map[string]Value
}

// DecodeValue decodes a serialized record value into a Value tree.
func DecodeValue(raw []byte) (Value, error) {
	var any interface{}
	if err := json.Unmarshal(raw, &any); err != nil {
		return Value{}, err
	}
	return fromAny(any), nil
}

func fromAny(v interface{}) Value {
	switch t := v.(type) {
	case string:
		return Value{kind: KindString, str: t}
	case float64:
		return Value{kind: KindNumber, num: t}
	case bool:
		return Value{kind: KindBool, boolean: t}
	case []interface{}:
		list := make([]Value, 0, len(t))
		for _, item := range t {
			list = append(list, fromAny(item))
		}
		return Value{kind: KindList, list: list}
	case map[string]interface{}:
		entries := make(map[string]Value, len(t))
		for k, item := range t {
			entries[k] = fromAny(item)
		}
		return Value{kind: KindMap, entries: entries}
	default:
		return Value{kind: KindNull}
	}
}

// Kind returns the shape of the value.
func (v Value) Kind() Kind {
	return v.kind
}

// AsString returns the string payload when the value is a string.
func (v Value) AsString() (string, bool) {
	return v.str, v.kind == KindString
}

// AsNumber returns the numeric payload when the value is a number.
func (v Value) AsNumber() (float64, bool) {
	return v.num, v.kind == KindNumber
}

// AsBool returns the boolean payload when the value is a bool.
func (v Value) AsBool() (bool, bool) {
	return v.boolean, v.kind == KindBool
}

// AsList returns the element slice when the value is a list.
func (v Value) AsList() ([]Value, bool) {
	return v.list, v.kind == KindList
}

// Get looks up a key when the value is a mapping.
func (v Value) Get(key string) (Value, bool) {
	if v.kind != KindMap {
		return Value{}, false
	}
	child, ok := v.entries[key]
	return child, ok
}

// Has reports whether the mapping contains any of the given keys.
func (v Value) Has(keys ...string) bool {
	for _, key := range keys {
		if _, ok := v.Get(key); ok {
			return true
		}
	}
	return false
}

// StringAt returns the first non-empty string found under the given keys.
func (v Value) StringAt(keys ...string) string {
	for _, key := range keys {
		child, ok := v.Get(key)
		if !ok {
			continue
		}
		if s, ok := child.AsString(); ok && s != "" {
			return s
		}
	}
	return ""
}

// NumberAt returns the first number found under the given keys.
func (v Value) NumberAt(keys ...string) (float64, bool) {
	for _, key := range keys {
		child, ok := v.Get(key)
		if !ok {
			continue
		}
		if n, ok := child.AsNumber(); ok {
			return n, true
		}
	}
	return 0, false
}

// ListAt returns the list under the given key, or nil.
func (v Value) ListAt(key string) []Value {
	child, ok := v.Get(key)
	if !ok {
		return nil
	}
	list, _ := child.AsList()
	return list
}

// IsEmpty reports whether the value carries no content: null, an empty
// string, an empty list, or an empty mapping. Numbers and booleans are
// never empty.
func (v Value) IsEmpty() bool {
	switch v.kind {
	case KindNull:
		return true
	case KindString:
		return v.str == ""
	case KindList:
		return len(v.list) == 0
	case KindMap:
		return len(v.entries) == 0
	default:
		return false
	}
}
