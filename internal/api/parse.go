package api

import (
	"bytes"
	"encoding/json"
	"strconv"
	"strings"
	"time"
)

// Shape records which of the accepted forms a list response arrived in.
type Shape int

const (
	ShapeEmpty Shape = iota
	ShapeArray
	ShapeEnvelope
)

func (s Shape) String() string {
	switch s {
	case ShapeArray:
		return "array"
	case ShapeEnvelope:
		return "envelope"
	}
	return "empty"
}

// RawList is a list response normalized from either a bare array or an
// object wrapping the array under one of a few known keys.
type RawList struct {
	Shape Shape
	Key   string
	Items []object
}

func decodeList(body json.RawMessage, keys ...string) (*RawList, error) {
	trimmed := bytes.TrimSpace(body)
	if len(trimmed) == 0 || bytes.Equal(trimmed, []byte("null")) {
		return &RawList{Shape: ShapeEmpty}, nil
	}

	switch trimmed[0] {
	case '[':
		items, err := decodeObjects(trimmed)
		if err != nil {
			return nil, err
		}
		return &RawList{Shape: ShapeArray, Items: items}, nil
	case '{':
		var root object
		if err := json.Unmarshal(trimmed, &root); err != nil {
			return nil, err
		}
		for _, key := range keys {
			raw, ok := root.raw(key)
			if !ok {
				continue
			}
			items, err := decodeObjects(raw)
			if err != nil {
				return nil, err
			}
			return &RawList{Shape: ShapeEnvelope, Key: key, Items: items}, nil
		}
		return &RawList{Shape: ShapeEmpty}, nil
	}
	return nil, &ShapeError{Want: "array or {" + strings.Join(keys, "|") + ": [...]}"}
}

// decodeObjects keeps only the object elements of a JSON array.
func decodeObjects(raw json.RawMessage) ([]object, error) {
	var elems []json.RawMessage
	if err := json.Unmarshal(raw, &elems); err != nil {
		return nil, err
	}
	items := make([]object, 0, len(elems))
	for _, e := range elems {
		var o object
		if err := json.Unmarshal(e, &o); err != nil || o == nil {
			continue
		}
		items = append(items, o)
	}
	return items, nil
}

// object is a decoded JSON object whose values are resolved through a
// precedence list of keys: the first key holding a usable value wins.
type object map[string]json.RawMessage

func (o object) raw(keys ...string) (json.RawMessage, bool) {
	for _, k := range keys {
		v, ok := o[k]
		if !ok {
			continue
		}
		if t := bytes.TrimSpace(v); len(t) == 0 || bytes.Equal(t, []byte("null")) {
			continue
		}
		return v, true
	}
	return nil, false
}

func (o object) numOK(keys ...string) (int, bool) {
	for _, k := range keys {
		v, ok := o.raw(k)
		if !ok {
			continue
		}
		if n, ok := parseInt(v); ok {
			return int(n), true
		}
	}
	return 0, false
}

func (o object) num(keys ...string) int {
	n, _ := o.numOK(keys...)
	return n
}

func (o object) numPtr(keys ...string) *int {
	n, ok := o.numOK(keys...)
	if !ok {
		return nil
	}
	return &n
}

func (o object) id(keys ...string) uint64 {
	for _, k := range keys {
		v, ok := o.raw(k)
		if !ok {
			continue
		}
		if n, ok := parseUint(v); ok {
			return n
		}
	}
	return 0
}

func (o object) text(keys ...string) string {
	for _, k := range keys {
		v, ok := o.raw(k)
		if !ok {
			continue
		}
		var s string
		if err := json.Unmarshal(v, &s); err == nil {
			return s
		}
	}
	return ""
}

func (o object) child(keys ...string) (object, bool) {
	v, ok := o.raw(keys...)
	if !ok {
		return nil, false
	}
	var child object
	if err := json.Unmarshal(v, &child); err != nil || child == nil {
		return nil, false
	}
	return child, true
}

func (o object) children(keys ...string) []object {
	v, ok := o.raw(keys...)
	if !ok {
		return nil
	}
	items, err := decodeObjects(v)
	if err != nil {
		return nil
	}
	return items
}

func (o object) nums(keys ...string) []int {
	v, ok := o.raw(keys...)
	if !ok {
		return nil
	}
	var elems []json.RawMessage
	if err := json.Unmarshal(v, &elems); err != nil {
		return nil
	}
	out := make([]int, 0, len(elems))
	for _, e := range elems {
		if n, ok := parseInt(e); ok {
			out = append(out, int(n))
		}
	}
	return out
}

// unix reads seconds since the epoch; zero time when absent.
func (o object) unix(keys ...string) time.Time {
	n, ok := o.numOK(keys...)
	if !ok || n <= 0 {
		return time.Time{}
	}
	return time.Unix(int64(n), 0).UTC()
}

// team reads a side that upstream encodes as 0/1 or as a string ending in
// the team digit ("Team1", "k_ECitadelLobbyTeam_Team1").
func (o object) team(keys ...string) *int {
	if n := o.numPtr(keys...); n != nil {
		return n
	}
	s := o.text(keys...)
	if s == "" {
		return nil
	}
	switch s[len(s)-1] {
	case '0':
		n := 0
		return &n
	case '1':
		n := 1
		return &n
	}
	return nil
}

func parseInt(raw json.RawMessage) (int64, bool) {
	s, ok := numberLiteral(raw)
	if !ok {
		return 0, false
	}
	if n, err := strconv.ParseInt(s, 10, 64); err == nil {
		return n, true
	}
	if f, err := strconv.ParseFloat(s, 64); err == nil {
		return int64(f), true
	}
	if b, err := strconv.ParseBool(s); err == nil {
		if b {
			return 1, true
		}
		return 0, true
	}
	return 0, false
}

func parseUint(raw json.RawMessage) (uint64, bool) {
	s, ok := numberLiteral(raw)
	if !ok {
		return 0, false
	}
	if n, err := strconv.ParseUint(s, 10, 64); err == nil {
		return n, true
	}
	return 0, false
}

// numberLiteral unwraps numbers that upstream sometimes sends as strings.
func numberLiteral(raw json.RawMessage) (string, bool) {
	s := strings.TrimSpace(string(raw))
	if s == "" || s == "null" {
		return "", false
	}
	if s[0] == '"' {
		var str string
		if err := json.Unmarshal(raw, &str); err != nil {
			return "", false
		}
		s = strings.TrimSpace(str)
	}
	return s, s != ""
}
