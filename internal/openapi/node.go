// Package openapi loads OpenAPI documents into a nil-safe tree.
//
// Rule checks traverse specifications that are routinely incomplete:
// missing paths, null headers, broken $ref targets. Instead of handing
// rules a raw map[string]any and hoping every access is guarded, the
// package wraps the parsed document in Node — every accessor tolerates
// absent or wrongly-typed structure and returns a zero Node, so "handle
// missing gracefully" is enforced by the type rather than by convention.
package openapi

import (
	"sort"
	"strings"
)

// Node is one position in a parsed specification tree. A nil or
// mismatched access yields the zero Node, which reports absent for
// every accessor. Node values are immutable once parsed.
type Node struct {
	value any
}

// Wrap adapts an already-decoded document (map[string]any and friends)
// into a Node.
func Wrap(value any) *Node {
	return &Node{value: normalizeTree(value)}
}

// IsAbsent reports whether the node holds no value.
func (n *Node) IsAbsent() bool {
	return n == nil || n.value == nil
}

// Get descends into a map key. Absent or non-map nodes yield an
// absent Node, never a panic.
func (n *Node) Get(key string) *Node {
	if n.IsAbsent() {
		return &Node{}
	}
	m, ok := n.value.(map[string]any)
	if !ok {
		return &Node{}
	}
	v, ok := m[key]
	if !ok {
		return &Node{}
	}
	return &Node{value: v}
}

// Path descends through a sequence of map keys.
func (n *Node) Path(keys ...string) *Node {
	cur := n
	for _, k := range keys {
		cur = cur.Get(k)
	}
	return cur
}

// Map returns the node's children when it is an object, with keys in
// sorted order for deterministic iteration. Absent or non-object nodes
// return nil.
func (n *Node) Map() map[string]*Node {
	if n.IsAbsent() {
		return nil
	}
	m, ok := n.value.(map[string]any)
	if !ok {
		return nil
	}
	out := make(map[string]*Node, len(m))
	for k, v := range m {
		out[k] = &Node{value: v}
	}
	return out
}

// Keys returns the sorted keys of an object node, or nil.
func (n *Node) Keys() []string {
	if n.IsAbsent() {
		return nil
	}
	m, ok := n.value.(map[string]any)
	if !ok {
		return nil
	}
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// Items returns the node's elements when it is an array, or nil.
func (n *Node) Items() []*Node {
	if n.IsAbsent() {
		return nil
	}
	s, ok := n.value.([]any)
	if !ok {
		return nil
	}
	out := make([]*Node, len(s))
	for i, v := range s {
		out[i] = &Node{value: v}
	}
	return out
}

// Str returns the node's string value, or "" when absent or not a string.
func (n *Node) Str() string {
	if n.IsAbsent() {
		return ""
	}
	s, _ := n.value.(string)
	return s
}

// Bool returns the node's boolean value, or false.
func (n *Node) Bool() bool {
	if n.IsAbsent() {
		return false
	}
	b, _ := n.value.(bool)
	return b
}

// Float returns the node's numeric value, or 0. YAML and JSON decoders
// disagree on integer representation, so both int and float64 convert.
func (n *Node) Float() float64 {
	if n.IsAbsent() {
		return 0
	}
	switch v := n.value.(type) {
	case float64:
		return v
	case int:
		return float64(v)
	case int64:
		return float64(v)
	}
	return 0
}

// Has reports whether a map key exists on this node.
func (n *Node) Has(key string) bool {
	if n.IsAbsent() {
		return false
	}
	m, ok := n.value.(map[string]any)
	if !ok {
		return false
	}
	_, found := m[key]
	return found
}

// Value exposes the underlying decoded value. Used by the identity
// package for canonical serialization; rules should prefer the typed
// accessors.
func (n *Node) Value() any {
	if n == nil {
		return nil
	}
	return n.value
}

// Paths returns the spec's paths object keys in sorted order. A missing
// or malformed paths object yields nil — the documented "no paths"
// baseline input for every rule.
func (n *Node) Paths() []string {
	return n.Get("paths").Keys()
}

// Operations visits every HTTP operation under paths, in deterministic
// path-then-method order. The visitor receives the path, lowercase
// method, and the operation node.
func (n *Node) Operations(visit func(path, method string, op *Node)) {
	paths := n.Get("paths")
	for _, p := range paths.Keys() {
		item := paths.Get(p)
		for _, m := range item.Keys() {
			if !isHTTPMethod(m) {
				continue
			}
			visit(p, strings.ToLower(m), item.Get(m))
		}
	}
}

var httpMethods = map[string]bool{
	"get": true, "put": true, "post": true, "delete": true,
	"options": true, "head": true, "patch": true, "trace": true,
}

func isHTTPMethod(m string) bool {
	return httpMethods[strings.ToLower(m)]
}

// normalizeTree converts YAML-decoded map[any]any containers (yaml.v2
// legacy shape, still produced by some inputs) into map[string]any so
// the accessors and canonical hashing see one representation.
func normalizeTree(v any) any {
	switch t := v.(type) {
	case map[string]any:
		out := make(map[string]any, len(t))
		for k, val := range t {
			out[k] = normalizeTree(val)
		}
		return out
	case map[any]any:
		out := make(map[string]any, len(t))
		for k, val := range t {
			ks, ok := k.(string)
			if !ok {
				continue
			}
			out[ks] = normalizeTree(val)
		}
		return out
	case []any:
		out := make([]any, len(t))
		for i, val := range t {
			out[i] = normalizeTree(val)
		}
		return out
	default:
		return v
	}
}
