package rules

import (
	"fmt"
	"strconv"
	"strings"
)

func formatPoints(v float64) string {
	return strconv.FormatFloat(v, 'g', -1, 64)
}

// pathRef renders a JSONPath-style location for a paths entry.
func pathRef(parts ...string) string {
	var sb strings.Builder
	sb.WriteString("$")
	for _, p := range parts {
		if strings.ContainsAny(p, "/{}-") {
			fmt.Fprintf(&sb, "['%s']", p)
		} else {
			sb.WriteString(".")
			sb.WriteString(p)
		}
	}
	return sb.String()
}

// queryParams collects the names of query parameters declared on an
// operation, tolerating absent or malformed parameter lists.
func queryParams(op *Spec) []string {
	var names []string
	for _, p := range op.Get("parameters").Items() {
		if p.Get("in").Str() != "query" {
			continue
		}
		if name := p.Get("name").Str(); name != "" {
			names = append(names, name)
		}
	}
	return names
}

// headerParams collects the names of header parameters on an operation.
func headerParams(op *Spec) []string {
	var names []string
	for _, p := range op.Get("parameters").Items() {
		if p.Get("in").Str() != "header" {
			continue
		}
		if name := p.Get("name").Str(); name != "" {
			names = append(names, name)
		}
	}
	return names
}

// isCollectionPath reports whether a path looks like a list endpoint —
// it does not end in a path parameter segment.
func isCollectionPath(path string) bool {
	segs := strings.Split(strings.Trim(path, "/"), "/")
	if len(segs) == 0 {
		return false
	}
	last := segs[len(segs)-1]
	return !strings.HasPrefix(last, "{")
}

// proportional scales max by the ratio of ok to total, with full marks
// when there is nothing to judge.
func proportional(max float64, ok, total int) float64 {
	if total == 0 {
		return max
	}
	return max * float64(ok) / float64(total)
}
