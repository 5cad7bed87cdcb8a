package openapi

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"
)

// Parse decodes raw OpenAPI content (YAML or JSON) into a Node.
// JSON is valid YAML, so a single yaml.v3 pass covers both; a leading
// '{' gets a JSON-first attempt to preserve json number semantics.
func Parse(content []byte) (*Node, error) {
	trimmed := strings.TrimSpace(string(content))
	if trimmed == "" {
		return nil, fmt.Errorf("openapi: empty document")
	}

	if strings.HasPrefix(trimmed, "{") {
		var doc any
		if err := json.Unmarshal(content, &doc); err == nil {
			return Wrap(doc), nil
		}
	}

	var doc any
	if err := yaml.Unmarshal(content, &doc); err != nil {
		return nil, fmt.Errorf("openapi: parsing document: %w", err)
	}
	if _, ok := doc.(map[string]any); !ok {
		if _, legacy := doc.(map[any]any); !legacy {
			return nil, fmt.Errorf("openapi: document root is not an object")
		}
	}
	return Wrap(doc), nil
}

// LoadFile reads and parses a specification from disk.
func LoadFile(path string) (*Node, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("openapi: reading %s: %w", path, err)
	}
	n, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("openapi: %s: %w", path, err)
	}
	return n, nil
}
