package template

import (
	"encoding/json"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// LoadConfig reads and parses the template file at path.
//
// Returns:
//   - *Config: The decoded template
//   - error: ErrRead if the file cannot be read, ErrParse if it is not a YAML mapping
func LoadConfig(path string) (*Config, error) {
	if path == "" {
		path = DefaultPath
	}

	info, err := os.Stat(path)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrRead, err)
	}
	if info.IsDir() {
		return nil, fmt.Errorf("%w: %s is a directory", ErrRead, path)
	}
	if info.Size() > MaxFileSize {
		return nil, fmt.Errorf("%w: %s exceeds %d bytes", ErrRead, path, MaxFileSize)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrRead, err)
	}

	cfg, err := Parse(data)
	if err != nil {
		return nil, err
	}
	cfg.Path = path

	return cfg, nil
}

// Parse decodes a template document from raw YAML bytes.
func Parse(data []byte) (*Config, error) {
	var doc any
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrParse, err)
	}
	if doc == nil {
		return nil, fmt.Errorf("%w: document is empty", ErrParse)
	}

	root, ok := normalize(doc).(map[string]any)
	if !ok {
		return nil, fmt.Errorf("%w: top level must be a mapping, got %T", ErrParse, doc)
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrParse, err)
	}
	cfg.Document = root

	return &cfg, nil
}

// Serialize returns the document encoded as a JSON string, the form the
// registry expects in the "yaml" field of validate and publish requests.
func (c *Config) Serialize() (string, error) {
	data, err := json.Marshal(c.Document)
	if err != nil {
		return "", fmt.Errorf("failed to serialize template: %w", err)
	}
	return string(data), nil
}

// normalize converts maps with non-string keys into map[string]any so the
// document can be encoded as JSON.
func normalize(v any) any {
	switch t := v.(type) {
	case map[string]any:
		for k, child := range t {
			t[k] = normalize(child)
		}
		return t
	case map[any]any:
		out := make(map[string]any, len(t))
		for k, child := range t {
			out[fmt.Sprint(k)] = normalize(child)
		}
		return out
	case []any:
		for i, child := range t {
			t[i] = normalize(child)
		}
		return t
	default:
		return v
	}
}
