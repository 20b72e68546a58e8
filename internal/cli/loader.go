package cli

import (
	"fmt"
	"io"
	"os"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/Johnobhoy88/loki-interceptor-sub004/internal/catalogue"
	"github.com/Johnobhoy88/loki-interceptor-sub004/internal/document"
)

// loadDocument reads a document file. "-" reads stdin.
func loadDocument(path string) (document.Document, error) {
	var data []byte
	var err error
	if path == "-" {
		data, err = io.ReadAll(os.Stdin)
	} else {
		data, err = os.ReadFile(path)
	}
	if err != nil {
		return document.Document{}, fmt.Errorf("read document %s: %w", path, err)
	}
	return document.New(string(data)), nil
}

// loadContext reads a YAML file of substitution variables for template
// payloads. Values must be scalar strings.
func loadContext(path string) (map[string]string, error) {
	if path == "" {
		return nil, nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read context %s: %w", path, err)
	}
	vars := make(map[string]string)
	if err := yaml.Unmarshal(data, &vars); err != nil {
		return nil, fmt.Errorf("parse context %s: %w", path, err)
	}
	return vars, nil
}

// loadCatalogue builds the correction catalogue: the built-in UK set, or
// a user-supplied CUE directory when --catalogue is given.
func loadCatalogue(dir string) (*catalogue.Catalogue, error) {
	if dir == "" {
		return catalogue.Default(), nil
	}
	cat, err := catalogue.LoadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("load catalogue from %s: %w", dir, err)
	}
	return cat, nil
}

// splitModules parses a comma-separated module list flag.
func splitModules(flag string) []string {
	if flag == "" {
		return nil
	}
	var out []string
	for _, m := range strings.Split(flag, ",") {
		if m = strings.TrimSpace(m); m != "" {
			out = append(out, m)
		}
	}
	return out
}
