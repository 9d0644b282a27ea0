/*
 * Copyright © 2025 Suparena Software Inc., All rights reserved.
 */

package processor

import (
	"bytes"
	"flag"
	"fmt"
	"os"
	"sort"
	"text/template"

	"gopkg.in/yaml.v3"
)

// ExtensionName is the OpenAPI vendor extension holding a schema's key map.
const ExtensionName = "x-couchbase-keymap"

// KeyMapSpec is the parsed form of the vendor extension.
type KeyMapSpec struct {
	DocType string `yaml:"docType"`
	Key     string `yaml:"key"`
}

// schemaEntry pairs a schema name with its key map for code generation.
type schemaEntry struct {
	Name string
	Spec KeyMapSpec
}

type openAPIDoc struct {
	Components struct {
		Schemas map[string]yaml.Node `yaml:"schemas"`
	} `yaml:"components"`
}

var codeTemplate = template.Must(template.New("keymap").Parse(
	`// Code generated by keymap-gen. DO NOT EDIT.

package {{.Package}}

import (
	"github.com/suparena/couchstore/registry"
)

func init() {
{{- range .Entries}}
	registry.RegisterKeyMap[{{.Name}}](registry.KeyMap{
		DocType: {{printf "%q" .Spec.DocType}},
		Key:     {{printf "%q" .Spec.Key}},
	})
	registry.RegisterTypeFor[{{.Name}}]({{printf "%q" .Spec.DocType}})
{{- end}}
}
`))

// Parse extracts every schema carrying the key map extension from an
// OpenAPI document.
func Parse(input []byte) ([]schemaEntry, error) {
	var doc openAPIDoc
	if err := yaml.Unmarshal(input, &doc); err != nil {
		return nil, fmt.Errorf("failed to parse spec: %w", err)
	}

	var entries []schemaEntry
	for name, schema := range doc.Components.Schemas {
		var fields map[string]yaml.Node
		if err := schema.Decode(&fields); err != nil {
			continue
		}

		ext, ok := fields[ExtensionName]
		if !ok {
			continue
		}

		var spec KeyMapSpec
		if err := ext.Decode(&spec); err != nil {
			return nil, fmt.Errorf("schema %q: invalid %s: %w", name, ExtensionName, err)
		}
		if spec.Key == "" {
			return nil, fmt.Errorf("schema %q: %s is missing a key template", name, ExtensionName)
		}
		if spec.DocType == "" {
			spec.DocType = name
		}

		entries = append(entries, schemaEntry{Name: name, Spec: spec})
	}

	sort.Slice(entries, func(i, j int) bool { return entries[i].Name < entries[j].Name })
	return entries, nil
}

// Generate renders registration code for all annotated schemas of a spec.
func Generate(input []byte, pkg string) ([]byte, error) {
	entries, err := Parse(input)
	if err != nil {
		return nil, err
	}
	if len(entries) == 0 {
		return nil, fmt.Errorf("no schemas with %s found", ExtensionName)
	}

	var buf bytes.Buffer
	err = codeTemplate.Execute(&buf, struct {
		Package string
		Entries []schemaEntry
	}{Package: pkg, Entries: entries})
	if err != nil {
		return nil, fmt.Errorf("failed to render code: %w", err)
	}
	return buf.Bytes(), nil
}

// Main is the entry point of the keymap code generator.
func Main() {
	input := flag.String("input", "", "Path to the annotated OpenAPI spec (YAML)")
	output := flag.String("output", "", "Path of the generated Go file (stdout when empty)")
	pkg := flag.String("package", "models", "Package name of the generated file")
	flag.Parse()

	if *input == "" {
		fmt.Fprintln(os.Stderr, "keymap-gen: -input is required")
		os.Exit(2)
	}

	raw, err := os.ReadFile(*input)
	if err != nil {
		fmt.Fprintf(os.Stderr, "keymap-gen: %v\n", err)
		os.Exit(1)
	}

	code, err := Generate(raw, *pkg)
	if err != nil {
		fmt.Fprintf(os.Stderr, "keymap-gen: %v\n", err)
		os.Exit(1)
	}

	if *output == "" {
		fmt.Print(string(code))
		return
	}
	if err := os.WriteFile(*output, code, 0o644); err != nil {
		fmt.Fprintf(os.Stderr, "keymap-gen: %v\n", err)
		os.Exit(1)
	}
}
