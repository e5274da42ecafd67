package parser

import (
	"errors"
	"fmt"

	"gopkg.in/yaml.v3"
)

const defaultOpenAPIVersion = "3.0.3"

// normalize makes sure the document carries a version key so that any object with a
// paths map is accepted. Documents that already declare one are returned unchanged.
func normalize(data []byte) ([]byte, error) {
	var doc yaml.Node
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("invalid document: %w", err)
	}
	if doc.Kind != yaml.DocumentNode || len(doc.Content) == 0 {
		return nil, errors.New("empty document")
	}

	root := doc.Content[0]
	if root.Kind != yaml.MappingNode {
		return nil, errors.New("document root must be an object")
	}

	for i := 0; i+1 < len(root.Content); i += 2 {
		switch root.Content[i].Value {
		case "openapi", "swagger":
			return data, nil
		}
	}

	version := []*yaml.Node{
		{Kind: yaml.ScalarNode, Tag: "!!str", Value: "openapi"},
		{Kind: yaml.ScalarNode, Tag: "!!str", Value: defaultOpenAPIVersion},
	}
	root.Content = append(version, root.Content...)
	root.Style = 0

	out, err := yaml.Marshal(&doc)
	if err != nil {
		return nil, fmt.Errorf("failed to rewrite document: %w", err)
	}
	return out, nil
}
