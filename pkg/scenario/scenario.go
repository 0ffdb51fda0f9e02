// Package scenario reads test scenario files.
//
// A scenario is a YAML (or JSON) document:
//
//	name: login
//	description: sign in with the demo account
//	actions:
//	  - go_to <<https://example.com/login>>
//	  - input_to <<#user>> value <<demo>>
//	  - name: group
//	    meta:
//	      groupName: submit
//	      actions:
//	        - click_on <<#login>>
//	        - wait <<500>>
//
// Actions are kept raw; formatting and validation happen in package actions.
package scenario

import (
	"bytes"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

// Scenario is one named command sequence.
type Scenario struct {
	Name        string `yaml:"name" json:"name"`
	Description string `yaml:"description,omitempty" json:"description,omitempty"`
	Actions     []any  `yaml:"actions" json:"actions"`

	// Path the scenario was read from
	Path string `yaml:"-" json:"-"`
}

// Load reads a scenario file. A scenario without a name is named after the
// file.
func Load(path string) (*Scenario, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read scenario: %w", err)
	}

	s, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	s.Path = path
	if s.Name == "" {
		s.Name = strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
	}
	return s, nil
}

// Parse decodes a scenario document. A document that is a bare list is
// treated as the action list of an unnamed scenario.
func Parse(data []byte) (*Scenario, error) {
	if len(bytes.TrimSpace(data)) == 0 {
		return nil, errors.New("scenario is empty")
	}

	var root yaml.Node
	if err := yaml.Unmarshal(data, &root); err != nil {
		return nil, fmt.Errorf("failed to parse scenario: %w", err)
	}

	if len(root.Content) == 0 {
		return nil, errors.New("scenario is empty")
	}

	s := &Scenario{}
	doc := root.Content[0]
	switch doc.Kind {
	case yaml.SequenceNode:
		if err := doc.Decode(&s.Actions); err != nil {
			return nil, fmt.Errorf("failed to parse scenario actions: %w", err)
		}
	case yaml.MappingNode:
		if err := doc.Decode(s); err != nil {
			return nil, fmt.Errorf("failed to parse scenario: %w", err)
		}
	default:
		return nil, errors.New("scenario must be a mapping or a list of actions")
	}

	if s.Actions == nil {
		return nil, errors.New("scenario has no actions")
	}
	return s, nil
}
