// Copyright 2025 Poiesic Systems
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.


package pattern

import (
	"errors"
	"fmt"
	"io"

	"github.com/poiesic/landmark/distance"
	"gopkg.in/yaml.v3"
)

// Definitions is the YAML representation of a pattern set.
//
//	defaults:
//	  distance: mean_cosine
//	  soft_borders: true
//	patterns:
//	  - name: headline.name
//	    text: полное фирменное наименование
//	groups:
//	  - name: headlines
//	    members: [headline.name, headline.subject]
//	compounds:
//	  - name: competence
//	    members:
//	      - name: competence.board
//	        weight: 1
//	      - name: headline.name
//	        weight: -0.5
type Definitions struct {
	Defaults  PatternDefaults      `yaml:"defaults"`
	Patterns  []PatternDefinition  `yaml:"patterns"`
	Groups    []GroupDefinition    `yaml:"groups"`
	Compounds []CompoundDefinition `yaml:"compounds"`
}

// PatternDefaults apply to every pattern that does not override them.
type PatternDefaults struct {
	Distance    *distance.Kind `yaml:"distance"`
	SoftBorders *bool          `yaml:"soft_borders"`
}

// PatternDefinition describes one pattern.
type PatternDefinition struct {
	Name        string         `yaml:"name"`
	Prefix      string         `yaml:"prefix"`
	Text        string         `yaml:"text"`
	Suffix      string         `yaml:"suffix"`
	Distance    *distance.Kind `yaml:"distance"`
	SoftBorders *bool          `yaml:"soft_borders"`
}

// GroupDefinition describes an exclusive group by member names.
type GroupDefinition struct {
	Name    string   `yaml:"name"`
	Members []string `yaml:"members"`
}

// CompoundDefinition describes a compound pattern.
type CompoundDefinition struct {
	Name    string           `yaml:"name"`
	Members []WeightedMember `yaml:"members"`
}

// WeightedMember references a registered matcher with a weight.
type WeightedMember struct {
	Name   string  `yaml:"name"`
	Weight float64 `yaml:"weight"`
}

// LoadDefinitions decodes a YAML pattern set.
func LoadDefinitions(r io.Reader) (*Definitions, error) {
	var defs Definitions
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(&defs); err != nil {
		if errors.Is(err, io.EOF) {
			return nil, fmt.Errorf("%w: empty document", ErrInvalidDefinition)
		}
		return nil, fmt.Errorf("%w: %w", ErrInvalidDefinition, err)
	}
	if err := defs.Validate(); err != nil {
		return nil, err
	}
	return &defs, nil
}

// Validate checks names and references without touching a registry.
func (d *Definitions) Validate() error {
	seen := make(map[string]bool)
	declare := func(kind, name string) error {
		if name == "" {
			return fmt.Errorf("%w: %s without a name", ErrInvalidDefinition, kind)
		}
		if seen[name] {
			return fmt.Errorf("%w: %s", ErrDuplicateName, name)
		}
		seen[name] = true
		return nil
	}

	for _, p := range d.Patterns {
		if err := declare("pattern", p.Name); err != nil {
			return err
		}
		if p.Text == "" {
			return fmt.Errorf("%w: pattern %q has no text", ErrInvalidDefinition, p.Name)
		}
	}
	for _, g := range d.Groups {
		if err := declare("group", g.Name); err != nil {
			return err
		}
		if len(g.Members) == 0 {
			return fmt.Errorf("%w: group %q has no members", ErrInvalidDefinition, g.Name)
		}
		for _, m := range g.Members {
			if !seen[m] {
				return fmt.Errorf("%w: group %q references %q", ErrUnknownPattern, g.Name, m)
			}
		}
	}
	for _, c := range d.Compounds {
		if err := declare("compound", c.Name); err != nil {
			return err
		}
		if len(c.Members) == 0 {
			return fmt.Errorf("%w: compound %q has no members", ErrInvalidDefinition, c.Name)
		}
		for _, m := range c.Members {
			if !seen[m.Name] {
				return fmt.Errorf("%w: compound %q references %q", ErrUnknownPattern, c.Name, m.Name)
			}
		}
	}
	return nil
}

// Register creates every defined pattern, group and compound in reg.
// Groups and compounds may reference anything defined before them.
func (d *Definitions) Register(reg *Registry) error {
	for _, p := range d.Patterns {
		if _, err := reg.Create(p.Name, p.Prefix, p.Text, p.Suffix, d.options(p)...); err != nil {
			return err
		}
	}

	for _, g := range d.Groups {
		group := NewExclusiveGroup(g.Name)
		for _, name := range g.Members {
			m, err := reg.Matcher(name)
			if err != nil {
				return fmt.Errorf("group %q: %w", g.Name, err)
			}
			if err := group.Add(m); err != nil {
				return err
			}
		}
		if err := reg.AddGroup(group); err != nil {
			return err
		}
	}

	for _, c := range d.Compounds {
		compound := NewCompound(c.Name)
		for _, member := range c.Members {
			m, err := reg.Matcher(member.Name)
			if err != nil {
				return fmt.Errorf("compound %q: %w", c.Name, err)
			}
			if err := compound.Add(m, member.Weight); err != nil {
				return err
			}
		}
		if err := reg.AddCompound(compound); err != nil {
			return err
		}
	}
	return nil
}

func (d *Definitions) options(p PatternDefinition) []PatternOption {
	var opts []PatternOption
	if k := firstKind(p.Distance, d.Defaults.Distance); k != nil {
		opts = append(opts, WithDistance(*k))
	}
	if b := firstBool(p.SoftBorders, d.Defaults.SoftBorders); b != nil {
		opts = append(opts, WithSoftBorders(*b))
	}
	return opts
}

func firstKind(values ...*distance.Kind) *distance.Kind {
	for _, v := range values {
		if v != nil {
			return v
		}
	}
	return nil
}

func firstBool(values ...*bool) *bool {
	for _, v := range values {
		if v != nil {
			return v
		}
	}
	return nil
}
