package wfc

import (
	"bytes"
	_ "embed"
	"encoding/json"
	"fmt"
	"os"
	"sync"

	"github.com/santhosh-tekuri/jsonschema/v5"
	"gopkg.in/yaml.v3"
)

//go:embed template.schema.json
var templateSchemaJSON []byte

const templateSchemaURL = "template.schema.json"

var (
	templateSchemaOnce sync.Once
	templateSchema     *jsonschema.Schema
	templateSchemaErr  error
)

func compiledTemplateSchema() (*jsonschema.Schema, error) {
	templateSchemaOnce.Do(func() {
		c := jsonschema.NewCompiler()
		if err := c.AddResource(templateSchemaURL, bytes.NewReader(templateSchemaJSON)); err != nil {
			templateSchemaErr = err
			return
		}
		templateSchema, templateSchemaErr = c.Compile(templateSchemaURL)
	})
	return templateSchema, templateSchemaErr
}

// TemplateFile is the YAML layout of a custom templates file
type TemplateFile struct {
	Templates []TemplateSpec `yaml:"templates"`
}

// TemplateSpec is one template as written in YAML
type TemplateSpec struct {
	Name        string     `yaml:"name"`
	Description string     `yaml:"description"`
	TileSize    []int      `yaml:"tile_size"`
	Seed        string     `yaml:"seed"`
	Tiles       []TileSpec `yaml:"tiles"`
	Rules       []RuleSpec `yaml:"rules"`
}

// TileSpec is one base tile as written in YAML
type TileSpec struct {
	Name        string `yaml:"name"`
	Content     string `yaml:"content"`
	Tag         string `yaml:"tag"`
	Orientation string `yaml:"orientation"`
	Facing      string `yaml:"facing"`
}

// RuleSpec is one rule as written in YAML
type RuleSpec struct {
	Source     string   `yaml:"source"`
	Target     string   `yaml:"target"`
	Directions []string `yaml:"directions"`
	Match      string   `yaml:"match"`
	Weight     float64  `yaml:"weight"`
}

// ParseTemplates validates data against the templates schema and converts every
// entry into a Template
func ParseTemplates(data []byte) ([]*Template, error) {
	var doc any
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("failed to parse templates: %w", err)
	}
	// The schema validator wants JSON-shaped values.
	raw, err := json.Marshal(doc)
	if err != nil {
		return nil, fmt.Errorf("failed to convert templates: %w", err)
	}
	var jsonDoc any
	dec := json.NewDecoder(bytes.NewReader(raw))
	dec.UseNumber()
	if err := dec.Decode(&jsonDoc); err != nil {
		return nil, fmt.Errorf("failed to convert templates: %w", err)
	}
	schema, err := compiledTemplateSchema()
	if err != nil {
		return nil, fmt.Errorf("failed to compile templates schema: %w", err)
	}
	if err := schema.Validate(jsonDoc); err != nil {
		return nil, fmt.Errorf("invalid templates file: %w", err)
	}

	var file TemplateFile
	if err := yaml.Unmarshal(data, &file); err != nil {
		return nil, fmt.Errorf("failed to parse templates: %w", err)
	}
	templates := make([]*Template, 0, len(file.Templates))
	for _, spec := range file.Templates {
		t, err := spec.Template()
		if err != nil {
			return nil, err
		}
		templates = append(templates, t)
	}
	return templates, nil
}

// LoadTemplates reads and parses a templates file
func LoadTemplates(path string) ([]*Template, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read templates file: %w", err)
	}
	return ParseTemplates(data)
}

// LoadFile registers every template in the file with r
func (r *Registry) LoadFile(path string) error {
	templates, err := LoadTemplates(path)
	if err != nil {
		return err
	}
	for _, t := range templates {
		if err := r.Register(t); err != nil {
			return err
		}
	}
	return nil
}

// Template converts the YAML form into a validated Template
func (s TemplateSpec) Template() (*Template, error) {
	if len(s.TileSize) != 3 {
		return nil, fmt.Errorf("wfc: template %s: tile_size needs three values", s.Name)
	}
	t := &Template{
		Name:        s.Name,
		Description: s.Description,
		TileWidth:   s.TileSize[0],
		TileDepth:   s.TileSize[1],
		TileHeight:  s.TileSize[2],
		Seed:        s.Seed,
	}
	for _, ts := range s.Tiles {
		kind, err := ParseOrientationKind(ts.Orientation)
		if err != nil {
			return nil, fmt.Errorf("template %s: tile %q: %w", s.Name, ts.Name, err)
		}
		o := Orientation{Kind: kind}
		if kind != Invariant {
			facing, err := ParseDirection(ts.Facing)
			if err != nil {
				return nil, fmt.Errorf("template %s: tile %q: %w", s.Name, ts.Name, err)
			}
			o.Facing = facing
		}
		t.Tiles = append(t.Tiles, BaseTile{
			Name:        ts.Name,
			Content:     ts.Content,
			Tag:         Tag(ts.Tag),
			Orientation: o,
		})
	}
	for i, rs := range s.Rules {
		dirs, err := ParseDirectionSet(rs.Directions)
		if err != nil {
			return nil, fmt.Errorf("template %s: rule %d: %w", s.Name, i, err)
		}
		t.Rules = append(t.Rules, Rule{
			Source:     Tag(rs.Source),
			Target:     Tag(rs.Target),
			Directions: dirs,
			Match:      rs.Match,
			Weight:     rs.Weight,
		})
	}
	if err := t.Validate(); err != nil {
		return nil, err
	}
	return t, nil
}
