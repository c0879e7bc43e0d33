// Package manifest renders finalized declarations as a deployment manifest.
// Resources keep their declaration order in every output format.
package manifest

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/samsarahq/go/oops"
	"github.com/santiago-labs/apphost/resource"
	"gopkg.in/yaml.v3"
)

const (
	SchemaURL = "https://json.schemastore.org/aspire-8.0.json"

	// BicepType marks a resource that is provisioned from a bicep module.
	BicepType = "azure.bicep.v0"

	FormatJSON = "json"
	FormatYAML = "yaml"
)

type Resource struct {
	Name       string `json:"-" yaml:"-"`
	Type       string `json:"type" yaml:"type"`
	Path       string `json:"path" yaml:"path"`
	Kind       string `json:"kind" yaml:"kind"`
	AzureType  string `json:"azureType" yaml:"azureType"`
	APIVersion string `json:"apiVersion" yaml:"apiVersion"`
}

type Manifest struct {
	Schema    string
	Resources []Resource
}

func Build(decls []resource.Declaration) (Manifest, error) {
	m := Manifest{Schema: SchemaURL}
	for _, d := range decls {
		spec, ok := d.Kind.Spec()
		if !ok {
			return Manifest{}, resource.UnknownKindError{Kind: string(d.Kind)}
		}

		m.Resources = append(m.Resources, Resource{
			Name:       d.ResourceName,
			Type:       BicepType,
			Path:       fmt.Sprintf("%s.module.bicep", d.ResourceName),
			Kind:       string(d.Kind),
			AzureType:  spec.ARMType,
			APIVersion: spec.APIVersion,
		})
	}
	return m, nil
}

// MarshalJSON writes resources as an object keyed by name, in declaration
// order.
func (m Manifest) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer

	schema, err := json.Marshal(m.Schema)
	if err != nil {
		return nil, err
	}
	buf.WriteString(`{"$schema":`)
	buf.Write(schema)
	buf.WriteString(`,"resources":{`)

	for i, r := range m.Resources {
		if i > 0 {
			buf.WriteByte(',')
		}
		key, err := json.Marshal(r.Name)
		if err != nil {
			return nil, err
		}
		val, err := json.Marshal(r)
		if err != nil {
			return nil, oops.Wrapf(err, "marshal resource %s", r.Name)
		}
		buf.Write(key)
		buf.WriteByte(':')
		buf.Write(val)
	}

	buf.WriteString("}}")
	return buf.Bytes(), nil
}

func (m Manifest) MarshalYAML() (interface{}, error) {
	resources := &yaml.Node{Kind: yaml.MappingNode}
	for _, r := range m.Resources {
		var val yaml.Node
		if err := val.Encode(r); err != nil {
			return nil, oops.Wrapf(err, "encode resource %s", r.Name)
		}
		resources.Content = append(resources.Content, scalar(r.Name), &val)
	}

	return &yaml.Node{
		Kind: yaml.MappingNode,
		Content: []*yaml.Node{
			scalar("$schema"), scalar(m.Schema),
			scalar("resources"), resources,
		},
	}, nil
}

func scalar(v string) *yaml.Node {
	return &yaml.Node{Kind: yaml.ScalarNode, Tag: "!!str", Value: v}
}

// Encode writes m to w in the given format.
func (m Manifest) Encode(w io.Writer, format string) error {
	switch strings.ToLower(format) {
	case "", FormatJSON:
		out, err := json.MarshalIndent(m, "", "  ")
		if err != nil {
			return oops.Wrapf(err, "marshal manifest")
		}
		out = append(out, '\n')
		_, err = w.Write(out)
		return err

	case FormatYAML, "yml":
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(m); err != nil {
			return oops.Wrapf(err, "encode manifest")
		}
		return enc.Close()

	default:
		return oops.Errorf("unsupported manifest format: %s", format)
	}
}

// Extension returns the file extension used for format.
func Extension(format string) string {
	switch strings.ToLower(format) {
	case FormatYAML, "yml":
		return "yaml"
	default:
		return "json"
	}
}
