package ymlparser

import (
	"errors"
	"fmt"
	"os"

	"github.com/samsarahq/go/oops"
	"github.com/santiago-labs/apphost/resource"
	"gopkg.in/yaml.v3"
)

type declarationData struct {
	Name string `yaml:"Name"`
	Kind string `yaml:"Kind"`
}

type apphostData struct {
	Resources []declarationData `yaml:"Resources"`
}

// ParseDeclarations reads a declaration file and registers every resource on
// b in file order. The first invalid or duplicate declaration stops parsing
// and is returned unwrapped so callers can match it with errors.As.
func ParseDeclarations(filepath string, b *resource.Builder) error {
	if filepath == "" {
		return errors.New("filepath is empty")
	}

	data, err := os.ReadFile(filepath)
	if err != nil {
		return fmt.Errorf("err: %s reading file %s", err.Error(), filepath)
	}

	return DecodeDeclarations(data, b)
}

func DecodeDeclarations(data []byte, b *resource.Builder) error {
	var parsed apphostData
	if err := yaml.Unmarshal(data, &parsed); err != nil {
		return oops.Wrapf(err, "unmarshal declarations")
	}

	for _, decl := range parsed.Resources {
		kind, err := resource.ParseKind(decl.Kind)
		if err != nil {
			return err
		}
		if _, err := b.Declare(kind, decl.Name); err != nil {
			return err
		}
	}

	return nil
}

// WriteDeclarations writes decls in the format ParseDeclarations reads. It
// refuses to overwrite an existing file.
func WriteDeclarations(filepath string, decls []resource.Declaration) error {
	var out apphostData
	for _, d := range decls {
		out.Resources = append(out.Resources, declarationData{
			Name: d.ResourceName,
			Kind: string(d.Kind),
		})
	}

	result, err := yaml.Marshal(out)
	if err != nil {
		return err
	}

	if fileExists(filepath) {
		return fmt.Errorf("file %s already exists we will not overwrite it", filepath)
	}

	return os.WriteFile(filepath, result, 0644)
}

func fileExists(filename string) bool {
	_, err := os.Stat(filename)
	if os.IsNotExist(err) {
		return false
	}
	return err == nil
}
