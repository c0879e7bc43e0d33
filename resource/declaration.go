package resource

import (
	"strings"
)

const maxNameLength = 64

type Declaration struct {
	ResourceName string `yaml:"Name"`
	Kind         Kind   `yaml:"Kind"`
}

func (d Declaration) ID() string {
	return strings.ToLower(d.ResourceName)
}

func (d Declaration) Name() string {
	return d.ResourceName
}

func (d Declaration) Type() string {
	if spec, ok := d.Kind.Spec(); ok {
		return spec.DisplayName
	}
	return string(d.Kind)
}

// ValidateName checks name against the resource naming rules: an ASCII letter
// first, then letters, digits and single hyphens, never ending in a hyphen.
func ValidateName(name string) error {
	if name == "" {
		return InvalidNameError{Name: name, Reason: "name is empty"}
	}
	if len(name) > maxNameLength {
		return InvalidNameError{Name: name, Reason: "name is longer than 64 characters"}
	}
	if !isASCIILetter(rune(name[0])) {
		return InvalidNameError{Name: name, Reason: "name must start with an ASCII letter"}
	}

	var prev rune
	for _, r := range name {
		switch {
		case isASCIILetter(r), r >= '0' && r <= '9':
		case r == '-':
			if prev == '-' {
				return InvalidNameError{Name: name, Reason: "name cannot contain consecutive hyphens"}
			}
		default:
			return InvalidNameError{Name: name, Reason: "name can only contain ASCII letters, digits and hyphens"}
		}
		prev = r
	}
	if prev == '-' {
		return InvalidNameError{Name: name, Reason: "name cannot end with a hyphen"}
	}

	return nil
}

func isASCIILetter(r rune) bool {
	return (r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z')
}
