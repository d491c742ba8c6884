package entity

import (
	"fmt"
	"strings"

	"gopkg.in/yaml.v3"
)

const HiddenCategory = "hidden"

// Command is the static description of one bot command as shown by /help
type Command struct {
	Name        string   `yaml:"name"`
	Aliases     []string `yaml:"aliases"`
	Description string   `yaml:"description"`
	Guide       Guide    `yaml:"guide"`
	Category    string   `yaml:"category"`
	Cooldown    int      `yaml:"cooldown"`
}

// Guide holds usage variants. In YAML it is either a single string or a list of strings.
type Guide []string

func (g *Guide) UnmarshalYAML(value *yaml.Node) error {
	switch value.Kind {
	case yaml.ScalarNode:
		var s string
		if err := value.Decode(&s); err != nil {
			return err
		}
		if s == "" {
			*g = nil
			return nil
		}
		*g = Guide{s}
		return nil
	case yaml.SequenceNode:
		var list []string
		if err := value.Decode(&list); err != nil {
			return err
		}
		*g = list
		return nil
	}
	return fmt.Errorf("guide must be a string or a list of strings, line %d", value.Line)
}

// Hidden reports whether the command is excluded from the full help listing
func (c *Command) Hidden() bool {
	return strings.EqualFold(c.Category, HiddenCategory)
}

// HasAlias compares aliases case-insensitively
func (c *Command) HasAlias(alias string) bool {
	for _, a := range c.Aliases {
		if strings.EqualFold(a, alias) {
			return true
		}
	}
	return false
}
