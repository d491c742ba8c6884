package registry

import (
	_ "embed"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"strings"

	"github.com/kettari/help-bot/internal/entity"
	"gopkg.in/yaml.v3"
)

//go:embed commands.yaml
var builtinCatalog []byte

var (
	ErrEmptyName        = errors.New("command name is empty")
	ErrNegativeCooldown = errors.New("command cooldown is negative")
	ErrDuplicate        = errors.New("command already registered")
)

// Registry keeps command descriptors in registration order. It is filled once at
// startup and only read afterwards, so it carries no locking.
type Registry struct {
	commands []entity.Command
	byName   map[string]int
}

func New() *Registry {
	return &Registry{byName: make(map[string]int)}
}

// Register adds a descriptor, rejecting duplicate names
func (r *Registry) Register(cmd entity.Command) error {
	key, err := validate(&cmd)
	if err != nil {
		return err
	}
	if _, ok := r.byName[key]; ok {
		return fmt.Errorf("%w: %s", ErrDuplicate, cmd.Name)
	}
	r.byName[key] = len(r.commands)
	r.commands = append(r.commands, cmd)
	return nil
}

// Put adds a descriptor or replaces the one registered under the same name in place
func (r *Registry) Put(cmd entity.Command) error {
	key, err := validate(&cmd)
	if err != nil {
		return err
	}
	if i, ok := r.byName[key]; ok {
		r.commands[i] = cmd
		return nil
	}
	r.byName[key] = len(r.commands)
	r.commands = append(r.commands, cmd)
	return nil
}

// Get looks a command up by its exact (case-insensitive) name
func (r *Registry) Get(name string) (entity.Command, bool) {
	i, ok := r.byName[strings.ToLower(strings.TrimSpace(name))]
	if !ok {
		return entity.Command{}, false
	}
	return r.commands[i], true
}

// All returns a snapshot of the registered commands in registration order
func (r *Registry) All() []entity.Command {
	result := make([]entity.Command, len(r.commands))
	copy(result, r.commands)
	return result
}

func (r *Registry) Len() int {
	return len(r.commands)
}

// LoadYAML registers every descriptor from a YAML list
func (r *Registry) LoadYAML(data []byte) error {
	var commands []entity.Command
	if err := yaml.Unmarshal(data, &commands); err != nil {
		return fmt.Errorf("failed to parse commands catalog: %w", err)
	}
	for _, cmd := range commands {
		if err := r.Register(cmd); err != nil {
			return err
		}
	}
	return nil
}

// MergeFile puts descriptors from a YAML file over the already registered ones
func (r *Registry) MergeFile(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("failed to read commands file %s: %w", path, err)
	}
	var commands []entity.Command
	if err = yaml.Unmarshal(data, &commands); err != nil {
		return fmt.Errorf("failed to parse commands file %s: %w", path, err)
	}
	for _, cmd := range commands {
		if err = r.Put(cmd); err != nil {
			return err
		}
	}
	slog.Debug("commands file merged", "path", path, "commands_count", len(commands))
	return nil
}

// Builtin returns a registry with the embedded commands catalog
func Builtin() (*Registry, error) {
	r := New()
	if err := r.LoadYAML(builtinCatalog); err != nil {
		return nil, err
	}
	return r, nil
}

func validate(cmd *entity.Command) (string, error) {
	cmd.Name = strings.TrimSpace(cmd.Name)
	if cmd.Name == "" {
		return "", ErrEmptyName
	}
	if cmd.Cooldown < 0 {
		return "", fmt.Errorf("%w: %s", ErrNegativeCooldown, cmd.Name)
	}
	return strings.ToLower(cmd.Name), nil
}
