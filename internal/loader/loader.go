// Package loader reads and validates YAML custom-check definitions from
// files and directories.
package loader

import (
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"regexp"
	"strings"

	"github.com/go-playground/validator/v10"
	"gopkg.in/yaml.v3"

	"github.com/ancients-collective/kharden/internal/types"
)

// namePattern matches valid option names: Kconfig symbols, boot parameters,
// and dotted or slashed sysctl keys.
var namePattern = regexp.MustCompile(`^[a-zA-Z0-9/._-]+$`)

// Loader reads YAML check definitions and validates them against the schema.
type Loader struct {
	validate *validator.Validate
}

// New creates a new Loader.
func New() *Loader {
	v := validator.New()

	// Register custom validator for option names
	_ = v.RegisterValidation("kharden_name", func(fl validator.FieldLevel) bool {
		return namePattern.MatchString(fl.Field().String())
	})

	return &Loader{validate: v}
}

// LoadFile reads a YAML file holding a list of check definitions and
// returns them validated.
func (l *Loader) LoadFile(path string) ([]types.CheckDefinition, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read %q: %w", path, err)
	}

	var defs []types.CheckDefinition
	if err := yaml.Unmarshal(data, &defs); err != nil {
		return nil, fmt.Errorf("failed to parse YAML in %q: %w", path, err)
	}

	for i, def := range defs {
		if err := l.validateDefinition(def); err != nil {
			return nil, fmt.Errorf("%s: check %d (%s): %w", path, i+1, def.Name, err)
		}
	}

	return defs, nil
}

// LoadPath loads definitions from a YAML file or, for a directory, from
// every .yaml/.yml file under it. Symlinks are skipped. Duplicate
// (name, source) pairs across the loaded set are rejected: a checklist must
// never hold two checks for the same option and source.
func (l *Loader) LoadPath(path string) ([]types.CheckDefinition, error) {
	info, err := os.Stat(path)
	if err != nil {
		return nil, fmt.Errorf("cannot access %q: %w", path, err)
	}

	var defs []types.CheckDefinition
	if info.IsDir() {
		err = filepath.WalkDir(path, func(p string, d fs.DirEntry, err error) error {
			if err != nil {
				return fmt.Errorf("error accessing %q: %w", p, err)
			}
			if d.Type()&fs.ModeSymlink != 0 {
				return nil
			}
			if d.IsDir() {
				return nil
			}
			ext := strings.ToLower(filepath.Ext(p))
			if ext != ".yaml" && ext != ".yml" {
				return nil
			}
			fileDefs, err := l.LoadFile(p)
			if err != nil {
				return err
			}
			defs = append(defs, fileDefs...)
			return nil
		})
		if err != nil {
			return nil, err
		}
	} else {
		defs, err = l.LoadFile(path)
		if err != nil {
			return nil, err
		}
	}

	seen := make(map[string]bool)
	for _, def := range defs {
		key := def.Source + "/" + def.Name
		if seen[key] {
			return nil, fmt.Errorf("duplicate check for %s option %q", def.Source, def.Name)
		}
		seen[key] = true
	}

	return defs, nil
}

// ValidateOnly loads a file or directory and validates it without building
// any checks. Returns nil if every definition is valid.
func (l *Loader) ValidateOnly(path string) error {
	_, err := l.LoadPath(path)
	return err
}

// validateDefinition runs schema validation (struct tags) on a definition.
func (l *Loader) validateDefinition(def types.CheckDefinition) error {
	if err := l.validate.Struct(def); err != nil {
		return formatValidationErrors(err)
	}
	return nil
}

// formatValidationErrors converts validator errors into user-friendly messages.
func formatValidationErrors(err error) error {
	validationErrors, ok := err.(validator.ValidationErrors)
	if !ok {
		return err
	}

	var messages []string
	for _, fe := range validationErrors {
		messages = append(messages, formatFieldError(fe))
	}

	return fmt.Errorf("validation failed: %s", strings.Join(messages, "; "))
}

// formatFieldError converts a single field validation error to a human-readable message.
func formatFieldError(fe validator.FieldError) string {
	field := fe.Field()

	switch fe.Tag() {
	case "required":
		return fmt.Sprintf("%s is required", field)
	case "oneof":
		return fmt.Sprintf("%s must be one of: %s", field, fe.Param())
	case "kharden_name":
		return fmt.Sprintf("%s must be an option name (letters, digits, dots, slashes, underscores, hyphens)", field)
	default:
		return fmt.Sprintf("%s failed validation: %s", field, fe.Tag())
	}
}
