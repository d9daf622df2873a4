// Package blueprint loads and validates the structure a provisioning run creates.
//
// Blueprints are YAML documents. Pages and lists may be written either as a
// mapping (title/name plus children) or, for leaves, as a bare string.
package blueprint

import (
	_ "embed"
	"errors"
	"fmt"
	"os"
	"reflect"

	"github.com/aretw0/groundwork/pkg/domain"
	"github.com/mitchellh/mapstructure"
	"gopkg.in/yaml.v3"
)

//go:embed default.yaml
var defaultYAML []byte

// ErrInvalid wraps every validation failure.
var ErrInvalid = errors.New("invalid blueprint")

// Default returns the built-in blueprint.
func Default() domain.Blueprint {
	bp, err := Parse(defaultYAML)
	if err != nil {
		panic(fmt.Sprintf("embedded blueprint is broken: %v", err))
	}
	return bp
}

// Load reads a blueprint from path. An empty path yields Default().
func Load(path string) (domain.Blueprint, error) {
	if path == "" {
		return Default(), nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return domain.Blueprint{}, fmt.Errorf("failed to read blueprint: %w", err)
	}
	bp, err := Parse(data)
	if err != nil {
		return domain.Blueprint{}, fmt.Errorf("%s: %w", path, err)
	}
	return bp, nil
}

// Parse decodes and validates a YAML blueprint.
func Parse(data []byte) (domain.Blueprint, error) {
	if len(data) > MaxDocumentSize {
		return domain.Blueprint{}, fmt.Errorf("%w: size=%d limit=%d", ErrTooLarge, len(data), MaxDocumentSize)
	}

	var raw map[string]any
	if err := yaml.Unmarshal(data, &raw); err != nil {
		return domain.Blueprint{}, fmt.Errorf("failed to parse blueprint YAML: %w", err)
	}

	var bp domain.Blueprint
	decoder, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		DecodeHook:       leafHook,
		WeaklyTypedInput: true,
		ErrorUnused:      true,
		Result:           &bp,
	})
	if err != nil {
		return domain.Blueprint{}, err
	}
	if err := decoder.Decode(raw); err != nil {
		return domain.Blueprint{}, fmt.Errorf("%w: %v", ErrInvalid, err)
	}

	if err := sanitize(&bp); err != nil {
		return domain.Blueprint{}, err
	}
	if err := Validate(bp); err != nil {
		return domain.Blueprint{}, err
	}
	return bp, nil
}

var (
	pageType      = reflect.TypeOf(domain.PageSpec{})
	containerType = reflect.TypeOf(domain.ContainerSpec{})
)

// leafHook lets scalars stand for leaf pages and lists.
// Numbers are accepted too, so an unquoted year like 2026 becomes a title.
func leafHook(from reflect.Type, to reflect.Type, data any) (any, error) {
	switch from.Kind() {
	case reflect.String, reflect.Int, reflect.Int64, reflect.Float64:
	default:
		return data, nil
	}
	switch to {
	case pageType:
		return domain.PageSpec{Title: fmt.Sprint(data)}, nil
	case containerType:
		return domain.ContainerSpec{Name: fmt.Sprint(data)}, nil
	}
	return data, nil
}

// Validate checks that every page has a title and every container a name.
// A blueprint may omit either workspace section entirely.
func Validate(bp domain.Blueprint) error {
	root := bp.Document.Root
	if root.Title != "" || len(root.Children) > 0 {
		if err := validatePage(root, "document.root"); err != nil {
			return err
		}
	}

	if bp.Tasks.Space.Name == "" && len(bp.Tasks.Lists) > 0 {
		return fmt.Errorf("%w: tasks.space.name is required when lists are declared", ErrInvalid)
	}
	for i, l := range bp.Tasks.Lists {
		if l.Name == "" {
			return fmt.Errorf("%w: tasks.lists[%d] has no name", ErrInvalid, i)
		}
	}
	return nil
}

func validatePage(p domain.PageSpec, path string) error {
	if p.Title == "" {
		return fmt.Errorf("%w: %s has no title", ErrInvalid, path)
	}
	for i, c := range p.Children {
		if err := validatePage(c, fmt.Sprintf("%s.children[%d]", path, i)); err != nil {
			return err
		}
	}
	return nil
}
