package config

import (
	"errors"
	"fmt"
	"regexp"
	"strings"
	"sync"

	"github.com/go-playground/validator/v10"

	"github.com/alexisbeaulieu97/placard/internal/predicate"
	placarderrors "github.com/alexisbeaulieu97/placard/pkg/errors"
)

var (
	validatorOnce sync.Once
	validateInst  *validator.Validate

	semverPattern         = regexp.MustCompile(`^\d+\.\d+(?:\.\d+)?(?:-[0-9A-Za-z-.]+)?(?:\+[0-9A-Za-z-.]+)?$`)
	nodeIDPattern         = regexp.MustCompile(`^[a-zA-Z0-9_-]+$`)
	breakpointNamePattern = regexp.MustCompile(`^[a-z][a-z0-9_-]*$`)
)

// validatorInstance configures and returns the shared validator instance used across the config package.
func validatorInstance() *validator.Validate {
	validatorOnce.Do(func() {
		v := validator.New()

		_ = v.RegisterValidation("semver", func(fl validator.FieldLevel) bool {
			return semverPattern.MatchString(fl.Field().String())
		})

		_ = v.RegisterValidation("node_id", func(fl validator.FieldLevel) bool {
			return nodeIDPattern.MatchString(fl.Field().String())
		})

		_ = v.RegisterValidation("breakpoint_name", func(fl validator.FieldLevel) bool {
			return breakpointNamePattern.MatchString(fl.Field().String())
		})

		_ = v.RegisterValidation("category", func(fl validator.FieldLevel) bool {
			_, err := predicate.ParseCategory(fl.Field().String())
			return err == nil
		})

		_ = v.RegisterValidation("condition", func(fl validator.FieldLevel) bool {
			_, err := predicate.ParseCondition(fl.Field().String())
			return err == nil
		})

		validateInst = v
	})

	return validateInst
}

// GetValidator returns the configured validator instance for use outside the config package.
func GetValidator() *validator.Validate {
	return validatorInstance()
}

// ValidateConfig performs schema and cross-field validation on a layout document.
func ValidateConfig(cfg *Config) error {
	if cfg == nil {
		return placarderrors.NewValidationError("config", "configuration is nil", nil)
	}

	v := validatorInstance()
	if err := v.Struct(cfg); err != nil {
		return convertValidationError(err)
	}

	seen := make(map[string]string)
	if err := validateNode(cfg, cfg.Root, "root", seen); err != nil {
		return err
	}

	for i, o := range cfg.Offers {
		if len(o.Catalog) > 0 && o.ActiveCatalog >= len(o.Catalog) {
			return placarderrors.NewValidationError(
				fmt.Sprintf("offers[%d].active_catalog", i),
				fmt.Sprintf("index %d out of range for %d catalog items", o.ActiveCatalog, len(o.Catalog)),
				nil,
			)
		}
	}

	return nil
}

func validateNode(cfg *Config, n *Node, path string, seen map[string]string) error {
	if n == nil {
		return placarderrors.NewValidationError(path, "node is empty", nil)
	}
	if first, exists := seen[n.ID]; exists {
		return placarderrors.NewValidationError(path+".id", fmt.Sprintf("duplicate node id %q (first used at %s)", n.ID, first), nil)
	}
	seen[n.ID] = path

	if n.ViewableItems > 0 && n.Type != "carousel" {
		return placarderrors.NewValidationError(path+".viewable_items", "only carousels show several items per page", nil)
	}

	for i, p := range n.When {
		if err := validatePredicate(cfg, p, fmt.Sprintf("%s.when[%d]", path, i)); err != nil {
			return err
		}
	}

	for i, child := range n.Children {
		if err := validateNode(cfg, child, fmt.Sprintf("%s.children[%d]", path, i), seen); err != nil {
			return err
		}
	}
	return nil
}

func validatePredicate(cfg *Config, p Predicate, path string) error {
	category, err := predicate.ParseCategory(p.Type)
	if err != nil {
		return placarderrors.NewValidationError(path+".type", err.Error(), err)
	}
	condition, err := predicate.ParseCondition(p.Condition)
	if err != nil {
		return placarderrors.NewValidationError(path+".condition", err.Error(), err)
	}
	if !category.Supports(condition) {
		return placarderrors.NewValidationError(
			path+".condition",
			fmt.Sprintf("condition %s does not apply to %s predicates", condition, category),
			placarderrors.ErrUnsupportedCondition,
		)
	}

	switch category {
	case predicate.Breakpoint:
		if _, ok := cfg.Breakpoints[p.Key]; !ok {
			return placarderrors.NewValidationError(path+".key", fmt.Sprintf("unknown breakpoint %q", p.Key), nil)
		}
	case predicate.CustomState, predicate.CreativeCopy, predicate.Placeholder:
		if strings.TrimSpace(p.Key) == "" {
			return placarderrors.NewValidationError(path+".key", fmt.Sprintf("%s predicates need a key", category), nil)
		}
	}

	switch category {
	case predicate.Progression, predicate.Position, predicate.CustomState, predicate.StaticBoolean, predicate.Placeholder:
		if strings.TrimSpace(p.Value) == "" {
			return placarderrors.NewValidationError(path+".value", fmt.Sprintf("%s predicates need a value", category), nil)
		}
	}
	return nil
}

// convertValidationError normalizes validator errors into layout validation errors.
func convertValidationError(err error) error {
	if err == nil {
		return nil
	}

	var ves validator.ValidationErrors
	if errors.As(err, &ves) && len(ves) > 0 {
		ve := ves[0]
		field := yamlishFieldName(ve)
		msg := fmt.Sprintf("%s failed validation for tag '%s'", field, ve.Tag())
		return placarderrors.NewValidationError(field, msg, err)
	}

	return placarderrors.NewValidationError("config", err.Error(), err)
}

func yamlishFieldName(fe validator.FieldError) string {
	ns := fe.StructNamespace()
	parts := strings.Split(ns, ".")
	lowered := make([]string, 0, len(parts))
	for _, part := range parts {
		lowered = append(lowered, strings.ToLower(part))
	}
	return strings.Join(lowered, ".")
}
