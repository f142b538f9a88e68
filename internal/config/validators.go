package config

import (
	"fmt"
	"sort"
	"strconv"
	"strings"
	"sync"
)

// Validator validates and normalizes a configuration value.
// Returns the normalized value and an error if validation fails.
type Validator func(key, value, defaultValue string) (normalized string, err error)

// validatorRegistry manages the set of registered validators.
type validatorRegistry struct {
	mu         sync.RWMutex
	validators map[string]Validator
}

// registry is the global validator registry.
var registry = &validatorRegistry{
	validators: make(map[string]Validator),
}

// RegisterValidator registers a validator for a configuration key.
// Panics if a validator is already registered for the key.
func RegisterValidator(key string, validator Validator) {
	registry.mu.Lock()
	defer registry.mu.Unlock()
	if _, exists := registry.validators[key]; exists {
		panic(fmt.Sprintf("validator already registered for key: %s", key))
	}
	registry.validators[key] = validator
}

// getValidator returns the validator for a key, or nil if not registered.
func getValidator(key string) Validator {
	registry.mu.RLock()
	defer registry.mu.RUnlock()
	return registry.validators[key]
}

// PositiveIntValidator returns a validator that ensures a value is a positive integer.
func PositiveIntValidator() Validator {
	return func(key, value, defaultValue string) (string, error) {
		if value == "" {
			return defaultValue, nil
		}
		n, err := strconv.Atoi(value)
		if err != nil || n <= 0 {
			return "", fmt.Errorf("'%s' must be a positive integer", value)
		}
		return value, nil
	}
}

// EnumValidator returns a validator that ensures a value is one of the allowed enum values.
func EnumValidator(allowed map[string]bool) Validator {
	return func(key, value, defaultValue string) (string, error) {
		if value == "" {
			return defaultValue, nil
		}
		valueLower := strings.ToLower(value)
		if !allowed[valueLower] {
			return "", fmt.Errorf("'%s' must be one of: %s", value, allowedValues(allowed))
		}
		return valueLower, nil
	}
}

// BoolValidator returns a validator that normalizes and validates boolean values.
func BoolValidator() Validator {
	return func(key, value, defaultValue string) (string, error) {
		if value == "" {
			return defaultValue, nil
		}
		normalized := normalizeBool(value)
		if normalized != "true" && normalized != "false" {
			return "", fmt.Errorf("'%s' must be one of: 1, true, yes, on, 0, false, no, off", value)
		}
		return normalized, nil
	}
}

// PatternValidator returns a validator that rejects naming patterns
// containing path separators.
func PatternValidator() Validator {
	return func(key, value, defaultValue string) (string, error) {
		if value == "" {
			return defaultValue, nil
		}
		if strings.ContainsAny(value, "/\\") {
			return "", fmt.Errorf("'%s' must not contain path separators", value)
		}
		return value, nil
	}
}

// normalizeBool converts various boolean representations to "true"/"false".
func normalizeBool(val string) string {
	switch strings.ToLower(val) {
	case "1", "true", "yes", "on":
		return "true"
	case "0", "false", "no", "off":
		return "false"
	default:
		// If invalid, return as-is; validation will fix it.
		return val
	}
}

func init() {
	initValidators()
}

// initValidators registers all configuration validators.
func initValidators() {
	positiveIntValidator := PositiveIntValidator()
	RegisterValidator("auto_delete.days_to_keep", positiveIntValidator)
	RegisterValidator("history.max_items", positiveIntValidator)
	RegisterValidator("logging.max_files", positiveIntValidator)

	RegisterValidator("storage.organize_by", EnumValidator(map[string]bool{"date": true, "application": true, "none": true}))
	RegisterValidator("storage.format", EnumValidator(map[string]bool{"png": true, "jpg": true, "bmp": true}))
	RegisterValidator("logging.level", EnumValidator(map[string]bool{"debug": true, "info": true, "warn": true, "error": true}))

	RegisterValidator("storage.naming_pattern", PatternValidator())

	boolValidator := BoolValidator()
	RegisterValidator("auto_delete.enabled", boolValidator)
	RegisterValidator("clipboard.copy_on_capture", boolValidator)
	RegisterValidator("clipboard.save_and_copy", boolValidator)
	RegisterValidator("logging.enabled", boolValidator)
	RegisterValidator("debug", boolValidator)
	RegisterValidator("quiet", boolValidator)
}

// allowedValues returns a comma-separated string of allowed values.
func allowedValues(allowed map[string]bool) string {
	values := make([]string, 0, len(allowed))
	for k := range allowed {
		values = append(values, k)
	}
	sort.Strings(values)
	return strings.Join(values, ", ")
}
