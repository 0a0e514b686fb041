package config

import (
	_ "embed"
	"fmt"
	"strings"

	"github.com/santhosh-tekuri/jsonschema/v5"
	"gopkg.in/yaml.v3"
)

//go:embed iconlens-config.json
var configSchemaData []byte

// ValidationError represents a schema validation failure with one message
// per violated constraint.
type ValidationError struct {
	Errors []string
}

func (e ValidationError) Error() string {
	if len(e.Errors) == 0 {
		return "validation failed"
	}
	return fmt.Sprintf("validation failed: %s", strings.Join(e.Errors, "; "))
}

// ValidateProjectConfig validates raw .iconlens.yml content against the
// embedded JSON schema.
func ValidateProjectConfig(yamlContent []byte) error {
	var data interface{}
	if err := yaml.Unmarshal(yamlContent, &data); err != nil {
		return fmt.Errorf("failed to parse YAML: %w", err)
	}

	schema, err := jsonschema.CompileString(ConfigFileName, string(configSchemaData))
	if err != nil {
		return fmt.Errorf("failed to compile config schema: %w", err)
	}

	if err := schema.Validate(data); err != nil {
		var messages []string
		if validationErr, ok := err.(*jsonschema.ValidationError); ok {
			for _, cause := range validationErr.Causes {
				messages = append(messages, cause.Message)
			}
			if len(messages) == 0 {
				messages = append(messages, validationErr.Message)
			}
		} else {
			messages = append(messages, err.Error())
		}
		return ValidationError{Errors: messages}
	}

	return nil
}
