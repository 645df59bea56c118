// Package secrets resolves sensitive configuration values, such as the
// Gemini API key, from a file or an inline setting.
package secrets

import (
	"fmt"
	"os"
	"strings"
)

// Source describes where one secret comes from. When both are set, File takes
// precedence over Value so an operator can rotate a key on disk without
// touching the configuration file.
type Source struct {
	// Name labels the secret in error messages ("gemini api key is not
	// configured").
	Name string
	// Value is an inline secret from configuration or the environment.
	Value string
	// File points to a file whose trimmed contents are the secret.
	File string
}

// Load resolves the secret described by src. The returned value is always
// trimmed; an empty result is an error naming the source so the operator
// knows which setting to fix.
func Load(src Source) (string, error) {
	name := strings.TrimSpace(src.Name)
	if name == "" {
		name = "secret"
	}

	if file := strings.TrimSpace(src.File); file != "" {
		data, err := os.ReadFile(file)
		if err != nil {
			return "", fmt.Errorf("reading %s from file %q: %w", name, file, err)
		}
		if secret := strings.TrimSpace(string(data)); secret != "" {
			return secret, nil
		}
		return "", fmt.Errorf("%s file %q is empty", name, file)
	}

	if secret := strings.TrimSpace(src.Value); secret != "" {
		return secret, nil
	}

	return "", fmt.Errorf("%s is not configured", name)
}
