package process

import (
	"fmt"
	"strings"
)

// ValidateExecutionConfig checks an execution configuration before spawn.
func ValidateExecutionConfig(execution ExecutionConfig) error {
	if err := validateExecutablePath(execution.ExecutablePath); err != nil {
		return err
	}

	for i, entry := range execution.Environment {
		if !strings.Contains(entry, "=") {
			return fmt.Errorf("environment entry %d is not KEY=VALUE: %q", i, entry)
		}
	}

	return nil
}

func validateExecutablePath(path string) error {
	if path == "" {
		return fmt.Errorf("executable path cannot be empty")
	}
	if strings.TrimSpace(path) == "" {
		return fmt.Errorf("executable path cannot be whitespace only")
	}
	if strings.ContainsRune(path, 0) {
		return fmt.Errorf("executable path contains a null byte")
	}
	return nil
}
