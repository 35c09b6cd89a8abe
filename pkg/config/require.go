package config

import "fmt"

func MustNonEmpty(value, envName string) {
	if value == "" {
		panic(fmt.Sprintf("missing required env %s", envName))
	}
}

func MustNonEmptyBytes(value []byte, envName string) {
	if len(value) == 0 {
		panic(fmt.Sprintf("missing required env %s", envName))
	}
}

// RequireNonEmpty is the non-panicking form used by commands that report errors.
func RequireNonEmpty(pairs map[string]string) error {
	for env, v := range pairs {
		if v == "" {
			return fmt.Errorf("missing required env %s", env)
		}
	}
	return nil
}
