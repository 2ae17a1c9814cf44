package config

import (
	"os"

	"github.com/arthur-debert/modlist/pkg/errors"
	"github.com/joho/godotenv"
)

// LoadDotEnv loads KEY=VALUE pairs from path into the process environment.
// Variables already set in the environment win. A missing file is not an error.
func LoadDotEnv(path string) error {
	if _, err := os.Stat(path); err != nil {
		return nil
	}
	if err := godotenv.Load(path); err != nil {
		return errors.Wrapf(err, errors.ErrConfigLoad, "failed to load %s", path).
			WithDetail("path", path)
	}
	return nil
}
