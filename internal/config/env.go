package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"

	"github.com/joho/godotenv"
)

// DefaultEnv lists the keys written by EnsureEnvFile.
func DefaultEnv() map[string]string {
	return map[string]string{
		"PROFILE_WEB_ENV":               EnvDevelopment,
		"PROFILE_WEB_PORT":              defaultPort,
		"PROFILE_WEB_BASE_URL":          "",
		"PROFILE_WEB_TEMPLATES_DIR":     defaultTemplatesDir,
		"PROFILE_WEB_PUBLIC_DIR":        defaultPublicDir,
		"PROFILE_WEB_PROFILE_FILE":      defaultProfileFile,
		"PROFILE_WEB_DEV":               "true",
		"PROFILE_WEB_SECURITY_META":     "false",
		"PROFILE_WEB_LOG_LEVEL":         defaultLogLevel,
		"CLARITY_PROJECT_ID":            "",
		"PROFILE_WEB_GA_MEASUREMENT_ID": "",
	}
}

// EnsureEnvFile writes a .env file with default keys when path does not exist.
// It reports whether a file was created.
func EnsureEnvFile(path string) (bool, error) {
	if path == "" {
		path = defaultEnvFile
	}
	_, err := os.Stat(path)
	if err == nil {
		return false, nil
	}
	if !errors.Is(err, fs.ErrNotExist) {
		return false, fmt.Errorf("config: stat %s: %w", path, err)
	}
	if err := godotenv.Write(DefaultEnv(), path); err != nil {
		return false, fmt.Errorf("config: write %s: %w", path, err)
	}
	return true, nil
}
