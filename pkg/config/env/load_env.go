package env

import (
	"errors"
	"io/fs"
	"log/slog"
	"os"

	"github.com/joho/godotenv"
)

// PathVar overrides the .env location.
const PathVar = "ENV_PATH"

// LoadDotEnv loads variables from a .env file into the process environment.
// Variables already set are kept. A missing file is only an error when env is
// "local", where the file is expected to exist.
func LoadDotEnv(env string, defaultPath string) error {
	path := os.Getenv(PathVar)
	if path == "" {
		path = defaultPath
	}

	err := godotenv.Load(path)
	switch {
	case err == nil:
		slog.Debug("Loaded environment file", "path", path)
		return nil
	case errors.Is(err, fs.ErrNotExist) && env != "local":
		slog.Debug("No environment file, using process environment", "path", path)
		return nil
	default:
		return err
	}
}
