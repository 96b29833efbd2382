package dotenv

import (
	"errors"
	"io/fs"

	"github.com/joho/godotenv"
)

// DefaultFile is the file LoadDefault reads from the working directory
const DefaultFile = ".env"

// Load reads a .env file and loads the key-value pairs into the environment.
// Variables already present in the environment are left untouched.
func Load(filename string) error {
	return godotenv.Load(filename)
}

// LoadDefault loads .env file from the current directory
func LoadDefault() error {
	return Load(DefaultFile)
}

// LoadFirst loads the first file in paths that exists and returns its name.
// Missing files are skipped; an empty name with a nil error means none were found.
func LoadFirst(paths ...string) (string, error) {
	for _, path := range paths {
		if path == "" {
			continue
		}
		err := Load(path)
		if errors.Is(err, fs.ErrNotExist) {
			continue
		}
		if err != nil {
			return path, err
		}
		return path, nil
	}
	return "", nil
}
