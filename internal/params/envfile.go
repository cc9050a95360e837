package params

import (
	"fmt"

	"github.com/joho/godotenv"
)

// ParseEnvFile parses variables in .env format: KEY=VALUE lines, # comments,
// quoted values and ${VAR} expansion of earlier keys.
func ParseEnvFile(content []byte) (map[string]string, error) {
	vars, err := godotenv.Unmarshal(string(content))
	if err != nil {
		return nil, fmt.Errorf("invalid variable file: %w", err)
	}
	return vars, nil
}

// ReadVarFile reads the .env formatted variable file at path.
func ReadVarFile(path string) (map[string]string, error) {
	vars, err := godotenv.Read(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read variable file %s: %w", path, err)
	}
	return vars, nil
}
