package utils

import (
	"fmt"
	"math/rand"
	"os"
	"path/filepath"
	"time"

	"github.com/oklog/ulid"
	"github.com/spf13/cobra"
	"sigs.k8s.io/yaml"
)

// Ternary mimics the ternary operator
func Ternary(cond bool, a, b any) any {
	if cond {
		return a
	}
	return b
}

// UnmarshalFile reads a JSON or YAML file into dest and optionally validates
// the result with struct tags.
func UnmarshalFile(path string, dest any, validate bool) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("failed to read file %s: %s", path, err)
	}

	// yaml handles both encodings; json files are valid yaml
	if err := yaml.Unmarshal(data, dest); err != nil {
		return fmt.Errorf("failed to unmarshal file %s: %s", path, err)
	}

	if validate {
		if err := Validate(dest); err != nil {
			return fmt.Errorf("invalid file %s: %s", path, err)
		}
	}
	return nil
}

// WriteFileAtomic writes data via a temp file and rename so a crash mid write
// never leaves a truncated file behind.
func WriteFileAtomic(path string, data []byte) error {
	tmp := filepath.Join(filepath.Dir(path), fmt.Sprintf(".%s.tmp", filepath.Base(path)))
	if err := os.WriteFile(tmp, data, 0o644); err != nil {
		return fmt.Errorf("failed to write %s: %s", tmp, err)
	}
	return os.Rename(tmp, path)
}

// IsValidSubcommand checks if the passed subcommand is supported by the parent command
func IsValidSubcommand(available []*cobra.Command, sub string) bool {
	for _, s := range available {
		if sub == s.CalledAs() {
			return true
		}
	}
	return false
}

// ULID generates a lexicographically sortable unique identifier
func ULID() string {
	entropy := ulid.Monotonic(rand.New(rand.NewSource(time.Now().UnixNano())), 0)
	return ulid.MustNew(ulid.Timestamp(time.Now()), entropy).String()
}
