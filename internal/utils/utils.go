// Package utils provides small path helpers shared across simplespeak.
package utils

import (
	"os"

	"github.com/mitchellh/go-homedir"
)

// ExpandPath expands the tilde and all environment variables in path.
func ExpandPath(path string) string {
	s, err := homedir.Expand(path)
	if err == nil {
		path = s
	}
	return os.ExpandEnv(path)
}
