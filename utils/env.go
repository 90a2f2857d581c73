package utils

import (
	"os"
	"strconv"
)

// GetenvInt returns the integer value of the environment variable name, or defaultVal if it is
// unset or not an integer.
func GetenvInt(name string, defaultVal int) int {
	s := os.Getenv(name)
	if s == "" {
		return defaultVal
	}

	x, err := strconv.Atoi(s)
	if err != nil {
		return defaultVal
	}
	return x
}
