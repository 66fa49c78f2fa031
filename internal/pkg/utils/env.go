package utils

import (
	"fmt"
	"os"
	"strconv"
	"sync"
)

var (
	malformedEnvMu sync.Mutex
	malformedEnv   = make(map[string]error)
)

func lookupEnv[T any](key string, defaultValue T, parse func(string) (T, error)) T {
	value, exists := os.LookupEnv(key)
	if !exists {
		return defaultValue
	}

	parsed, err := parse(value)
	if err != nil {
		malformedEnvMu.Lock()
		malformedEnv[key] = fmt.Errorf("%s=%q: %w", key, value, err)
		malformedEnvMu.Unlock()
		return defaultValue
	}
	return parsed
}

func GetEnvString(key, defaultValue string) string {
	return lookupEnv(key, defaultValue, func(value string) (string, error) { return value, nil })
}

func GetEnvInt(key string, defaultValue int) int {
	return lookupEnv(key, defaultValue, strconv.Atoi)
}

func GetEnvBool(key string, defaultValue bool) bool {
	return lookupEnv(key, defaultValue, strconv.ParseBool)
}

// MalformedEnv returns one error per variable that was set but could not be
// parsed, so the caller can report them once a logger exists. Those variables
// were read as their defaults.
func MalformedEnv() []error {
	malformedEnvMu.Lock()
	defer malformedEnvMu.Unlock()

	errs := make([]error, 0, len(malformedEnv))
	for _, err := range malformedEnv {
		errs = append(errs, err)
	}
	return errs
}
