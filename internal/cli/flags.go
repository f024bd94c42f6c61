package cli

import (
	"fmt"
	"strconv"

	"github.com/spf13/pflag"
)

// optionalInt returns the flag value only when the user set it.
func optionalInt(fs *pflag.FlagSet, name string) (*int, error) {
	if !fs.Changed(name) {
		return nil, nil
	}
	v, err := fs.GetInt(name)
	if err != nil {
		return nil, err
	}
	return &v, nil
}

// positiveArg parses a 1-based positional number such as a step index.
func positiveArg(name, raw string) (int, error) {
	n, err := strconv.Atoi(raw)
	if err != nil || n < 1 {
		return 0, fmt.Errorf("%s must be a positive number, got %q", name, raw)
	}
	return n, nil
}
