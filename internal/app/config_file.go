package app

import (
	"os"

	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"
)

// LoadConfigFile reads a YAML config file and merges it under base (flags
// always win over file contents for any field the operator set on the
// command line).
func LoadConfigFile(path string, base Config) (Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return base, errors.Wrapf(err, "app: read config file %s", path)
	}

	var fromFile Config
	if err := yaml.Unmarshal(data, &fromFile); err != nil {
		return base, errors.Wrapf(err, "app: parse config file %s", path)
	}

	merged := base
	merged.mergeFrom(fromFile)
	return merged, nil
}
