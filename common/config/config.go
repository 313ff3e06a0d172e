package config

import (
	"os"

	"github.com/pkg/errors"
	"github.com/ykhdr/hash-bruteforce/common/internal/kdl"
)

const DefaultConfigPath = "./config/config.kdl"

// InitializeConfig loads the KDL file at path over defaultCfg and configures
// logging from the result. An empty path means DefaultConfigPath, which is
// allowed to be absent.
func InitializeConfig[T any](path string, defaultCfg T) (*T, error) {
	configPath := path
	if configPath == "" {
		configPath = DefaultConfigPath
	}
	config, err := kdl.Unmarshal[T](configPath, defaultCfg)
	switch {
	case err == nil:
	case path == "" && errors.Is(err, os.ErrNotExist):
		config = defaultCfg
	default:
		return nil, errors.Wrapf(err, "unmarshal kdl %s", configPath)
	}
	setupLogger(&config)
	return &config, nil
}
