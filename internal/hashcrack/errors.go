package hashcrack

import "github.com/pkg/errors"

var (
	ErrEmptyAlphabet    = errors.New("alphabet is empty")
	ErrInvalidMaxLength = errors.New("max length must be at least 1")
	ErrEmptyTarget      = errors.New("target digest is empty")
	ErrInvalidWorkers   = errors.New("worker count must be at least 1")
)

// ConfigError is a fatal, pre-search error: the search never starts.
type ConfigError struct {
	Err error
}

func (e *ConfigError) Error() string {
	return "configuration error: " + e.Err.Error()
}

func (e *ConfigError) Unwrap() error {
	return e.Err
}

func configError(err error) error {
	if err == nil {
		return nil
	}
	return &ConfigError{Err: err}
}

func IsConfigError(err error) bool {
	var cfgErr *ConfigError
	return errors.As(err, &cfgErr)
}
