package kdl

import (
	"os"

	"github.com/sblinch/kdl-go"
)

func Unmarshal[T any](kdlPath string, defaultCfg T) (T, error) {
	var nilT T
	data, err := os.ReadFile(kdlPath)
	if err != nil {
		return nilT, err
	}
	return UnmarshalBytes(data, defaultCfg)
}

// UnmarshalBytes decodes data on top of defaultCfg, so nodes absent from the
// document keep their default values.
func UnmarshalBytes[T any](data []byte, defaultCfg T) (T, error) {
	var nilT T
	if err := kdl.Unmarshal(data, &defaultCfg); err != nil {
		return nilT, err
	}
	return defaultCfg, nil
}
