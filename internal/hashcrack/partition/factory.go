package partition

import "github.com/pkg/errors"

type Type int

const (
	PrefixStrategyType Type = iota
	IndexStrategyType
)

const (
	prefixStrategyName = "prefix"
	indexStrategyName  = "index"
)

func NewStrategy(strategyType Type) Strategy {
	switch strategyType {
	case IndexStrategyType:
		return newIndexStrategy()
	default:
		return newPrefixStrategy()
	}
}

// ParseStrategyName maps a configured name to a strategy type. An empty name
// selects the default.
func ParseStrategyName(name string) (Type, error) {
	switch name {
	case "", prefixStrategyName:
		return PrefixStrategyType, nil
	case indexStrategyName:
		return IndexStrategyType, nil
	default:
		return PrefixStrategyType, errors.Wrapf(ErrUnknownStrategy, "%q", name)
	}
}

func DefaultStrategyStr() string {
	return prefixStrategyName
}
