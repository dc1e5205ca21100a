package rotation

import (
	apperrors "github.com/EnemigoPython/Wallpaper-Rotator/internal/errors"
	"github.com/EnemigoPython/Wallpaper-Rotator/internal/foundation"
)

// Order determines how the next wallpaper index is chosen.
type Order string

const (
	OrderSequential Order = "sequential"
	OrderRandom     Order = "random"
)

var orderNormalizer = foundation.NewNormalizer(map[string]Order{
	string(OrderSequential): OrderSequential,
	string(OrderRandom):     OrderRandom,
}, OrderSequential)

// ParseOrder converts user input to an Order, rejecting unknown values.
// Use for flags and commands where a typo must not silently change behavior.
func ParseOrder(raw string) (Order, error) {
	order, err := orderNormalizer.NormalizeWithError(raw)
	if err != nil {
		return OrderSequential, apperrors.InvalidOrder(raw)
	}
	return order, nil
}

// NormalizeOrder converts persisted or configured input to an Order,
// falling back to sequential for unknown values.
func NormalizeOrder(raw string) Order {
	return orderNormalizer.Normalize(raw)
}

func (o Order) String() string { return string(o) }
