package mix

import (
	"golang.org/x/exp/constraints"
)

// constrain limits a value to the [min, max] interval.
func constrain[T constraints.Float](value, min, max T) T {
	if value < min {
		return min
	}
	if value > max {
		return max
	}
	return value
}

// mapRange maps a value from one range to another.
func mapRange[T constraints.Float](value, fromMin, fromMax, toMin, toMax T) T {
	return (value-fromMin)/(fromMax-fromMin)*(toMax-toMin) + toMin
}
