// Package arith provides the arithmetic kernels exported by calcplug
// plugins. The functions are pure and stateless; numeric overflow and
// underflow follow Go's native semantics and are not handled.
package arith

// Add returns the sum of left and right.
func Add(left, right float64) float64 {
	return left + right
}

// Subtract returns left minus right.
func Subtract(left, right float64) float64 {
	return left - right
}

// AddUint returns the sum of left and right.
func AddUint(left, right uint64) uint64 {
	return left + right
}

// SubtractUint returns left minus right.
func SubtractUint(left, right uint64) uint64 {
	return left - right
}
