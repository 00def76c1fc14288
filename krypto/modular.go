package krypto

import (
	"errors"
	"fmt"
)

// Modular arithmetic errors
var (
	ErrNotInvertible  = errors.New("not invertible")
	ErrInvalidModulus = errors.New("modulus must be at least 2")
)

// Mod returns a mod m normalized into [0, m).
func Mod(a, m int) int {
	r := a % m
	if r < 0 {
		r += m
	}
	return r
}

// GCD returns the greatest common divisor of a and b, always non-negative.
func GCD(a, b int) int {
	if a < 0 {
		a = -a
	}
	if b < 0 {
		b = -b
	}
	for b != 0 {
		a, b = b, a%b
	}
	return a
}

// Invertible reports whether a has a multiplicative inverse modulo m.
func Invertible(a, m int) bool {
	return m >= 2 && GCD(a, m) == 1
}

// ModularInverse returns x in [0, m) such that (a*x) mod m == 1.
// It uses the extended Euclidean algorithm and fails with ErrNotInvertible when
// gcd(a, m) != 1.
func ModularInverse(a, m int) (int, error) {
	if m < 2 {
		return 0, fmt.Errorf("modular inverse of %d mod %d: %w", a, m, ErrInvalidModulus)
	}
	r0, r1 := m, Mod(a, m)
	t0, t1 := 0, 1
	for r1 != 0 {
		q := r0 / r1
		r0, r1 = r1, r0-q*r1
		t0, t1 = t1, t0-q*t1
	}
	if r0 != 1 {
		return 0, fmt.Errorf("%d mod %d (gcd %d): %w", a, m, r0, ErrNotInvertible)
	}
	return Mod(t0, m), nil
}
