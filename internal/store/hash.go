package store

import "errors"

const (
	hashMultiplier = 37

	MaxCapacity uint64 = 1 << 40
)

var (
	ErrInvalidCapacity  = errors.New("store: capacity must be positive")
	ErrCapacityTooLarge = errors.New("store: capacity exceeds maximum")
)

// Hash maps key to [0, modulus) by Horner accumulation over its runes.
// modulus must be positive. Invalid UTF-8 bytes each hash as U+FFFD.
func Hash(key string, modulus uint64) uint64 {
	var h uint64
	for _, r := range key {
		h = h*hashMultiplier + uint64(r)
	}
	return h % modulus
}

// NextPrime returns the smallest odd prime >= n. Candidates are odd only, so
// inputs below 3 yield 3.
func NextPrime(n uint64) uint64 {
	if n < 3 {
		return 3
	}
	if n%2 == 0 {
		n++
	}
	for !isOddPrime(n) {
		n += 2
	}
	return n
}

func isOddPrime(n uint64) bool {
	for i := uint64(3); i*i <= n; i += 2 {
		if n%i == 0 {
			return false
		}
	}
	return true
}

func initialCapacity(requested uint64) (uint64, error) {
	if requested == 0 {
		return 0, ErrInvalidCapacity
	}
	if requested > MaxCapacity {
		return 0, ErrCapacityTooLarge
	}
	return NextPrime(requested), nil
}
