// Package prime implements trial-division primality testing and range
// enumeration. It is the single CPU-bound kernel shared by every execution
// strategy; everything in this package is pure and allocation-light so that
// benchmark timings measure arithmetic, not bookkeeping.
package prime

// IsPrime reports whether n is prime using trial division with 6k±1 wheel
// skipping. After eliminating multiples of 2 and 3, every remaining prime
// candidate has the form 6k-1 or 6k+1, so the loop tests divisor pairs
// (i, i+2) starting at 5 and stops once i² exceeds n.
//
// Complexity: O(√n) time, O(1) space. Deterministic for all int64 inputs.
func IsPrime(n int64) bool {
	if n <= 1 {
		return false
	}
	if n <= 3 {
		return true
	}
	if n%2 == 0 || n%3 == 0 {
		return false
	}
	for i := int64(5); i*i <= n; i += 6 {
		if n%i == 0 || n%(i+2) == 0 {
			return false
		}
	}
	return true
}

// PrimesInRange returns all primes in [start, end] in ascending order.
// A reversed range (start > end) yields nil rather than an error.
func PrimesInRange(start, end int64) []int64 {
	var primes []int64
	for n := start; n <= end; n++ {
		if IsPrime(n) {
			primes = append(primes, n)
		}
	}
	return primes
}
