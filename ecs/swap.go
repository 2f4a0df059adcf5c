package ecs

// swapRemove deletes s[i] in O(1) by moving the last element into its place
// and shrinking the slice by one. The relative order of the remaining
// elements is not preserved; every list in this package tolerates that.
//
// The vacated tail slot is deliberately left populated: dispatch loops
// iterate over slice headers captured before user callbacks run, and those
// captured views must stay readable when a callback removes elements
// mid-tick.
func swapRemove[T any](s []T, i int) []T {
	last := len(s) - 1
	s[i] = s[last]
	return s[:last]
}
