package sliceutils

// Head returns at most the first n elements of slice. n <= 0 yields an empty slice.
func Head[T any](slice []T, n int) []T {
	if n <= 0 {
		return slice[:0:0]
	}
	return slice[:min(n, len(slice))]
}

// Clone copies slice so callers may not alias cached data.
func Clone[T any](slice []T) []T {
	if slice == nil {
		return nil
	}
	res := make([]T, len(slice))
	copy(res, slice)
	return res
}
