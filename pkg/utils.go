package pkg

func Filter[T any](items []T, predicate func(T) bool) []T {
	filtered := []T{}
	for _, item := range items {
		if predicate(item) {
			filtered = append(filtered, item)
		}
	}
	return filtered
}

// Converts a value suspected to be either an int or float64 to an int.
// Needed because json decoding turns every number into a float64.
func NumToInt(num any) int {
	switch num := num.(type) {
	case int:
		return num
	case float64:
		return int(num)
	}
	return 0
}
