package utils

func Contains(slice []string, item string) bool {
	for _, s := range slice {
		if s == item {
			return true
		}
	}
	return false
}

// Ptr returns a pointer to a copy of v. Handy for nullable columns.
func Ptr[T any](v T) *T {
	return &v
}
