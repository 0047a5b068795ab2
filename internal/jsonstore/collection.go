package jsonstore

import "slices"

// keyed is implemented by every record type; Key returns its id.
type keyed interface {
	Key() int
}

func maxKey[T keyed](items []T) int {
	top := 0
	for _, it := range items {
		if it.Key() > top {
			top = it.Key()
		}
	}
	return top
}

// find returns a pointer to the first element matching pred, or nil.
func find[T any](items []T, pred func(T) bool) *T {
	i := slices.IndexFunc(items, pred)
	if i < 0 {
		return nil
	}
	return &items[i]
}

func hasKey[T keyed](id int) func(T) bool {
	return func(it T) bool { return it.Key() == id }
}

// without returns items minus every element whose key is id. The result
// never aliases items.
func without[T keyed](items []T, id int) []T {
	out := make([]T, 0, len(items))
	for _, it := range items {
		if it.Key() != id {
			out = append(out, it)
		}
	}
	return out
}
