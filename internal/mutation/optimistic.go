// Package mutation keeps a client-side copy of a resource list consistent
// with the backend while edits are applied optimistically.
package mutation

// Item is anything with a stable identity inside its list.
type Item interface {
	ItemKey() string
}

// ApplyOptimistic returns a new slice with the same length and order as
// items, where only the item whose key matches has been passed through
// patch. items is never modified.
func ApplyOptimistic[T Item](items []T, key string, patch func(T) T) []T {
	out := make([]T, len(items))
	for i, it := range items {
		if it.ItemKey() == key {
			out[i] = patch(it)
			continue
		}
		out[i] = it
	}
	return out
}

// Replace swaps the item with the same key as next. Missing keys leave the
// list unchanged.
func Replace[T Item](items []T, next T) []T {
	key := next.ItemKey()
	return ApplyOptimistic(items, key, func(T) T { return next })
}

// Remove drops the item with key, preserving the order of the rest.
func Remove[T Item](items []T, key string) []T {
	out := make([]T, 0, len(items))
	for _, it := range items {
		if it.ItemKey() != key {
			out = append(out, it)
		}
	}
	return out
}

// Reorder places the items named by keys first, in that order. Items not
// named keep their relative order after them; unknown keys are ignored.
func Reorder[T Item](items []T, keys []string) []T {
	byKey := make(map[string]T, len(items))
	for _, it := range items {
		byKey[it.ItemKey()] = it
	}

	out := make([]T, 0, len(items))
	placed := make(map[string]bool, len(keys))
	for _, k := range keys {
		it, ok := byKey[k]
		if !ok || placed[k] {
			continue
		}
		out = append(out, it)
		placed[k] = true
	}
	for _, it := range items {
		if !placed[it.ItemKey()] {
			out = append(out, it)
		}
	}
	return out
}

func clone[T any](items []T) []T {
	out := make([]T, len(items))
	copy(out, items)
	return out
}
