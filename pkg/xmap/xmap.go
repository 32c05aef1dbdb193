package xmap

func Keys[M ~map[K]V, K comparable, V any](m M) []K {
	keys := make([]K, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	return keys
}

func Values[M ~map[K]V, K comparable, V any](m M) []V {
	vals := make([]V, 0, len(m))
	for _, v := range m {
		vals = append(vals, v)
	}
	return vals
}

// KVs flattens a map into alternating key/value pairs, handy for
// structured log attrs.
func KVs[M ~map[K]V, K comparable, V any](m M) []any {
	r := make([]any, 0, len(m)*2)
	for k, v := range m {
		r = append(r, k, v)
	}
	return r
}
