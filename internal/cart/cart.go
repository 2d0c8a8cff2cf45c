package cart

// Cart is a cart snapshot: product id -> size label -> quantity.
type Cart map[string]map[string]int

// Clone returns a deep copy of c. A nil cart clones to an empty cart.
func Clone(c Cart) Cart {
	out := make(Cart, len(c))
	for productID, sizes := range c {
		out[productID] = make(map[string]int, len(sizes))
		for size, qty := range sizes {
			out[productID][size] = qty
		}
	}
	return out
}

// Merge combines a server-stored cart with a client-held cart by adding
// quantities per (product, size) pair. Missing carts are treated as empty.
// The inputs are never mutated; the result is a fresh mapping.
//
// Merging is commutative per key but not idempotent: merging the same
// non-empty client cart twice doubles its quantities.
func Merge(serverCart, clientCart Cart) Cart {
	result := Clone(serverCart)

	for productID, sizes := range clientCart {
		if _, ok := result[productID]; !ok {
			result[productID] = make(map[string]int, len(sizes))
		}
		for size, qty := range sizes {
			result[productID][size] += qty
		}
	}

	return result
}
