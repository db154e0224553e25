package domain

// Ledger maps a product identifier to its desired quantity.
// Quantities are always positive; an entry whose quantity would drop to
// zero is removed rather than kept at zero.
type Ledger map[string]int64

// Clone returns an independent copy of the ledger.
func (l Ledger) Clone() Ledger {
	out := make(Ledger, len(l))
	for id, qty := range l {
		out[id] = qty
	}
	return out
}

// Count returns the sum of all quantities.
func (l Ledger) Count() int64 {
	var total int64
	for _, qty := range l {
		total += qty
	}
	return total
}

// Merge unions local and server entries. On key collision the server
// quantity wins; items only present locally are preserved. Entries with
// non-positive quantities are dropped.
func Merge(local, server Ledger) Ledger {
	out := make(Ledger, len(local)+len(server))
	for id, qty := range local {
		if qty > 0 {
			out[id] = qty
		}
	}
	for id, qty := range server {
		if qty > 0 {
			out[id] = qty
		} else {
			delete(out, id)
		}
	}
	return out
}
