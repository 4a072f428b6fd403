// Package tupledict provides the field-name dictionary of a tuple format:
// a shared, reference-counted map from field names to field ordinals.
//
// A dictionary is built once per schema definition and then read on every
// field access by name. Construction carves the ordinal-indexed name array
// and every name's bytes out of a single block, so a dictionary costs one
// arena allocation plus its index, and names of neighboring fields share
// cache lines.
//
// # Quick Start
//
//	d, err := tupledict.New([]string{"id", "name", "age"})
//	if err != nil {
//	    var dup *tupledict.ErrDuplicateFieldName
//	    if errors.As(err, &dup) { ... }
//	}
//	defer d.Unref()
//
//	h := d.NameHash()("name") // hoist: once per query, not per row
//	fieldno, ok := d.FieldNo("name", h)
//
// # Hashes
//
// Lookups never hash. The caller passes the hash of the name computed with
// the dictionary's namehash.Func. Passing any other value gives an
// unspecified result; it is not detected.
//
// # Ownership
//
// New and Dup return a dictionary with one reference. Ref adds a reference,
// Unref drops one and releases the block and index when the last reference
// goes away. Counting is not atomic: a dictionary must be confined to one
// goroutine or guarded by the caller.
//
// # Hot Reload
//
// Swap exchanges the contents of two dictionaries but not their reference
// counts. A schema change builds a fresh dictionary, swaps it into the one
// every existing tuple format already points at, and drops the stale
// handle:
//
//	fresh, err := tupledict.New(newNames)
//	...
//	tupledict.Swap(shared, fresh)
//	fresh.Unref() // releases the old contents
//
// Nobody holding shared needs to be revisited. Neither operand may be used
// concurrently with the swap.
package tupledict
