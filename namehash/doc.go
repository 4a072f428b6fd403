// Package namehash provides the field-name hash functions dictionaries are
// built with, and the streaming MurmurHash3 state used to fold a dictionary
// into a larger cache key.
//
// # Name Hashes
//
// A dictionary hashes every name once at construction. Lookups never hash:
// the caller hashes the name with the same Func, usually once per query
// plan, and passes the result to every lookup.
//
//	fn := namehash.Default
//	h := fn("name")
//	fieldno, ok := dict.FieldNo("name", h)
//
// # Streaming
//
// State carries a running MurmurHash3 x86_32 value plus the carry of a
// partially filled 4-byte block, so input may be fed in arbitrary pieces:
//
//	st := namehash.NewState(seed)
//	st.ProcessString("id")
//	st.ProcessString("name")
//	digest := st.Sum(6)
//
// The digest equals Sum32(seed, []byte("idname")).
package namehash
