// Package tupleformat builds tuple formats on top of shared field-name
// dictionaries.
//
// A Format pairs a dictionary with the bookkeeping its users need: field
// keys hashed once and reused for every row, projections of a key list to
// a set of ordinals, and a Registry that hands out one Format per distinct
// list of field names.
//
// A Registry guards its formats with one read-write lock. Format reads
// take the read side; Register, Release and Alter take the write side.
// Alter swaps new names into a live format in place, so every holder of
// the format or of its dictionary sees the new names. Code that reads the
// dictionary from Format.Dict directly bypasses the lock and must not race
// with Alter.
package tupleformat
