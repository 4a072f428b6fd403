// Package conv provides checked integer conversions.
//
// Dictionary blocks address names with uint32 offsets and persisted schema
// headers carry uint32 lengths; these helpers reject values that do not fit
// instead of silently truncating them. Conversions that are safe by
// construction (loop indices below a checked bound) use plain casts.
package conv
