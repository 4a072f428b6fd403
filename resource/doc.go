// Package resource bounds the memory, background concurrency and IO
// throughput the dictionary stack may consume.
//
// A single Controller is typically shared by every dictionary built with
// tupledict.WithMemoryController and by the catalog persisting them. All
// methods are safe for concurrent use, and a nil *Controller imposes no
// limits.
package resource
