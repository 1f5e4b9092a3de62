// Package readwrite bundles two separately owned half-duplex endpoints - one
// that produces bytes and one that accepts them - into a single socket-like
// value exposing both capabilities under one handle. Two ends of two separate
// one-directional pipes become one full-duplex connection.
//
// The combinator is a pure delegation shim: Read goes to the reader, Write
// goes to the writer, errors pass through untranslated, and the two paths
// share no state and no lock. A slow or blocked write is never observable on
// the read path, and vice versa, as long as the caller invokes them from
// independent goroutines.
//
// ReadWriteContext and Conn provide the context-aware equivalent, where each
// direction suspends and resumes independently under cancellation.
package readwrite
