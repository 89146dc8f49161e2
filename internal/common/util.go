// Package common holds small helpers shared across client layers.
package common

// WipeByteArray overwrites the contents of the provided byte slice with
// zeros. Used to scrub password buffers after they have been handed to
// the auth layer. A nil slice is a no-op.
func WipeByteArray(b []byte) {
	for i := range b {
		b[i] = 0
	}
}
