// Package shared holds small helpers used across the client packages.
package shared

// WipeByteArray overwrites the contents of the provided byte slice with zeros.
// Passwords and provider keys read from the terminal are wiped this way once
// they have been handed to the API client.
//
// If the slice is nil, the function does nothing.
func WipeByteArray(b []byte) {
	if b == nil {
		return
	}
	for i := range b {
		b[i] = 0
	}
}
