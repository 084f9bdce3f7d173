/*
Copyright SecureKey Technologies Inc. All Rights Reserved.

SPDX-License-Identifier: Apache-2.0
*/

package cas

// Client defines interface for accessing the underlying content addressable storage.
type Client interface {
	// Write stores the content and returns its address.
	Write(content []byte) (string, error)

	// Read returns the content stored at the address.
	Read(address string) ([]byte, error)
}
