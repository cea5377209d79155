// Copyright Amazon.com, Inc. or its affiliates. All Rights Reserved.
// SPDX-License-Identifier: Apache-2.0

package security

// Wipe overwrites b with zeros. It is used on buffers that held raw vault or
// session bytes once they have been decoded, since those bytes contain the
// original values behind every placeholder.
//
// Limitations: Go's garbage collector may move or copy memory at any time, and
// decoded strings are immutable copies that cannot be zeroed. Wipe reduces the
// window of exposure but cannot guarantee that no copies exist elsewhere in the
// heap. Do not rely on this for cryptographic-strength memory protection.
func Wipe(b []byte) {
	for i := range b {
		b[i] = 0
	}
}

// WipeAfter runs decode on data, then wipes data whether or not decode
// succeeded.
func WipeAfter(data []byte, decode func([]byte) error) error {
	defer Wipe(data)
	return decode(data)
}
