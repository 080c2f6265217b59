// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package util

// ShortVecMaximumBytes - maximum possible number of bytes in a ShortVec
const ShortVecMaximumBytes = 3

// ShortVecMaximumValue - largest length that can be encoded
const ShortVecMaximumValue = 0xffff

// ToShortVec - convert a 16 bit length to the compact form used in
// front of every vector in the ledger wire format
//
// Structure of the result
// byte 1:  ext | B06 | B05 | B04 | B03 | B02 | B01 | B00
// byte 2:  ext | B13 | B12 | B11 | B10 | B09 | B08 | B07
// byte 3:    0 |   0 |   0 |   0 |   0 |   0 | B15 | B14
//
// returns nil if the value is out of range
func ToShortVec(value int) []byte {
	if value < 0 || value > ShortVecMaximumValue {
		return nil
	}

	result := make([]byte, 0, ShortVecMaximumBytes)
	for {
		b := byte(value & 0x7f)
		value >>= 7
		if 0 == value {
			result = append(result, b)
			return result
		}
		result = append(result, b|0x80)
	}
}

// FromShortVec - convert up to ShortVecMaximumBytes to a length
//
// also return the number of bytes used as second value
// returns 0, 0 if the buffer is truncated, too long or not in
// canonical form (a redundant zero byte)
func FromShortVec(buffer []byte) (int, int) {
	result := 0

	for count := 0; count < len(buffer) && count < ShortVecMaximumBytes; count += 1 {
		currByte := int(buffer[count])

		// a zero continuation byte would be an alias of a shorter form
		if count > 0 && 0 == currByte {
			return 0, 0
		}

		if ShortVecMaximumBytes-1 == count {
			if currByte > 0x03 {
				return 0, 0
			}
			return result | currByte<<14, count + 1
		}

		result |= (currByte & 0x7f) << (7 * uint(count))
		if 0 == currByte&0x80 {
			return result, count + 1
		}
	}
	return 0, 0
}
