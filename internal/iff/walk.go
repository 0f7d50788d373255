/*
   Copyright Mycophonic.

   Licensed under the Apache License, Version 2.0 (the "License");
   you may not use this file except in compliance with the License.
   You may obtain a copy of the License at

       http://www.apache.org/licenses/LICENSE-2.0

   Unless required by applicable law or agreed to in writing, software
   distributed under the License is distributed on an "AS IS" BASIS,
   WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
   See the License for the specific language governing permissions and
   limitations under the License.
*/

//nolint:gosec // Integer conversions are bounded by the caller's 50MiB input cap.
package iff

import "encoding/binary"

// Recursive IFF chunk walker. Adapted from the same box-walking shape as an
// ISOBMFF reader (header + length, iterate children within a bounded
// region, recurse into containers) but for IFF's simpler big-endian
// tag(4)+length(4)+payload[+pad] chunks and 'CAT ' containers in place of
// nested boxes.

const (
	chunkHeaderSize = 8 // tag(4) + length(4)
	catFormTagSize  = 4 // CAT payload starts with a 4-byte form-type tag
	maxWalkDepth    = 64
)

var tagCAT = [4]byte{'C', 'A', 'T', ' '} //nolint:gochecknoglobals

// Visitor is called once per recognized chunk encountered at any nesting
// depth, including chunks nested inside 'CAT ' containers. payload is the
// chunk's unpadded data; the walker has already verified it fits within the
// enclosing boundary.
type Visitor func(tag [4]byte, payload []byte)

// Walk walks the chunks in data starting from a root 'CAT ' chunk at offset
// 0, calling visit for every chunk encountered (including the nested
// contents of further 'CAT ' containers). It returns ErrNoCATRoot if data
// does not begin with a valid 'CAT ' chunk.
func Walk(data []byte, visit Visitor) error {
	if len(data) < chunkHeaderSize+catFormTagSize {
		return ErrTooSmall
	}

	if [4]byte(data[0:4]) != tagCAT {
		return ErrNoCATRoot
	}

	walkChunks(data, len(data), 0, 0, visit)

	return nil
}

// walkChunks walks chunks starting at offset, never reading past boundary.
// boundary is always the enclosing 'CAT' chunk's end (or the file's end at
// depth 0), so a chunk claiming a length that would cross it is refused
// rather than trusted.
func walkChunks(data []byte, boundary, offset, depth int, visit Visitor) {
	if depth > maxWalkDepth {
		return
	}

	for offset+chunkHeaderSize <= boundary {
		tag := [4]byte(data[offset : offset+4])
		chunkLen := int(binary.BigEndian.Uint32(data[offset+4 : offset+8]))

		paddedLen := chunkLen
		if paddedLen%2 == 1 {
			paddedLen++
		}

		if chunkLen < 0 || offset+chunkHeaderSize+paddedLen > boundary {
			break
		}

		payload := data[offset+chunkHeaderSize : offset+chunkHeaderSize+chunkLen]

		if tag == tagCAT {
			if chunkLen >= catFormTagSize {
				catBoundary := offset + chunkHeaderSize + chunkLen
				walkChunks(data, catBoundary, offset+chunkHeaderSize+catFormTagSize, depth+1, visit)
			}
		} else {
			visit(tag, payload)
		}

		offset += chunkHeaderSize + paddedLen
	}
}
