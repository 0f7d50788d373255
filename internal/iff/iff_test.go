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

package iff

import "encoding/binary"

// chunk builds one IFF chunk: 4-byte tag, 4-byte big-endian length, payload,
// and a pad byte if the payload length is odd.
func chunk(tag string, payload []byte) []byte {
	buf := make([]byte, 0, 8+len(payload)+1)
	buf = append(buf, tag...)

	var lenBuf [4]byte

	binary.BigEndian.PutUint32(lenBuf[:], uint32(len(payload))) //nolint:gosec
	buf = append(buf, lenBuf[:]...)
	buf = append(buf, payload...)

	if len(payload)%2 == 1 {
		buf = append(buf, 0)
	}

	return buf
}

// cat builds a root 'CAT ' container: form-type tag followed by concatenated
// child chunks.
func cat(formType string, children ...[]byte) []byte {
	payload := []byte(formType)
	for _, c := range children {
		payload = append(payload, c...)
	}

	return chunk("CAT ", payload)
}
