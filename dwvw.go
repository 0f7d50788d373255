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

package rexcore

import (
	"fmt"

	"github.com/mycophonic/rexcore/internal/dwvw"
)

// DecodeDWVW decodes a mono DWVW payload at the given sample bit width (REX
// files predating DWOP use this codec). It is exposed standalone rather than
// wired into Parse: REX2's SDAT chunk is always DWOP, never DWVW, so there is
// no file-format signal that would let Parse pick between the two codecs.
// Callers who know they hold a pre-DWOP payload call this directly.
func DecodeDWVW(data []byte, bitWidth int) ([]int16, error) {
	dec, err := dwvw.NewDecoder(data, bitWidth)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidBitWidth, err)
	}

	var out []int16

	for {
		buf := make([]int16, 4096)

		n := dec.Decode(buf)
		if n == 0 {
			break
		}

		out = append(out, buf[:n]...)

		if n < len(buf) {
			break
		}
	}

	if len(out) == 0 {
		return nil, ErrNoSamplesDecoded
	}

	return out, nil
}
