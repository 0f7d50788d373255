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

package dwop

// DecodeMono decodes up to len(out) samples from a single DWOP channel
// payload. It returns the number of samples actually produced, which is
// always len(out) unless the unary quotient overran its iteration cap
// (ErrUnaryOverrun) or the range coder state overflowed (ErrRangeOverrun),
// in which case decoding stops early and the samples produced so far are
// still valid.
func DecodeMono(data []byte, out []int16, maxUnary int) (int, error) {
	reader := NewReader(data)

	var ch Channel

	ch.Reset()

	for n := range out {
		sample, err := ch.DecodeOne(&reader, maxUnary)
		if err != nil {
			return n, err
		}

		out[n] = sample
	}

	return len(out), nil
}
