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

// DecodeStereo decodes interleaved stereo frames from a DWOP payload
// encoding one left channel and one delta channel over a single shared bit
// stream. out must have room for 2*frames int16 values (L, R interleaved).
// It returns the number of frames actually produced.
//
// The right channel is never decoded directly: it carries L's delta, and
// the true right sample is L + delta. Both channels share one Reader — the
// stereo bit stream interleaves the two channels' codes at sample
// granularity, not at byte or block granularity.
func DecodeStereo(data []byte, out []int16, frames, maxUnary int) (int, error) {
	reader := NewReader(data)

	var left, right Channel

	left.Reset()
	right.Reset()

	for n := range frames {
		l, err := left.DecodeOne(&reader, maxUnary)
		if err != nil {
			return n, err
		}

		delta, err := right.DecodeOne(&reader, maxUnary)
		if err != nil {
			return n, err
		}

		out[n*2] = l
		out[n*2+1] = l + delta
	}

	return frames, nil
}
