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

import "github.com/mycophonic/rexcore/internal/iff"

// resolveSlices turns the raw SLCE entries collected during the IFF walk
// into a final slice table: empty-SLCE fallback, gap-based length
// re-inference when the encoded lengths don't add up, and bounds clamping
// against the decoded frame count.
func resolveSlices(raw []iff.SliceEntry, decodedFrames int, opts Options) []Slice {
	if len(raw) == 0 {
		return []Slice{{Offset: 0, Length: uint32(decodedFrames)}} //nolint:gosec
	}

	lengths := make([]uint32, len(raw))
	for i, e := range raw {
		lengths[i] = e.Length
	}

	if shouldInferFromGaps(raw, decodedFrames) {
		opts.Logger.Warn().
			Int("slices", len(raw)).
			Int("decoded_frames", decodedFrames).
			Msg("rexcore: SLCE encoded lengths severely undershoot decoded frames; " +
				"falling back to gap-based length inference")
		inferGapLengths(raw, lengths, decodedFrames)
	}

	out := make([]Slice, len(raw))
	for i, e := range raw {
		out[i] = clampSlice(e.Offset, lengths[i], decodedFrames)
	}

	return out
}

// shouldInferFromGaps detects the "severe undershoot" condition from the
// slice-length ambiguity design note: if the encoded lengths sum to
// noticeably less than the decoded audio, they're probably not real
// lengths at all (the gap-based SLCE generator variant), so prefer
// inferring from offset gaps instead of trusting a table that doesn't
// cover the file.
func shouldInferFromGaps(raw []iff.SliceEntry, decodedFrames int) bool {
	var sum uint64

	for _, e := range raw {
		sum += uint64(e.Length)
	}

	return sum*undershootFraction < uint64(decodedFrames) //nolint:gosec
}

// inferGapLengths overwrites lengths in place using the gap to each
// slice's next offset, with the final slice extending to decodedFrames.
func inferGapLengths(raw []iff.SliceEntry, lengths []uint32, decodedFrames int) {
	for i := range raw {
		if i+1 < len(raw) {
			next, this := raw[i+1].Offset, raw[i].Offset
			if next > this {
				lengths[i] = next - this
			} else {
				lengths[i] = 0
			}

			continue
		}

		if uint32(decodedFrames) > raw[i].Offset { //nolint:gosec
			lengths[i] = uint32(decodedFrames) - raw[i].Offset //nolint:gosec
		} else {
			lengths[i] = 0
		}
	}
}

// clampSlice bounds a slice so offset+length never exceeds decodedFrames.
func clampSlice(offset, length uint32, decodedFrames int) Slice {
	df := uint32(decodedFrames) //nolint:gosec

	if offset >= df {
		return Slice{Offset: offset, Length: 0}
	}

	if offset+length > df {
		return Slice{Offset: offset, Length: df - offset}
	}

	return Slice{Offset: offset, Length: length}
}
