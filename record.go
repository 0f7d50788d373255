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

// Slice is a per-slice descriptor in per-channel frames. In a Record
// returned by Parse, Offset+Length never exceeds the decoded frame count;
// ParseRexwav returns the sidecar's slice table as stored, without clamping.
type Slice struct {
	Offset uint32
	Length uint32
}

// Record is a fully decoded REX2 (or REXWAV) file: metadata plus an owned,
// interleaved int16 PCM buffer and its slice table. A Record returned by
// Parse or ParseRexwav holds no shared mutable state, so records from
// independent Parse calls may be used concurrently across goroutines.
type Record struct {
	TempoBPM       float64
	Bars           uint16
	Beats          uint8
	TimeSigNum     uint8
	TimeSigDen     uint8
	SampleRate     uint32
	Channels       int
	BytesPerSample uint8

	// Frames is the number of decoded per-channel sample frames backing PCM.
	Frames int

	Slices []Slice

	// PCM is interleaved int16 audio, Channels samples per frame.
	PCM []int16
}

// Free releases the Record's PCM buffer and slice table, letting the
// backing arrays be collected immediately rather than pinned by a
// lingering reference. Calling it is optional — ordinary garbage
// collection reclaims an unreferenced Record on its own — but it mirrors
// the explicit ownership contract the reference decoder expresses as a
// manual free() call.
func (r *Record) Free() {
	r.PCM = nil
	r.Slices = nil
}
