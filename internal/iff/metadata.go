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

// Chunk tags recognized within a REX2 'CAT ' container.
var ( //nolint:gochecknoglobals
	tagGLOB = [4]byte{'G', 'L', 'O', 'B'}
	tagHEAD = [4]byte{'H', 'E', 'A', 'D'}
	tagSINF = [4]byte{'S', 'I', 'N', 'F'}
	tagSLCE = [4]byte{'S', 'L', 'C', 'E'}
	tagSDAT = [4]byte{'S', 'D', 'A', 'T'}
)

// SliceEntry is a slice descriptor as read directly from a SLCE chunk,
// before any gap-based length re-inference the caller may choose to apply.
type SliceEntry struct {
	Offset uint32
	Length uint32
}

// Metadata collects the fields a REX2 assembler needs from GLOB, HEAD,
// SINF, and SLCE chunks, plus the raw SDAT payload (first occurrence only —
// later SDAT chunks in the same file are ignored, matching the reference).
type Metadata struct {
	TempoBPM       float64
	Bars           uint16
	Beats          uint8
	TimeSigNum     uint8
	TimeSigDen     uint8
	SampleRate     uint16
	Channels       uint8
	BytesPerSample uint8
	TotalFrames    uint32
	Slices         []SliceEntry
	SDAT           []byte
}

// Collect walks data and extracts REX2 metadata and the first SDAT payload.
// maxSlices bounds how many SLCE entries are retained; further entries are
// silently ignored, matching the SLCE resource bound.
func Collect(data []byte, maxSlices int) (Metadata, error) {
	var meta Metadata

	sdatSeen := false

	err := Walk(data, func(tag [4]byte, payload []byte) {
		switch tag {
		case tagGLOB:
			parseGLOB(&meta, payload)
		case tagHEAD:
			parseHEAD(&meta, payload)
		case tagSINF:
			parseSINF(&meta, payload)
		case tagSLCE:
			parseSLCE(&meta, payload, maxSlices)
		case tagSDAT:
			if !sdatSeen {
				meta.SDAT = payload
				sdatSeen = true
			}
		}
	})
	if err != nil {
		return Metadata{}, err
	}

	return meta, nil
}

// parseGLOB reads tempo, bars, beats, and time signature.
// Layout: bars@4 (u16), beats@6 (u8), timeSigNum@7, timeSigDen@8, tempo
// milli-BPM@16 (u32), divided by 1000.
func parseGLOB(meta *Metadata, data []byte) {
	if len(data) < 20 {
		return
	}

	meta.Bars = binary.BigEndian.Uint16(data[4:6])
	meta.Beats = data[6]
	meta.TimeSigNum = data[7]
	meta.TimeSigDen = data[8]
	meta.TempoBPM = float64(binary.BigEndian.Uint32(data[16:20])) / 1000.0
}

// parseHEAD reads the declared bytes-per-sample at offset 5.
func parseHEAD(meta *Metadata, data []byte) {
	if len(data) < 6 {
		return
	}

	meta.BytesPerSample = data[5]
}

// parseSINF reads channel count, sample rate, and total per-channel frame
// count. Layout: channels@0 (u8, accept only 1 or 2), sampleRate@4 (u16),
// totalFrames@6 (u32).
func parseSINF(meta *Metadata, data []byte) {
	if len(data) < 10 {
		return
	}

	if ch := data[0]; ch == 1 || ch == 2 {
		meta.Channels = ch
	}

	if sr := binary.BigEndian.Uint16(data[4:6]); sr > 0 {
		meta.SampleRate = sr
	}

	meta.TotalFrames = binary.BigEndian.Uint32(data[6:10])
}

// parseSLCE reads one slice descriptor: offset@0 (u32), and if present,
// length@4 (u32). Entries with an encoded length <= 1 are transient
// markers, not playable slices, and are dropped here rather than passed
// on. A SLCE chunk shorter than 8 bytes carries no length field at all
// (the gap-based generator variant — see the length-resolution design
// note); its entry is retained with Length 0 so the assembler can still
// infer a length from the gap to the next slice's offset.
func parseSLCE(meta *Metadata, data []byte, maxSlices int) {
	if len(data) < 4 {
		return
	}

	if len(meta.Slices) >= maxSlices {
		return
	}

	offset := binary.BigEndian.Uint32(data[0:4])

	var length uint32

	if len(data) >= 8 {
		length = binary.BigEndian.Uint32(data[4:8])
		if length <= 1 {
			return
		}
	}

	meta.Slices = append(meta.Slices, SliceEntry{Offset: offset, Length: length})
}
