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
	"encoding/binary"
	"fmt"
)

const (
	rexwavHeaderSize       = 64
	rexwavSliceEntrySize   = 8
	rexwavSupportedVersion = 1
)

// ParseRexwav loads a pre-decoded .rexwav sidecar file: a fixed 64-byte
// little-endian header, a slice table, and interleaved int16 PCM. Unlike
// REX2, no codec runs here — the PCM is already decoded on disk.
func ParseRexwav(data []byte) (*Record, error) {
	if len(data) < rexwavHeaderSize {
		return nil, fmt.Errorf("%w: %d bytes", ErrFileTooSmall, len(data))
	}

	if string(data[0:4]) != "RXWV" {
		return nil, ErrBadMagic
	}

	version := binary.LittleEndian.Uint32(data[4:8])
	if version != rexwavSupportedVersion {
		return nil, fmt.Errorf("%w: version %d", ErrUnsupportedVersion, version)
	}

	sampleRate := binary.LittleEndian.Uint32(data[8:12])
	channels := binary.LittleEndian.Uint32(data[12:16])
	sliceCount := binary.LittleEndian.Uint32(data[16:20])
	totalFrames := binary.LittleEndian.Uint32(data[20:24])
	tempoMilliBPM := binary.LittleEndian.Uint32(data[24:28])
	timeSigNum := data[28]
	timeSigDen := data[29]
	bitDepth := binary.LittleEndian.Uint16(data[30:32])

	if sliceCount > DefaultMaxSlices {
		return nil, fmt.Errorf("%w: %d > %d", ErrSliceCapExceeded, sliceCount, DefaultMaxSlices)
	}

	sliceTableEnd := rexwavHeaderSize + int(sliceCount)*rexwavSliceEntrySize

	pcmBytes := 2 * int(channels) * int(totalFrames)
	declaredSize := sliceTableEnd + pcmBytes

	if len(data) < declaredSize {
		return nil, fmt.Errorf("%w: have %d bytes, need %d", ErrTruncated, len(data), declaredSize)
	}

	slices := make([]Slice, sliceCount)

	for i := range slices {
		off := rexwavHeaderSize + i*rexwavSliceEntrySize
		slices[i] = Slice{
			Offset: binary.LittleEndian.Uint32(data[off : off+4]),
			Length: binary.LittleEndian.Uint32(data[off+4 : off+8]),
		}
	}

	pcm := make([]int16, int(channels)*int(totalFrames))
	for i := range pcm {
		off := sliceTableEnd + i*2
		pcm[i] = int16(binary.LittleEndian.Uint16(data[off : off+2])) //nolint:gosec
	}

	return &Record{
		TempoBPM:       float64(tempoMilliBPM) / 1000.0,
		TimeSigNum:     timeSigNum,
		TimeSigDen:     timeSigDen,
		SampleRate:     sampleRate,
		Channels:       int(channels),
		BytesPerSample: uint8(bitDepth / 8), //nolint:gosec
		Frames:         int(totalFrames),
		Slices:         slices,
		PCM:            pcm,
	}, nil
}
