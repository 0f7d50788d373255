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

	"github.com/mycophonic/rexcore/internal/dwop"
	"github.com/mycophonic/rexcore/internal/iff"
)

const (
	defaultSampleRate  = 44100
	defaultChannels    = 1
	minInputSize       = 12
	sdatFallbackSlack  = 1024
	undershootFraction = 2 // gap-based fallback triggers below half of decoded frames
)

// Parse decodes a REX2 file end to end using DefaultOptions.
func Parse(data []byte) (*Record, error) {
	return ParseWithOptions(data, DefaultOptions())
}

// ParseWithOptions decodes a REX2 file end to end: it walks the IFF
// container, locates the SDAT payload and SLCE/GLOB/HEAD/SINF metadata,
// decodes the audio with DWOP, and resolves slice boundaries.
func ParseWithOptions(data []byte, opts Options) (*Record, error) {
	if int64(len(data)) > opts.MaxInputSize {
		return nil, fmt.Errorf("%w: %d bytes exceeds %d byte cap", ErrInputTooLarge, len(data), opts.MaxInputSize)
	}

	if len(data) < minInputSize {
		return nil, fmt.Errorf("%w: %d bytes", ErrFileTooSmall, len(data))
	}

	if string(data[0:4]) != "CAT " {
		return nil, ErrBadMagic
	}

	meta, err := iff.Collect(data, opts.MaxSlices)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrBadMagic, err)
	}

	if len(meta.SDAT) == 0 {
		return nil, ErrEmptyPayload
	}

	rec := &Record{
		TempoBPM:       meta.TempoBPM,
		Bars:           meta.Bars,
		Beats:          meta.Beats,
		TimeSigNum:     meta.TimeSigNum,
		TimeSigDen:     meta.TimeSigDen,
		SampleRate:     defaultSampleRate,
		Channels:       defaultChannels,
		BytesPerSample: meta.BytesPerSample,
	}

	if meta.SampleRate > 0 {
		rec.SampleRate = uint32(meta.SampleRate)
	}

	if meta.Channels > 0 {
		rec.Channels = int(meta.Channels)
	}

	maxFrames := frameBudget(meta.TotalFrames, len(meta.SDAT), opts.MaxFrames)

	pcm, frames, err := decodeSDAT(meta.SDAT, rec.Channels, maxFrames, opts.MaxUnaryIterations)
	if err != nil {
		return nil, err
	}

	if frames <= 0 {
		return nil, ErrNoSamplesDecoded
	}

	rec.PCM = pcm
	rec.Frames = frames
	rec.Slices = resolveSlices(meta.Slices, frames, opts)

	if len(rec.Slices) == 0 {
		return nil, ErrNoSlices
	}

	return rec, nil
}

// frameBudget picks the per-channel frame count to allocate for decode, per
// the assembler contract: prefer SINF's declared total, else derive one
// from the payload size, always clamped to the configured cap.
func frameBudget(totalFrames uint32, sdatLen, capFrames int) int {
	var maxFrames int
	if totalFrames > 0 {
		maxFrames = int(totalFrames)
	} else {
		maxFrames = sdatLen*2 + sdatFallbackSlack
	}

	return min(maxFrames, capFrames)
}

// decodeSDAT decodes the SDAT payload with DWOP, mono or stereo depending
// on the declared channel count, returning the decoded interleaved PCM
// (truncated to what was actually produced) and the per-channel frame
// count. An early unary overrun still yields whatever prefix decoded
// cleanly rather than discarding it.
func decodeSDAT(payload []byte, channels, maxFrames, maxUnary int) ([]int16, int, error) {
	switch channels {
	case 2:
		out := make([]int16, maxFrames*2)

		frames, err := dwop.DecodeStereo(payload, out, maxFrames, maxUnary)
		if err != nil && frames == 0 {
			return nil, 0, fmt.Errorf("%w: %w", ErrNoSamplesDecoded, err)
		}

		return out[:frames*2], frames, nil

	default:
		out := make([]int16, maxFrames)

		frames, err := dwop.DecodeMono(payload, out, maxUnary)
		if err != nil && frames == 0 {
			return nil, 0, fmt.Errorf("%w: %w", ErrNoSamplesDecoded, err)
		}

		return out[:frames], frames, nil
	}
}
