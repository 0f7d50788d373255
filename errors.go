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

import "errors"

// Public sentinel errors for consumer error matching.
var (
	// ErrFileTooSmall indicates the input is too small to hold a valid
	// REX2 or REXWAV header.
	ErrFileTooSmall = errors.New("rexcore: input too small")

	// ErrBadMagic indicates a missing 'CAT ' root tag (REX2) or 'RXWV'
	// magic (REXWAV sidecar).
	ErrBadMagic = errors.New("rexcore: bad magic")

	// ErrUnsupportedVersion indicates a REXWAV version other than 1.
	ErrUnsupportedVersion = errors.New("rexcore: unsupported version")

	// ErrSliceCapExceeded indicates a REXWAV declared more slices than the
	// 256-slice cap allows.
	ErrSliceCapExceeded = errors.New("rexcore: slice count exceeds cap")

	// ErrTruncated indicates a REXWAV file is shorter than its declared
	// header fields require.
	ErrTruncated = errors.New("rexcore: truncated relative to declared size")

	// ErrEmptyPayload indicates a REX2 file has no usable SDAT chunk.
	ErrEmptyPayload = errors.New("rexcore: no audio payload found")

	// ErrNoSamplesDecoded indicates the codec produced zero samples from
	// an otherwise present payload.
	ErrNoSamplesDecoded = errors.New("rexcore: decoder produced no samples")

	// ErrNoSlices indicates a REX2 file declared zero slices and none
	// could be synthesized.
	ErrNoSlices = errors.New("rexcore: no slices found in file")

	// ErrInvalidBitWidth indicates DecodeDWVW was called with a sample bit
	// width outside the codec's supported range.
	ErrInvalidBitWidth = errors.New("rexcore: invalid DWVW bit width")

	// ErrInputTooLarge indicates the input exceeds Options.MaxInputSize.
	ErrInputTooLarge = errors.New("rexcore: input exceeds size cap")
)
