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

package dwvw

import (
	"errors"
	"testing"
)

func TestNewDecoderValidatesBitWidth(t *testing.T) {
	t.Parallel()

	if _, err := NewDecoder([]byte{0}, 1); !errors.Is(err, ErrInvalidBitWidth) {
		t.Errorf("bitWidth=1: err = %v, want ErrInvalidBitWidth", err)
	}

	if _, err := NewDecoder([]byte{0}, 33); !errors.Is(err, ErrInvalidBitWidth) {
		t.Errorf("bitWidth=33: err = %v, want ErrInvalidBitWidth", err)
	}

	if _, err := NewDecoder([]byte{0}, 16); err != nil {
		t.Errorf("bitWidth=16: unexpected error %v", err)
	}
}

func TestDecodeEmptyInputProducesNothing(t *testing.T) {
	t.Parallel()

	dec, err := NewDecoder(nil, 16)
	if err != nil {
		t.Fatalf("NewDecoder: %v", err)
	}

	out := make([]int16, 4)
	if n := dec.Decode(out); n != 0 {
		t.Errorf("Decode on empty input produced %d samples, want 0", n)
	}
}

// TestLoadWidthModifierCapsAtDwmMaxSize is the critical boundary case: an
// all-zero-bit modifier field of exactly dwmMaxSize bits must be read as a
// full-scale modifier WITHOUT consuming a terminating 1 bit, since none was
// encoded at the cap. Failing to cap this correctly means the scan either
// overruns into the next field's bits or blocks waiting for a 1 that never
// comes.
func TestLoadWidthModifierCapsAtDwmMaxSize(t *testing.T) {
	t.Parallel()

	dec, err := NewDecoder([]byte{0x00}, 16) // dwmMaxSize = 16/2 = 8
	if err != nil {
		t.Fatalf("NewDecoder: %v", err)
	}

	modifier, ok := dec.loadWidthModifier()
	if !ok {
		t.Fatal("loadWidthModifier: ok = false")
	}

	if modifier != dec.dwmMaxSize {
		t.Errorf("modifier = %d, want %d", modifier, dec.dwmMaxSize)
	}

	if !dec.atEOF() {
		t.Error("expected atEOF after consuming exactly the preloaded byte")
	}
}

// TestDecodeAllOnesStaysAtZeroWidth hand-traces a 4-bit stream of all-1
// bits: the width-modifier scan sees a 1 in the very first position, so
// modifier=0 every sample (no sign bit consumed, deltaWidth stays 0 forever,
// and a zero delta width means no delta body bits are read at all). Each
// sample consumes exactly one bit.
func TestDecodeAllOnesStaysAtZeroWidth(t *testing.T) {
	t.Parallel()

	dec, err := NewDecoder([]byte{0xFF}, 4)
	if err != nil {
		t.Fatalf("NewDecoder: %v", err)
	}

	out := make([]int16, 4)
	if n := dec.Decode(out); n != 4 {
		t.Fatalf("Decode produced %d samples, want 4", n)
	}

	for i, s := range out {
		if s != 0 {
			t.Errorf("sample %d = %d, want 0", i, s)
		}
	}

	if dec.bytePos != 1 || dec.bitCount != 4 {
		t.Errorf("reservoir state = (bytePos=%d, bitCount=%d), want (1, 4)", dec.bytePos, dec.bitCount)
	}
}

// TestDecodeOneSampleWithModifierAndDelta hand-traces the bit pattern
// 0b01101000 through a bitWidth=4 decoder: a width modifier of 1 made
// negative by its sign bit (net -1), bending deltaWidth from 0 to 3; a
// 2-bit delta magnitude of 1 with the implicit leading bit producing
// delta=5; and a zero delta sign, for a final sample of 5 left-shifted into
// the top 4 bits of a 16-bit word.
func TestDecodeOneSampleWithModifierAndDelta(t *testing.T) {
	t.Parallel()

	dec, err := NewDecoder([]byte{0x68}, 4)
	if err != nil {
		t.Fatalf("NewDecoder: %v", err)
	}

	out := make([]int16, 1)
	if n := dec.Decode(out); n != 1 {
		t.Fatalf("Decode produced %d samples, want 1", n)
	}

	const want = int16(5 << (16 - 4))
	if out[0] != want {
		t.Errorf("sample = %d, want %d", out[0], want)
	}

	if dec.lastDeltaWidth != 3 {
		t.Errorf("lastDeltaWidth = %d, want 3", dec.lastDeltaWidth)
	}

	if dec.lastSample != 5 {
		t.Errorf("lastSample = %d, want 5", dec.lastSample)
	}
}

// TestDecodeStateAcrossCalls confirms a Decoder's delta width and running
// sample persist across separate Decode calls — a caller may stream a DWVW
// payload through in chunks and get the same result as one large call.
func TestDecodeStateAcrossCalls(t *testing.T) {
	t.Parallel()

	data := []byte{0x68, 0xFF, 0xFF, 0xFF}

	whole, err := NewDecoder(data, 4)
	if err != nil {
		t.Fatalf("NewDecoder: %v", err)
	}

	wholeOut := make([]int16, 4)
	whole.Decode(wholeOut)

	chunked, err := NewDecoder(data, 4)
	if err != nil {
		t.Fatalf("NewDecoder: %v", err)
	}

	var chunkedOut []int16

	for range 4 {
		one := make([]int16, 1)
		if n := chunked.Decode(one); n == 0 {
			break
		}

		chunkedOut = append(chunkedOut, one[0])
	}

	if len(chunkedOut) != len(wholeOut) {
		t.Fatalf("chunked produced %d samples, whole produced %d", len(chunkedOut), len(wholeOut))
	}

	for i := range wholeOut {
		if wholeOut[i] != chunkedOut[i] {
			t.Errorf("sample %d: whole=%d chunked=%d", i, wholeOut[i], chunkedOut[i])
		}
	}
}
