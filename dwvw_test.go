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
	"errors"
	"testing"
)

func TestDecodeDWVWRejectsInvalidBitWidth(t *testing.T) {
	t.Parallel()

	if _, err := DecodeDWVW([]byte{0xFF}, 1); !errors.Is(err, ErrInvalidBitWidth) {
		t.Errorf("err = %v, want ErrInvalidBitWidth", err)
	}
}

// TestDecodeDWVWAllOnes hand-traces the same all-1-bits pattern as the
// internal dwvw package test: every sample's width-modifier scan sees a 1
// bit immediately, so the delta width never leaves zero and every decoded
// sample is silence. The 128 input bits yield far fewer than 4096 samples,
// so the whole stream fits in the wrapper's first output buffer.
func TestDecodeDWVWAllOnes(t *testing.T) {
	t.Parallel()

	data := make([]byte, 16)
	for i := range data {
		data[i] = 0xFF
	}

	out, err := DecodeDWVW(data, 4)
	if err != nil {
		t.Fatalf("DecodeDWVW: %v", err)
	}

	if len(out) == 0 {
		t.Fatal("expected at least one decoded sample")
	}

	for i, s := range out {
		if s != 0 {
			t.Errorf("sample %d = %d, want 0", i, s)
		}
	}
}

func TestDecodeDWVWEmptyInputErrors(t *testing.T) {
	t.Parallel()

	if _, err := DecodeDWVW(nil, 16); !errors.Is(err, ErrNoSamplesDecoded) {
		t.Errorf("err = %v, want ErrNoSamplesDecoded", err)
	}
}
