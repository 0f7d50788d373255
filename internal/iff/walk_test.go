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

import (
	"errors"
	"testing"
)

func TestWalkRejectsTooSmall(t *testing.T) {
	t.Parallel()

	err := Walk([]byte{1, 2, 3}, func([4]byte, []byte) {})
	if !errors.Is(err, ErrTooSmall) {
		t.Errorf("err = %v, want ErrTooSmall", err)
	}
}

func TestWalkRejectsMissingCATRoot(t *testing.T) {
	t.Parallel()

	data := chunk("HEAD", []byte{1, 2, 3, 4})

	err := Walk(data, func([4]byte, []byte) {})
	if !errors.Is(err, ErrNoCATRoot) {
		t.Errorf("err = %v, want ErrNoCATRoot", err)
	}
}

func TestWalkVisitsTopLevelChunks(t *testing.T) {
	t.Parallel()

	data := cat("REX2",
		chunk("HEAD", []byte{1, 2, 3, 4, 5, 6}),
		chunk("SINF", []byte{0, 0, 0, 0, 0, 0, 0, 0, 0, 0}),
	)

	var visited []string

	err := Walk(data, func(tag [4]byte, _ []byte) {
		visited = append(visited, string(tag[:]))
	})
	if err != nil {
		t.Fatalf("Walk: %v", err)
	}

	want := []string{"HEAD", "SINF"}
	if len(visited) != len(want) {
		t.Fatalf("visited = %v, want %v", visited, want)
	}

	for i := range want {
		if visited[i] != want[i] {
			t.Errorf("visited[%d] = %q, want %q", i, visited[i], want[i])
		}
	}
}

func TestWalkRecursesIntoNestedCAT(t *testing.T) {
	t.Parallel()

	inner := cat("NEST", chunk("SLCE", []byte{0, 0, 0, 1}))
	data := cat("REX2", chunk("HEAD", []byte{1, 2, 3, 4, 5, 6}), inner)

	var visited []string

	err := Walk(data, func(tag [4]byte, _ []byte) {
		visited = append(visited, string(tag[:]))
	})
	if err != nil {
		t.Fatalf("Walk: %v", err)
	}

	want := []string{"HEAD", "SLCE"}
	if len(visited) != len(want) {
		t.Fatalf("visited = %v, want %v", visited, want)
	}
}

func TestWalkStopsAtOverrunChunk(t *testing.T) {
	t.Parallel()

	data := cat("REX2", chunk("HEAD", []byte{1, 2, 3, 4, 5, 6}))

	// Corrupt the HEAD chunk's declared length to claim far more payload
	// than the file actually has.
	headLenOffset := 8 + 4 + 4 // CAT header(8) + form tag(4) + HEAD tag(4)
	data[headLenOffset] = 0x7F
	data[headLenOffset+1] = 0xFF
	data[headLenOffset+2] = 0xFF
	data[headLenOffset+3] = 0xFF

	var visited int

	err := Walk(data, func([4]byte, []byte) { visited++ })
	if err != nil {
		t.Fatalf("Walk: %v", err)
	}

	if visited != 0 {
		t.Errorf("visited %d chunks, want 0 (overrun chunk must be skipped, not crash)", visited)
	}
}

func TestWalkDepthCap(t *testing.T) {
	t.Parallel()

	// Build maxWalkDepth+5 nested CAT containers; chunks nested past the
	// depth cap must simply stop being visited, not panic or recurse
	// unboundedly.
	inner := chunk("SLCE", []byte{0, 0, 0, 1})
	for range maxWalkDepth + 5 {
		inner = cat("NEST", inner)
	}

	data := cat("REX2", inner)

	var visited int

	if err := Walk(data, func([4]byte, []byte) { visited++ }); err != nil {
		t.Fatalf("Walk: %v", err)
	}

	if visited != 0 {
		t.Errorf("visited %d chunks past the depth cap, want 0", visited)
	}
}
