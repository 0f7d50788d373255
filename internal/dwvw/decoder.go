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

//nolint:gosec // Integer conversions match the libsndfile-compatible reference's fixed-width arithmetic.
package dwvw

// Delta-width variable-word decoder, as used by REX files predating DWOP.
// Ported from the libsndfile-compatible reference decoder: a unary-coded
// width modifier adjusts a running delta width each sample, and the delta
// itself rides on an implicit leading 1 bit.

// Decoder holds one DWVW stream's bit reservoir and persistent per-sample
// state. Unlike dwop.Reader, DWVW needs a wide reservoir rather than a
// single cached byte: the width-modifier scan has to look ahead up to
// dwmMaxSize bits before it knows how many of them it actually consumed.
type Decoder struct {
	data    []byte
	bytePos int

	bits     uint32
	bitCount uint

	bitWidth   int
	maxDelta   int
	span       int
	dwmMaxSize int

	lastDeltaWidth int
	lastSample     int
}

// NewDecoder creates a DWVW decoder for the given bit width (REX2 uses 16).
func NewDecoder(data []byte, bitWidth int) (*Decoder, error) {
	if bitWidth < 2 || bitWidth > 32 {
		return nil, ErrInvalidBitWidth
	}

	return &Decoder{
		data:       data,
		bitWidth:   bitWidth,
		maxDelta:   1 << (bitWidth - 1),
		span:       1 << bitWidth,
		dwmMaxSize: bitWidth / 2,
	}, nil
}

// loadFixed loads enough bits into the reservoir and extracts the top n of
// them, right-justified. It reports ok=false only at end of input with
// fewer than 8 bits requested, matching the reference's asymmetric EOF
// handling (a >=8-bit request pads with a zero byte so a trailing code can
// still complete; a narrower request can't be satisfied that way).
func (d *Decoder) loadFixed(n int) (int, bool) {
	for int(d.bitCount) < n {
		if d.bytePos >= len(d.data) {
			if n < 8 {
				return 0, false
			}

			d.bits <<= 8
			d.bitCount += 8

			continue
		}

		d.bits = (d.bits << 8) | uint32(d.data[d.bytePos])
		d.bytePos++
		d.bitCount += 8
	}

	out := int(d.bits>>(d.bitCount-uint(n))) & ((1 << n) - 1)
	d.bitCount -= uint(n)

	return out, true
}

// loadWidthModifier pre-loads dwmMaxSize bits and counts consecutive zero
// bits from the top. It stops at the first 1 bit (consuming it) or at
// dwmMaxSize zero bits (NOT consuming a terminator — there isn't one at the
// cap). This asymmetry is exactly the boundary case spec'd for testing: an
// input ending in precisely dwmMaxSize zero bits must not hang waiting for
// a 1 bit that was never encoded.
//
// EOF handling mirrors loadFixed: a request for fewer than 8 bits can't be
// padded with a zero byte without risking a phantom terminator, so it
// reports ok=false instead. dwmMaxSize only drops below 8 for bit widths
// under 16 (REX2's DWVW payloads never do, but DecodeDWVW accepts them).
func (d *Decoder) loadWidthModifier() (int, bool) {
	for int(d.bitCount) < d.dwmMaxSize {
		if d.bytePos >= len(d.data) {
			if d.dwmMaxSize < 8 {
				return 0, false
			}

			d.bits <<= 8
			d.bitCount += 8

			continue
		}

		d.bits = (d.bits << 8) | uint32(d.data[d.bytePos])
		d.bytePos++
		d.bitCount += 8
	}

	modifier := 0
	for modifier < d.dwmMaxSize {
		d.bitCount--
		if d.bits&(1<<d.bitCount) != 0 {
			break
		}

		modifier++
	}

	return modifier, true
}

// atEOF reports whether all input bytes and reservoir bits are exhausted.
func (d *Decoder) atEOF() bool {
	return d.bytePos >= len(d.data) && d.bitCount == 0
}

// Decode decodes up to len(out) samples, returning the number actually
// produced. Decoder state (delta width, running sample, reservoir) persists
// across calls, so successive Decode calls on the same Decoder continue
// the stream seamlessly.
func (d *Decoder) Decode(out []int16) int {
	deltaWidth := d.lastDeltaWidth
	sample := d.lastSample

	count := 0

	for count < len(out) {
		modifier, ok := d.loadWidthModifier()
		if !ok {
			break
		}

		if d.atEOF() && count == 0 {
			break
		}

		if modifier != 0 {
			if sign, _ := d.loadFixed(1); sign != 0 {
				modifier = -modifier
			}
		}

		deltaWidth = ((deltaWidth+modifier)%d.bitWidth + d.bitWidth) % d.bitWidth

		delta := 0

		if deltaWidth != 0 {
			magnitude, _ := d.loadFixed(deltaWidth - 1)
			delta = magnitude | (1 << (deltaWidth - 1))

			negative, _ := d.loadFixed(1)

			if delta == d.maxDelta-1 {
				extra, _ := d.loadFixed(1)
				delta += extra
			}

			if negative != 0 {
				delta = -delta
			}
		}

		sample += delta

		switch {
		case sample >= d.maxDelta:
			sample -= d.span
		case sample < -d.maxDelta:
			sample += d.span
		}

		out[count] = int16(sample << (16 - d.bitWidth))
		count++

		if d.atEOF() {
			break
		}
	}

	d.lastDeltaWidth = deltaWidth
	d.lastSample = sample

	return count
}
