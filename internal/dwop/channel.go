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

//nolint:gosec // Integer conversions match the reverse-engineered reference's fixed-width arithmetic.
package dwop

// Five-predictor adaptive lossless channel decoder.
// Ported from the reverse-engineered dwop_decode / stereo_decode_one pair.
//
// A Channel holds exactly the per-channel predictor/energy/range-coder state;
// bit position lives separately in a Reader, borrowed per call. This split is
// what lets the stereo decoder reuse DecodeOne twice per frame over one
// shared Reader instead of duplicating the whole per-sample loop.

// predMap remaps the energy-selected predictor index to its prediction
// order. Energy slot i does NOT correspond to order i: slot 2 selects order
// 4 (second difference), slot 3 selects order 2 (third difference), and so
// on. Get this table wrong and every sample after the first decodes to
// noise.
var predMap = [5]int{0, 1, 4, 2, 3} //nolint:gochecknoglobals

const energyInit = 2560

// Channel is one DWOP channel's predictor, energy, and range-coder state.
type Channel struct {
	// S holds the five predictor accumulators in *doubled* representation:
	// the true sample is S[0] >> 1. Do not normalize between samples.
	S [5]int32
	// e holds the five energy estimators used to pick a predictor order.
	e [5]int32
	// rv is the range coder's current range, always a power of two >= 1.
	rv uint32
	// ba is the range coder's carried bit budget. It must persist across
	// samples; losing it produces drift that looks like quiet mis-scaling
	// before diverging completely.
	ba int
}

// Reset restores the channel to its initial decode state.
func (c *Channel) Reset() {
	c.S = [5]int32{}
	for i := range c.e {
		c.e[i] = energyInit
	}

	c.rv = 2
	c.ba = 0
}

// DecodeOne decodes a single sample from reader, advancing both the
// channel's predictor/energy/range state and the reader's bit position.
// maxUnary bounds the unary quotient loop (step 3); exceeding it aborts
// with ErrUnaryOverrun instead of spinning on a corrupt stream.
func (c *Channel) DecodeOne(reader *Reader, maxUnary int) (int16, error) {
	// 1. Predictor selection: lowest unsigned energy, ties favor the lowest index.
	minE := uint32(c.e[0])
	pIdx := 0

	for i := 1; i < 5; i++ {
		if ei := uint32(c.e[i]); ei < minE {
			minE = ei
			pIdx = i
		}
	}

	// 2. Quantizer step.
	step := (minE*3 + 0x24) >> 7

	// 3. Unary-coded quotient: cs quadruples every 7 zero-bits.
	var acc, cs uint32 = 0, step

	qc, uc := 7, 0

	for {
		if reader.Bit() == 1 {
			break
		}

		acc += cs

		qc--
		if qc == 0 {
			cs <<= 2
			qc = 7
		}

		uc++
		if uc > maxUnary {
			return 0, ErrUnaryOverrun
		}
	}

	// 4. Range coder for the remainder.
	nb := c.ba

	switch {
	case cs >= c.rv:
		for cs >= c.rv {
			c.rv <<= 1
			if c.rv == 0 {
				return 0, ErrRangeOverrun
			}

			nb++
		}
	default:
		nb++

		t := c.rv
		for {
			c.rv = t
			t >>= 1
			nb--

			if cs >= t {
				break
			}
		}
	}

	var ext uint32
	if nb > 0 {
		ext = reader.Bits(nb)
	}

	co := c.rv - cs

	var rem uint32
	if ext < co {
		rem = ext
	} else {
		x := reader.Bit()
		rem = co + (ext-co)*2 + x
	}

	val := acc + rem
	c.ba = nb

	// 5. DWOP zigzag: doubled signed delta, no halving.
	d := int32(val ^ -(val & 1)) //nolint:gosec

	// 6. Predictor update. Snapshot before mutating so every branch below
	// reads the pre-update state, matching memcpy(o, state->S, ...).
	o := c.S

	switch predMap[pIdx] {
	case 0: // order 0: d is the doubled sample
		c.S[0] = d
		c.S[1] = d - o[0]
		c.S[2] = c.S[1] - o[1]
		c.S[3] = c.S[2] - o[2]
		c.S[4] = c.S[3] - o[3]
	case 1: // order 1: d is the 1st difference
		c.S[0] = o[0] + d
		c.S[1] = d
		c.S[2] = d - o[1]
		c.S[3] = c.S[2] - o[2]
		c.S[4] = c.S[3] - o[3]
	case 4: // order 2: d is the 2nd difference
		c.S[1] = o[1] + d
		c.S[0] = o[0] + c.S[1]
		c.S[2] = d
		c.S[3] = d - o[2]
		c.S[4] = c.S[3] - o[3]
	case 2: // order 3: d is the 3rd difference
		c.S[2] = o[2] + d
		c.S[1] = o[1] + c.S[2]
		c.S[0] = o[0] + c.S[1]
		c.S[3] = d
		c.S[4] = d - o[3]
	case 3: // order 4: d is the 4th difference
		c.S[3] = o[3] + d
		c.S[2] = o[2] + c.S[3]
		c.S[1] = o[1] + c.S[2]
		c.S[0] = o[0] + c.S[1]
		c.S[4] = d
	}

	// 7. Energy update. abs via S ^ (S>>31) must match signed-overflow
	// behavior at INT32_MIN exactly; a library abs() diverges there.
	for i := range c.e {
		as := c.S[i] ^ (c.S[i] >> 31)
		c.e[i] = c.e[i] + as - int32(uint32(c.e[i])>>5)
	}

	// 8. Un-double via arithmetic right shift.
	return int16(c.S[0] >> 1), nil
}
