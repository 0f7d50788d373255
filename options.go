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

import "github.com/rs/zerolog"

// Default resource bounds, per the REX2 decode contract.
const (
	DefaultMaxInputSize       = 50 << 20 // 50 MiB
	DefaultMaxFrames          = 10_000_000
	DefaultMaxSlices          = 256
	DefaultMaxUnaryIterations = 50_000
)

// Options configures a Parse call. The zero value is not directly usable —
// call DefaultOptions and override individual fields, the same shape as
// the reference decoder's fixed-width config struct but with the bounds
// exposed instead of compiled in.
type Options struct {
	// Logger receives non-fatal diagnostics, notably the slice-length
	// resolution warning (see ParseWithOptions). The zero value is
	// zerolog.Nop(), so a caller who never sets it gets silence rather
	// than output on an unconfigured global logger — there is no
	// process-wide logging state in this package.
	Logger zerolog.Logger

	MaxInputSize       int64
	MaxFrames          int
	MaxSlices          int
	MaxUnaryIterations int
}

// DefaultOptions returns an Options populated with the spec's default
// resource bounds and a no-op logger.
func DefaultOptions() Options {
	return Options{
		Logger:             zerolog.Nop(),
		MaxInputSize:       DefaultMaxInputSize,
		MaxFrames:          DefaultMaxFrames,
		MaxSlices:          DefaultMaxSlices,
		MaxUnaryIterations: DefaultMaxUnaryIterations,
	}
}
