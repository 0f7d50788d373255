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

import "errors"

// IFF container parsing error sentinels.
//
//revive:disable:exported
var (
	ErrTooSmall  = errors.New("iff: file too small for a chunk header")
	ErrNoCATRoot = errors.New("iff: missing 'CAT ' root tag")
)
