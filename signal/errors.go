// Copyright 2025 Poiesic Systems
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.


package signal

import "errors"

var (
	// ErrSignalTooShort is returned when a smoothing window is longer than the signal.
	ErrSignalTooShort = errors.New("signal is shorter than the smoothing window")

	// ErrUnknownWindow is returned for an unrecognized smoothing window name.
	ErrUnknownWindow = errors.New("unknown smoothing window")

	// ErrRaggedMatrix is returned when the rows of a matrix differ in length.
	ErrRaggedMatrix = errors.New("matrix rows differ in length")
)
