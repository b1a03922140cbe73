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


// Package signal provides elementary operations on numeric signals.
//
// A signal is a []float64 with one value per token position: a distance
// vector produced by pattern matching, or an attention vector derived from
// document structure. Every function returns a new slice and leaves its
// input untouched, so results can be shared between callers.
//
// # Operations
//
//   - Normalize, Softmax: map a signal onto a target interval
//   - Smooth, SmoothSafe: windowed convolution with reflected boundaries
//   - Relu, CutAbove: rectification and ceiling
//   - Momentum, MomentumSum, Echo: decaying and hard-trigger envelopes
//   - MinIndex, ArgMax, ArgMinColumns, ExclusiveColumns: selection
//   - Mean, Std, NanMin, NanMax, NanMean: statistics
package signal
