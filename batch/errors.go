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


package batch

import "errors"

var (
	// ErrDetectorRequired indicates a nil structure detector.
	ErrDetectorRequired = errors.New("detector is required")

	// ErrEmbedderRequired indicates a nil token embedder.
	ErrEmbedderRequired = errors.New("token embedder is required")

	// ErrRunnerReleased indicates the runner's pool has been released.
	ErrRunnerReleased = errors.New("runner has been released")
)
