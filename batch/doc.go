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


// Package batch distributes independent landmark work across a worker pool.
//
// The core algorithms keep no cross-call state, so two grains parallelize
// without coordination: whole documents (structure detection, token
// embedding) and patterns matched against one document. Runner submits
// each unit to an ants pool, checks the context between units and
// returns results in input order.
//
//	runner, err := batch.NewRunner(batch.WithPoolSize(4))
//	if err != nil {
//	    return err
//	}
//	defer runner.Release()
//
//	docs, err := runner.DetectAll(ctx, texts, detector)
package batch
