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


// Package pattern locates named semantic patterns inside token embedding
// sequences.
//
// A Pattern is a short phrase turned into a reference embedding matrix.
// Matching slides one or more windows over the embeddings of a document and
// computes, for every start position, the distance between the window and
// the pattern. The position with the smallest distance is the best match.
//
// Patterns can be combined. An ExclusiveGroup lets several patterns compete
// for every position so that each position belongs to exactly one of them.
// A Compound blends the distance vectors of weighted sub-patterns into one;
// negative weights push the optimum away from a sub-pattern.
//
// Patterns are owned by a Registry with an embed-once lifecycle:
//
//	reg := pattern.NewRegistry()
//	reg.Create("headline.name", "", "полное фирменное наименование", "")
//	if err := reg.Embed(ctx, embedder); err != nil {
//	    return err
//	}
//	p, _ := reg.Get("headline.name")
//	match, err := p.Find(textEmbeddings, rightPadding)
//
// After Embed the registry and its patterns are read-only and safe to share
// between goroutines.
package pattern
