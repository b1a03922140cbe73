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


// Package distance computes scalar distances between two ordered sets of
// embedding vectors.
//
// Each strategy is a member of the closed Kind enumeration and differs only
// in how pairwise vector distances are aggregated: centroid distance,
// nearest-neighbour mean, Fréchet-style nearest-neighbour sum, or
// Hausdorff-style worst case. Undirected strategies average the two
// directed evaluations and are symmetric.
package distance
