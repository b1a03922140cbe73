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


// Package structure infers the hierarchical outline of a loosely formatted
// document from numbering and typography cues.
//
// Detection works line by line. Every line is tokenized and classified by
// its leading tokens: a Roman numeral, a dotted arabic number (optionally
// after an "article" marker), a bullet glyph, or nothing. The resulting
// levels are then refined in two passes so that unnumbered text never
// outranks the section it belongs to and upper-case headline cues can
// override shallow numbering.
//
// The outline is an index-addressed slice of Line records. Lines refer to
// the document token stream through half-open spans; nothing in the outline
// points at another line.
//
// # Usage
//
//	d, err := structure.NewDetector()
//	if err != nil {
//	    return err
//	}
//	doc := d.Detect(raw)
//	for _, line := range doc.Outline {
//	    fmt.Println(line.Level, line.Text(doc.TokensCased))
//	}
package structure
