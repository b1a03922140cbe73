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


// Package section localizes named sections of a document.
//
// A section type is described by one or more headline patterns registered
// under a common prefix, e.g. "headline.payment.1" and "headline.payment.2"
// for type "payment". The Locator scores every token by how well the
// headline patterns match there (pattern attention) and by how much the
// surrounding line looks like a headline (structural attention), takes the
// best token per type as the section start and cuts the document at the
// starts it found.
//
// An optional context prefix names patterns describing the document's
// general subject. Their attention is sharpened around its peak, smoothed
// and added to every type's score, so headlines near on-topic text win.
package section
