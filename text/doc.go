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


// Package text turns raw text into token streams and provides helpers for
// searching and annotating them.
//
// Tokens follow Unicode word boundaries (UAX #29) over NFC-normalized input.
// Horizontal whitespace is dropped and every line break becomes a single
// Newline token, so a token stream can always be split back into lines.
package text
