// Copyright 2023 The Rexterm Authors
//
//  Licensed under the Apache License, Version 2.0 (the "License");
//  you may not use this file except in compliance with the License.
//  You may obtain a copy of the License at
//
//    http://www.apache.org/licenses/LICENSE-2.0
//
//  Unless required by applicable law or agreed to in writing, software
//  distributed under the License is distributed on an "AS IS" BASIS,
//  WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
//  See the License for the specific language governing permissions and
//  limitations under the License.

package term

import (
	"encoding/hex"

	"github.com/dchest/siphash"
	"golang.org/x/crypto/blake2b"
)

// Hash64 returns a 64-bit structural hash of t. Structurally equal
// terms hash equally; use it for cheap deduplication and map keys.
func Hash64(t Term) uint64 {
	buf, err := Encode(t)
	if err != nil {
		return 0
	}
	return siphash.Hash(0, 1, buf)
}

// Fingerprint returns a hex-encoded 256-bit fingerprint of t,
// suitable for content addressing stored pattern trees.
func Fingerprint(t Term) string {
	buf, err := Encode(t)
	if err != nil {
		return ""
	}
	h, _ := blake2b.New256(nil)
	h.Write(buf)
	return hex.EncodeToString(h.Sum(nil))
}
