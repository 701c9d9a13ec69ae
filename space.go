/*

  Copyright 2012 Dmitry Kolesnikov, All Rights Reserved

  Licensed under the Apache License, Version 2.0 (the "License");
  you may not use this file except in compliance with the License.
  You may obtain a copy of the License at

    http://www.apache.org/licenses/LICENSE-2.0

  Unless required by applicable law or agreed to in writing, software
  distributed under the License is distributed on an "AS IS" BASIS,
  WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
  See the License for the specific language governing permissions and
  limitations under the License.

*/

package chord

import (
	"fmt"
	"hash"
)

//------------------------------------------------------------------------------
//
// Identifier space algebra
//
//------------------------------------------------------------------------------

// space of identifiers [0, 2^m) shared by all nodes of the ring
type space struct {
	m      uint64           // identifier space 2^m
	hasher func() hash.Hash // hashing algorithms
}

func (s space) validate() error {
	if s.m == 0 || s.m > 64 {
		return fmt.Errorf("%w: m=%d is not in [1, 64]", ErrInvalidConfiguration, s.m)
	}

	if s.hasher == nil {
		return fmt.Errorf("%w: hash algorithm is not defined", ErrInvalidConfiguration)
	}

	return nil
}

// calculate highest identifier of the ring
func (s space) highest() uint64 {
	return ^uint64(0) >> (64 - s.m)
}

func (s space) valid(id uint64) bool {
	return id <= s.highest()
}

// calculate start of i-th finger, (id + 2^i) mod 2^m
func (s space) finger(id uint64, i uint64) uint64 {
	return (id + 1<<i) & s.highest()
}

// calculate address of the key on the ring.
// The digest is read as big-endian integer reduced by 2^m,
// only lowest 64 bits of digest contribute to the address.
func (s space) address(key string) uint64 {
	h := s.hasher()
	h.Write([]byte(key))
	hash := h.Sum(nil)

	from := 0
	if len(hash) > 8 {
		from = len(hash) - 8
	}

	addr := uint64(0)
	for _, x := range hash[from:] {
		addr = addr<<8 | uint64(x)
	}

	return addr & s.highest()
}

// between checks x in circular interval (a, b], a == b is the full circle
func between(x, a, b uint64) bool {
	switch {
	case a < b:
		return a < x && x <= b
	case a > b:
		return a < x || x <= b
	default:
		return true
	}
}

// within checks x in circular interval (a, b), a == b is the full circle except a
func within(x, a, b uint64) bool {
	switch {
	case a < b:
		return a < x && x < b
	case a > b:
		return a < x || x < b
	default:
		return x != a
	}
}
