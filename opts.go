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
	"crypto/sha1"
	"hash"

	"github.com/cespare/xxhash/v2"
)

// Option for the ring structure
type Option func(ring *Ring)

// WithM configures the ring param m, so that identifier space is [0, 2^m)
func WithM(m uint64) Option {
	return func(ring *Ring) { ring.space.m = m }
}

// WithM8 configures the ring param m=8, so that identifier space is [0, 2^8)
func WithM8() Option { return WithM(8) }

// WithM16 configures the ring param m=16, so that identifier space is [0, 2^16)
func WithM16() Option { return WithM(16) }

// WithM32 configures the ring param m=32, so that identifier space is [0, 2^32)
func WithM32() Option { return WithM(32) }

// WithM64 configures the ring param m=64, so that identifier space is [0, 2^64)
func WithM64() Option { return WithM(64) }

// WithHash configures hashing algorithm for the ring
func WithHash(f func() hash.Hash) Option {
	return func(ring *Ring) { ring.space.hasher = f }
}

// WithXXHash configures xxhash64 as hashing algorithm for the ring
func WithXXHash() Option {
	return WithHash(func() hash.Hash { return xxhash.New() })
}

// WithRing clones ring configuration into the new instance
func WithRing(r *Ring) Option {
	return func(ring *Ring) {
		ring.space.m = r.space.m
		ring.space.hasher = r.space.hasher
	}
}

// Options turns a list of Option instances into an Option.
func Options(opts ...Option) Option {
	return func(ring *Ring) {
		for _, opt := range opts {
			opt(ring)
		}
	}
}

var (
	// M5_SHA1 is the classic 32 slots ring
	M5_SHA1 = Options(
		WithM(5),
		WithHash(sha1.New),
	)

	M32_SHA1 = Options(
		WithM32(),
		WithHash(sha1.New),
	)

	M64_XXHASH = Options(
		WithM64(),
		WithXXHash(),
	)
)
