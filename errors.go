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

import "errors"

var (
	// ErrInvalidConfiguration is returned by New when ring params are malformed
	ErrInvalidConfiguration = errors.New("invalid ring configuration")

	// ErrInvalidIdentifier is returned by Join when node id is outside of [0, 2^m)
	ErrInvalidIdentifier = errors.New("invalid node identifier")

	// ErrUnknownNode is returned by Route when start node is not a member of the ring
	ErrUnknownNode = errors.New("unknown node")

	// ErrEmptyRing is returned by Route when no nodes joined the ring
	ErrEmptyRing = errors.New("empty ring")

	// ErrInconsistentRing is returned when finger tables disagree with the ring
	ErrInconsistentRing = errors.New("inconsistent ring")
)
