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

import "fmt"

/*

Route resolves the node responsible for the key using finger tables only,
as Chord does without global knowledge. The walk starts at the node and
jumps to the closest preceding finger until the key address falls between
the current node and its successor. It returns identifiers of visited
nodes, the last one is responsible for the key.
*/
func (ring *Ring) Route(from uint64, key string) ([]uint64, error) {
	if len(ring.nodes) == 0 {
		return nil, ErrEmptyRing
	}

	n, exists := ring.index[from]
	if !exists {
		return nil, fmt.Errorf("%w: %d", ErrUnknownNode, from)
	}

	addr := ring.space.address(key)
	path := []uint64{n.id}

	// each hop moves strictly closer to the address
	for hop := 0; hop <= len(ring.nodes); hop++ {
		succ := n.Successor()
		if between(addr, n.id, succ) {
			if succ != n.id {
				path = append(path, succ)
			}
			return path, nil
		}

		next := ring.closestPrecedingFinger(n, addr)
		if next == n {
			return path, fmt.Errorf("%w: node %d has no finger preceding %d", ErrInconsistentRing, n.id, addr)
		}

		n = next
		path = append(path, n.id)
	}

	return path, fmt.Errorf("%w: route to %d from node %d exceeds %d hops", ErrInconsistentRing, addr, from, len(ring.nodes))
}

func (ring *Ring) closestPrecedingFinger(n *node, addr uint64) *node {
	for i := len(n.finger) - 1; i >= 0; i-- {
		if within(n.finger[i], n.id, addr) {
			return ring.index[n.finger[i]]
		}
	}
	return n
}
