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
	"strings"

	"github.com/golang/glog"
)

/*

Ring is Chord ring of nodes, simulated in-process. It maintains circular
ordering of node identifiers, derives finger tables from it and routes
key-value pairs to the node responsible for the key.

The ring is not safe for concurrent use.
*/
type Ring struct {
	// configuration
	space space

	// internal state
	nodes nodes            // ordered by id
	index map[uint64]*node // id -> node
}

// New creates instances of the ring
func New(opts ...Option) (*Ring, error) {
	ring := &Ring{}

	M32_SHA1(ring)
	for _, opt := range opts {
		opt(ring)
	}

	if err := ring.space.validate(); err != nil {
		return nil, err
	}

	ring.nodes = nodes{}
	ring.index = map[uint64]*node{}

	return ring, nil
}

//------------------------------------------------------------------------------
//
// Ring topology
//
//------------------------------------------------------------------------------

// rebuild finger table, successor and predecessor of each node
func (ring *Ring) rebuild() {
	for _, n := range ring.nodes {
		for i := uint64(0); i < ring.space.m; i++ {
			n.finger[i] = ring.nodes.successorOf(ring.space.finger(n.id, i)).id
		}
		n.hasPred = false
	}

	// nodes are ordered, the largest id wins if multiple nodes claims the successor
	for _, n := range ring.nodes {
		if succ := ring.index[n.Successor()]; succ != n {
			succ.predecessor = n.id
			succ.hasPred = true
		}
	}
}

/*

Join node to the ring. The node claims keys from its successor.
The join of existing node is no-op, the existing node is returned.
*/
func (ring *Ring) Join(id uint64) (Node, error) {
	if !ring.space.valid(id) {
		return nil, fmt.Errorf("%w: %d is not in [0, %d]", ErrInvalidIdentifier, id, ring.space.highest())
	}

	if n, exists := ring.index[id]; exists {
		glog.Infof("node %d already exists, skip join", id)
		return n, nil
	}

	n := newNode(id, ring.space.m)
	ring.nodes = ring.nodes.insert(n)
	ring.index[id] = n
	ring.rebuild()

	// successor of new node held all keys in the arc (predecessor, id]
	if succ := ring.index[n.Successor()]; succ != n {
		ring.handoff(succ, n)
	}

	return n, nil
}

// handoff keys from the node to its new predecessor
func (ring *Ring) handoff(from, to *node) {
	moved := 0
	for key, val := range from.data {
		if ring.nodes.successorOf(ring.space.address(key)) == to {
			to.data[key] = val
			delete(from.data, key)
			moved++
			glog.V(2).Infof("key %q moved from node %d to %d", key, from.id, to.id)
		}
	}

	glog.V(1).Infof("node %d joined, %d keys moved from node %d", to.id, moved, from.id)
}

/*

Leave node from the ring. Keys of the node are merged to its successor,
keys are lost if the node is the last one. It returns false if node is
not a member of the ring.
*/
func (ring *Ring) Leave(id uint64) bool {
	n, exists := ring.index[id]
	if !exists {
		glog.Infof("node %d not found, skip leave", id)
		return false
	}

	if succ := ring.index[n.Successor()]; succ != n {
		for key, val := range n.data {
			succ.data[key] = val
		}
		glog.V(1).Infof("node %d left, %d keys moved to node %d", id, len(n.data), succ.id)
	} else {
		glog.V(1).Infof("node %d left, %d keys discarded", id, len(n.data))
	}

	ring.nodes = ring.nodes.remove(id)
	delete(ring.index, id)

	if len(ring.nodes) > 0 {
		ring.rebuild()
	}

	return true
}

//------------------------------------------------------------------------------
//
// Key storage
//
//------------------------------------------------------------------------------

/*

Store key-value pair on the node responsible for the key.
It returns the node or nil if the ring is empty.
*/
func (ring *Ring) Store(key, value string) Node {
	addr := ring.space.address(key)
	n := ring.nodes.successorOf(addr)
	if n == nil {
		glog.Warningf("no nodes in the ring, store of key %q failed", key)
		return nil
	}

	n.data[key] = value
	glog.V(2).Infof("key %q (addr %d) stored at node %d", key, addr, n.id)

	return n
}

/*

Lookup value of the key. It returns the node responsible for the key,
the value and true if the key is stored at the node. The node is nil if
the ring is empty.
*/
func (ring *Ring) Lookup(key string) (Node, string, bool) {
	n := ring.nodes.successorOf(ring.space.address(key))
	if n == nil {
		return nil, "", false
	}

	val, has := n.data[key]
	return n, val, has
}

//------------------------------------------------------------------------------
//
// Ring interface
//
//------------------------------------------------------------------------------

/*

Address calculates address of key on the ring
*/
func (ring *Ring) Address(key string) uint64 {
	return ring.space.address(key)
}

/*

SuccessorOf returns node responsible for the address, nil if ring is empty
*/
func (ring *Ring) SuccessorOf(addr uint64) Node {
	n := ring.nodes.successorOf(addr & ring.space.highest())
	if n == nil {
		return nil
	}
	return n
}

/*

M returns exponent of identifier space 2^m
*/
func (ring *Ring) M() uint64 {
	return ring.space.m
}

/*

Size of ring, number of nodes joined the ring
*/
func (ring *Ring) Size() int {
	return len(ring.nodes)
}

/*

Has return true if node is member of the ring
*/
func (ring *Ring) Has(id uint64) bool {
	_, exists := ring.index[id]
	return exists
}

/*

Node returns the member of the ring
*/
func (ring *Ring) Node(id uint64) (Node, bool) {
	n, exists := ring.index[id]
	if !exists {
		return nil, false
	}
	return n, true
}

/*

Members return ordered list of node identifiers
*/
func (ring *Ring) Members() []uint64 {
	ids := make([]uint64, len(ring.nodes))
	for i, n := range ring.nodes {
		ids[i] = n.id
	}
	return ids
}

/*

Nodes return ordered list of nodes
*/
func (ring *Ring) Nodes() []Node {
	seq := make([]Node, len(ring.nodes))
	for i, n := range ring.nodes {
		seq[i] = n
	}
	return seq
}

/*

Debug represents ring to string snapshot
*/
func (ring *Ring) Debug() string {
	buf := strings.Builder{}
	buf.WriteString(fmt.Sprintf("ring: m=%d, n=%d\n", ring.space.m, len(ring.nodes)))
	buf.WriteString(fmt.Sprintf("|     [0, %x]\n", ring.space.highest()))

	if len(ring.nodes) == 0 {
		buf.WriteString("|     (no nodes)\n")
		return buf.String()
	}

	buf.WriteString("| \n")
	for _, n := range ring.nodes {
		pred := "-"
		if id, has := n.Predecessor(); has {
			pred = fmt.Sprintf("%d", id)
		}

		buf.WriteString(fmt.Sprintf("| %5d", n.id))
		buf.WriteString(fmt.Sprintf(": succ=%d pred=%s", n.Successor(), pred))
		buf.WriteString(fmt.Sprintf(" fingers=%v", n.finger))
		buf.WriteString("\n")
	}

	buf.WriteString("| \n")
	for _, n := range ring.nodes {
		buf.WriteString(fmt.Sprintf("| %5d: {", n.id))
		for i, key := range n.Keys() {
			if i > 0 {
				buf.WriteString(", ")
			}
			buf.WriteString(fmt.Sprintf("%s: %s", key, n.data[key]))
		}
		buf.WriteString("}\n")
	}

	return buf.String()
}
