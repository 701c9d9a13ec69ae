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
	"sort"
)

// Node representation, read-only view on the member of the ring
type Node interface {
	ID() uint64
	Successor() uint64
	Predecessor() (uint64, bool)
	Fingers() []uint64
	Len() int
	Get(key string) (string, bool)
	Keys() []string
	Data() map[string]string
}

// node is the member of the ring. References to other members are
// identifiers, they are resolved through the ring index.
type node struct {
	id          uint64
	finger      []uint64 // finger[i] is successor of (id + 2^i) mod 2^m
	predecessor uint64
	hasPred     bool
	data        map[string]string
}

func newNode(id uint64, m uint64) *node {
	return &node{
		id:     id,
		finger: make([]uint64, m),
		data:   map[string]string{},
	}
}

func (n *node) ID() uint64 { return n.id }

// Successor is the node responsible for (id + 1) mod 2^m
func (n *node) Successor() uint64 { return n.finger[0] }

func (n *node) Predecessor() (uint64, bool) { return n.predecessor, n.hasPred }

func (n *node) Fingers() []uint64 {
	seq := make([]uint64, len(n.finger))
	copy(seq, n.finger)
	return seq
}

func (n *node) Len() int { return len(n.data) }

func (n *node) Get(key string) (string, bool) {
	val, has := n.data[key]
	return val, has
}

func (n *node) Keys() []string {
	keys := make([]string, 0, len(n.data))
	for key := range n.data {
		keys = append(keys, key)
	}
	sort.Strings(keys)
	return keys
}

func (n *node) Data() map[string]string {
	data := make(map[string]string, len(n.data))
	for key, val := range n.data {
		data[key] = val
	}
	return data
}

func (n *node) String() string {
	return fmt.Sprintf("Node(%d)", n.id)
}

// List of nodes ordered by identifier
type nodes []*node

// search returns position of first node with id >= x
func (seq nodes) search(x uint64) int {
	return sort.Search(len(seq), func(i int) bool { return seq[i].id >= x })
}

// successorOf implements resolution rule: the node with smallest id >= x,
// it wraps around to the smallest id of the ring.
func (seq nodes) successorOf(x uint64) *node {
	if len(seq) == 0 {
		return nil
	}

	i := seq.search(x)
	if i == len(seq) {
		return seq[0]
	}

	return seq[i]
}

func (seq nodes) insert(n *node) nodes {
	i := seq.search(n.id)
	seq = append(seq, nil)
	copy(seq[i+1:], seq[i:])
	seq[i] = n
	return seq
}

func (seq nodes) remove(id uint64) nodes {
	i := seq.search(id)
	if i == len(seq) || seq[i].id != id {
		return seq
	}

	copy(seq[i:], seq[i+1:])
	seq[len(seq)-1] = nil
	return seq[:len(seq)-1]
}
