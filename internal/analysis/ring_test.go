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

package analysis_test

import (
	"encoding/binary"
	"fmt"
	"math"
	"math/rand"
	"net"
	"testing"

	"github.com/fogfish/chord"
	"github.com/montanaflynn/stats"
	"github.com/stretchr/testify/require"
)

func randKey(rnd *rand.Rand) string {
	buf := make([]byte, 4)
	ip := rnd.Uint32()
	binary.LittleEndian.PutUint32(buf, ip)
	return net.IP(buf).String()
}

func randKeys(rnd *rand.Rand, n int) []string {
	seq := make([]string, n)
	for i := 0; i < n; i++ {
		seq[i] = randKey(rnd)
	}
	return seq
}

func randRing(t *testing.T, rnd *rand.Rand, n int, opts ...chord.Option) *chord.Ring {
	r, err := chord.New(opts...)
	require.NoError(t, err)

	for r.Size() < n {
		_, err := r.Join(rnd.Uint64() & (1<<r.M() - 1))
		require.NoError(t, err)
	}

	return r
}

// number of keys stored at the ring
func stored(r *chord.Ring) int {
	n := 0
	for _, node := range r.Nodes() {
		n += node.Len()
	}
	return n
}

// share of keys owned by each node, in percents
func TestFactorLoadBalancing(t *testing.T) {
	rnd := rand.New(rand.NewSource(1))
	s := 20000

	for _, n := range []int{4, 16, 64} {
		t.Run(fmt.Sprintf("n.%d", n), func(t *testing.T) {
			r := randRing(t, rnd, n, chord.M32_SHA1)
			for _, key := range randKeys(rnd, s) {
				require.NotNil(t, r.Store(key, key))
			}
			total := stored(r)

			seq := []float64{}
			for _, node := range r.Nodes() {
				seq = append(seq, float64(node.Len())/float64(total)*100)
			}

			sum, _ := stats.Sum(seq)
			ex, _ := stats.Mean(seq)
			sd, _ := stats.StandardDeviation(seq)
			p2, _ := stats.Percentile(seq, 25.0)
			p9, _ := stats.Percentile(seq, 99.0)

			require.InDelta(t, 100.0, sum, 1e-6)
			require.InDelta(t, 100.0/float64(n), ex, 1e-6)
			t.Logf("n=%d | %.2f %.2f %.2f %.2f", n, p2, ex, sd, p9)
		})
	}
}

// keys handed over to the joining node, only its arc moves
func TestFactorHandover(t *testing.T) {
	rnd := rand.New(rand.NewSource(2))
	s := 5000
	n := 64

	r := randRing(t, rnd, 1, chord.M32_SHA1)
	for _, key := range randKeys(rnd, s) {
		r.Store(key, key)
	}
	s = stored(r)

	seq := []float64{}
	for r.Size() < n {
		id := rnd.Uint64() & (1<<r.M() - 1)
		if r.Has(id) {
			continue
		}

		before := map[uint64]int{}
		for _, node := range r.Nodes() {
			before[node.ID()] = node.Len()
		}

		node, err := r.Join(id)
		require.NoError(t, err)

		succ, _ := r.Node(node.Successor())
		require.Equal(t, before[succ.ID()]-succ.Len(), node.Len())

		for _, x := range r.Nodes() {
			if x.ID() != node.ID() && x.ID() != succ.ID() {
				require.Equal(t, before[x.ID()], x.Len())
			}
		}
		require.Equal(t, s, stored(r))

		seq = append(seq, float64(node.Len())/float64(s))
	}

	ex, _ := stats.Mean(seq)
	mx, _ := stats.Max(seq)
	require.Less(t, ex, 0.5)
	t.Logf("handover | mean %.4f max %.4f", ex, mx)
}

// finger routing takes O(log n) hops
func TestFactorRouteHops(t *testing.T) {
	rnd := rand.New(rand.NewSource(3))
	n := 256

	for _, opt := range []chord.Option{chord.M32_SHA1, chord.M64_XXHASH} {
		r := randRing(t, rnd, n, opt)
		members := r.Members()

		seq := []float64{}
		for i := 0; i < 2000; i++ {
			key := randKey(rnd)
			path, err := r.Route(members[rnd.Intn(len(members))], key)
			require.NoError(t, err)
			require.Equal(t, r.SuccessorOf(r.Address(key)).ID(), path[len(path)-1])

			seq = append(seq, float64(len(path)-1))
		}

		ex, _ := stats.Mean(seq)
		p9, _ := stats.Percentile(seq, 99.0)
		require.Less(t, ex, 2*math.Log2(float64(n)))
		t.Logf("m=%d | hops mean %.2f p99 %.2f", r.M(), ex, p9)
	}
}
