package types

import (
	"testing"

	"github.com/stretchr/testify/require"
)

type testItem struct {
	weight int64
}

func (i *testItem) Weight() int64 { return i.weight }

func member(key string, weight int64) Member[string, *testItem] {
	return NewMember(key, &testItem{weight: weight})
}

func bucketOf(members ...Member[string, *testItem]) Bucket[string, *testItem] {
	var b Bucket[string, *testItem]
	for _, m := range members {
		b.Assign(m)
	}

	return b
}

func TestNewMember(t *testing.T) {
	t.Parallel()

	item := &testItem{weight: 42}
	m := NewMember("a", item)
	require.Equal(t, "a", m.Key)
	require.Same(t, item, m.Item)
	require.EqualValues(t, 42, m.Weight)

	// The captured weight does not follow the item.
	item.weight = 7
	require.EqualValues(t, 42, m.Weight)
	require.EqualValues(t, 7, m.Item.Weight())
}

func TestBucketAssign(t *testing.T) {
	t.Parallel()

	b := bucketOf(member("a", 10), member("b", 5))
	require.Equal(t, 2, b.Len())
	require.EqualValues(t, 15, b.Weight)
	require.Equal(t, []string{"a", "b"}, b.Keys())

	b.Clear()
	require.Equal(t, 0, b.Len())
	require.EqualValues(t, 0, b.Weight)
	require.Empty(t, b.Keys())
}

func TestBucketCompare(t *testing.T) {
	t.Parallel()

	light := bucketOf(member("a", 1))
	heavy := bucketOf(member("b", 3))
	sameAsLight := bucketOf(member("c", 1))

	require.True(t, light.Less(heavy))
	require.False(t, heavy.Less(light))
	require.True(t, heavy.Greater(light))
	require.False(t, light.Greater(heavy))
	require.False(t, light.Less(sameAsLight))
	require.False(t, light.Greater(sameAsLight))

	require.Equal(t, -1, light.Compare(heavy))
	require.Equal(t, 1, heavy.Compare(light))
	require.Equal(t, 0, light.Compare(sameAsLight))
}

func TestBucketEqual(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		a    Bucket[string, *testItem]
		b    Bucket[string, *testItem]
		want bool
	}{
		{"empty buckets", bucketOf(), bucketOf(), true},
		{"same keys same order", bucketOf(member("a", 1), member("b", 2)), bucketOf(member("a", 1), member("b", 2)), true},
		{"same keys different weights", bucketOf(member("a", 1), member("b", 2)), bucketOf(member("a", 9), member("b", 9)), true},
		{"same keys different order", bucketOf(member("a", 1), member("b", 2)), bucketOf(member("b", 2), member("a", 1)), false},
		{"different lengths", bucketOf(member("a", 1)), bucketOf(member("a", 1), member("b", 2)), false},
		{"different keys", bucketOf(member("a", 1)), bucketOf(member("c", 1)), false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			require.Equal(t, tt.want, tt.a.Equal(tt.b))
			require.Equal(t, tt.want, tt.b.Equal(tt.a))
		})
	}
}

func TestBucketClone(t *testing.T) {
	t.Parallel()

	orig := bucketOf(member("a", 1), member("b", 2))
	clone := orig.Clone()
	require.True(t, orig.Equal(clone))
	require.Equal(t, orig.Weight, clone.Weight)

	clone.Assign(member("c", 3))
	require.Equal(t, 2, orig.Len())
	require.EqualValues(t, 3, orig.Weight)

	// Items are shared handles, not copies.
	require.Same(t, orig.Members[0].Item, clone.Members[0].Item)

	require.Nil(t, bucketOf().Clone().Members)
}

func TestBucketFingerprint(t *testing.T) {
	t.Parallel()

	a := bucketOf(member("topic", 1), member("p", 1), member("42", 1))
	b := bucketOf(member("topic", 5), member("p", 5), member("42", 5))
	require.Equal(t, a.Fingerprint(), b.Fingerprint())

	// Different boundaries (no ambiguity)
	c := bucketOf(member("ab", 1), member("c", 1))
	d := bucketOf(member("a", 1), member("bc", 1))
	require.NotEqual(t, c.Fingerprint(), d.Fingerprint())

	// Order matters
	e := bucketOf(member("c", 1), member("ab", 1))
	require.NotEqual(t, c.Fingerprint(), e.Fingerprint())

	require.EqualValues(t, 0, bucketOf().Fingerprint())
}

func TestBucketFingerprint_IntegerKeys(t *testing.T) {
	t.Parallel()

	var a, b Bucket[int, *testItem]
	a.Assign(NewMember(12, &testItem{weight: 1}))
	a.Assign(NewMember(3, &testItem{weight: 1}))
	b.Assign(NewMember(1, &testItem{weight: 1}))
	b.Assign(NewMember(23, &testItem{weight: 1}))

	require.NotEqual(t, a.Fingerprint(), b.Fingerprint())
}

func TestPartition(t *testing.T) {
	t.Parallel()

	p := NewPartition[string, *testItem](3)
	require.Equal(t, 3, p.Len())
	require.Equal(t, 0, p.Items())
	require.EqualValues(t, 0, p.Spread())

	p[0].Assign(member("a", 10))
	p[1].Assign(member("b", 4))
	p[1].Assign(member("c", 2))
	p[2].Assign(member("d", 7))

	require.Equal(t, 4, p.Items())
	require.Equal(t, []int64{10, 6, 7}, p.Weights())
	require.EqualValues(t, 23, p.TotalWeight())
	require.EqualValues(t, 4, p.Spread())
}

func TestPartitionEqual(t *testing.T) {
	t.Parallel()

	build := func(keys ...[]string) Partition[string, *testItem] {
		p := NewPartition[string, *testItem](len(keys))
		for i, ks := range keys {
			for _, k := range ks {
				p[i].Assign(member(k, 1))
			}
		}

		return p
	}

	a := build([]string{"a", "b"}, []string{"c"})
	require.True(t, a.Equal(build([]string{"a", "b"}, []string{"c"})))
	require.False(t, a.Equal(build([]string{"a"}, []string{"b", "c"})))
	require.False(t, a.Equal(build([]string{"c"}, []string{"a", "b"})))
	require.False(t, a.Equal(build([]string{"a", "b"}, []string{"c"}, nil)))

	require.Equal(t, a.Fingerprint(), build([]string{"a", "b"}, []string{"c"}).Fingerprint())
	require.NotEqual(t, a.Fingerprint(), build([]string{"c"}, []string{"a", "b"}).Fingerprint())
}

func TestPartitionClone(t *testing.T) {
	t.Parallel()

	p := NewPartition[string, *testItem](2)
	p[0].Assign(member("a", 1))
	clone := p.Clone()
	require.True(t, p.Equal(clone))

	clone[0].Assign(member("b", 1))
	clone[1].Assign(member("c", 1))
	require.Equal(t, 1, p[0].Len())
	require.Equal(t, 0, p[1].Len())

	var empty Partition[string, *testItem]
	require.Nil(t, empty.Clone())
}

// Benchmarks

// BenchmarkBucketEqual measures key-wise equality of two large buckets.
func BenchmarkBucketEqual(b *testing.B) {
	var x, y Bucket[int, *testItem]
	for i := range 1000 {
		x.Assign(NewMember(i, &testItem{weight: int64(i)}))
		y.Assign(NewMember(i, &testItem{weight: int64(i)}))
	}

	var sink bool
	b.ResetTimer()
	for b.Loop() {
		sink = x.Equal(y)
	}

	_ = sink
}

// BenchmarkBucketFingerprint measures hashing of a large bucket.
func BenchmarkBucketFingerprint(b *testing.B) {
	var x Bucket[int, *testItem]
	for i := range 1000 {
		x.Assign(NewMember(i, &testItem{weight: int64(i)}))
	}

	var sink uint64
	b.ResetTimer()
	for b.Loop() {
		sink ^= x.Fingerprint()
	}

	_ = sink
}
