package intint

import "testing"
import "github.com/stretchr/testify/assert"

func TestSerialize(x *testing.T) {
	t := assert.New(x)
	for _, i := range []int32{0, 1, -1, 7, 1 << 30, -(1 << 30)} {
		t.Equal(i, DeserializeInt32(SerializeInt32(i)))
	}
}

func TestBpTreeMultiMap(x *testing.T) {
	t := assert.New(x)
	var m MultiMap
	b, err := AnonBpTree()
	t.Nil(err)
	m = b
	defer func() { t.Nil(m.Delete()) }()

	pairs := [][2]int32{{3, 0}, {1, 0}, {1, 2}, {2, 1}, {1, 1}, {3, 2}}
	for _, p := range pairs {
		t.Nil(m.Add(p[0], p[1]))
	}
	t.Equal(len(pairs), m.Size())

	seen := 0
	last := int32(0)
	values := make(map[int32][]int32)
	t.Nil(Do(m.Iterate, func(k, v int32) error {
		t.True(k >= last)
		last = k
		values[k] = append(values[k], v)
		seen++
		return nil
	}))
	t.Equal(len(pairs), seen)
	t.ElementsMatch([]int32{0, 1, 2}, values[1])
	t.ElementsMatch([]int32{1}, values[2])
	t.ElementsMatch([]int32{0, 2}, values[3])
}
