package dedup

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestUnionFindGroupsConnectedComponents(t *testing.T) {
	uf := newUnionFind(5)
	uf.union(0, 1)
	uf.union(1, 2)
	uf.union(3, 4)

	groups := uf.groups()

	sizes := make(map[int]int)
	for _, members := range groups {
		sizes[len(members)]++
	}
	assert.Equal(t, 2, len(groups))
	assert.Equal(t, 1, sizes[3])
	assert.Equal(t, 1, sizes[2])
}

func TestUnionFindSingletonsStayApart(t *testing.T) {
	uf := newUnionFind(3)
	groups := uf.groups()
	assert.Len(t, groups, 3)
}

func TestUnionFindIdempotentUnion(t *testing.T) {
	uf := newUnionFind(2)
	uf.union(0, 1)
	uf.union(0, 1)
	assert.Equal(t, uf.find(0), uf.find(1))
}
