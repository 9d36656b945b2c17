package layout

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/alexisbeaulieu97/placard/internal/predicate"
)

func sampleTree() *Node {
	return &Node{ID: "root", Kind: KindColumn, Children: []*Node{
		{ID: "title", Kind: KindText},
		{ID: "offers", Kind: KindCarousel, Children: []*Node{
			{ID: "slot-0", Kind: KindColumn, Children: []*Node{{ID: "cta-0", Kind: KindButton}}},
			{ID: "slot-1", Kind: KindColumn},
		}},
		{ID: "nested", Kind: KindColumn, Children: []*Node{{ID: "inner", Kind: KindCarousel}}},
	}}
}

func TestWalkOrderAndDepth(t *testing.T) {
	t.Parallel()

	var ids []string
	var depths []int
	Walk(sampleTree(), func(n *Node, depth int) bool {
		ids = append(ids, n.ID)
		depths = append(depths, depth)
		return true
	})

	require.Equal(t, []string{"root", "title", "offers", "slot-0", "cta-0", "slot-1", "nested", "inner"}, ids)
	require.Equal(t, []int{0, 1, 1, 2, 3, 2, 1, 2}, depths)
}

func TestWalkSkipsChildren(t *testing.T) {
	t.Parallel()

	var ids []string
	Walk(sampleTree(), func(n *Node, _ int) bool {
		ids = append(ids, n.ID)
		return n.Kind != KindCarousel
	})
	require.NotContains(t, ids, "slot-0")
	require.Contains(t, ids, "inner")

	Walk(nil, func(*Node, int) bool {
		t.Fatal("nil tree must not be visited")
		return true
	})
}

func TestFirstCarousel(t *testing.T) {
	t.Parallel()

	require.Equal(t, "offers", FirstCarousel(sampleTree()).ID)
	require.Nil(t, FirstCarousel(&Node{ID: "solo", Kind: KindText}))
}

func TestConditional(t *testing.T) {
	t.Parallel()

	require.False(t, (&Node{}).Conditional())
	require.True(t, (&Node{Predicates: []predicate.Predicate{{Category: predicate.DarkMode}}}).Conditional())
}
