package pitscouting

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestTeamSet_Missing(t *testing.T) {
	t.Parallel()

	scouted := NewTeamSet(254, 1678)
	got := scouted.Missing([]int{4159, 254, 100, 1678, 100})

	assert.Equal(t, []int{100, 4159}, got)
	for _, n := range got {
		assert.False(t, scouted.Contains(n), "team %d should not be scouted", n)
	}
}

func TestTeamSet_MissingFromEmptySet(t *testing.T) {
	t.Parallel()

	var scouted TeamSet
	assert.Equal(t, []int{1, 2, 3}, scouted.Missing([]int{3, 1, 2}))
}
