package game

import (
    "math/rand"
    "testing"

    "github.com/stretchr/testify/assert"
    "github.com/stretchr/testify/require"
)

func timelineOf(years ...int) []PlacedCard {
    tl := make([]PlacedCard, 0, len(years))
    for _, y := range years {
        tl = append(tl, PlacedCard{Song: Song{Year: y}})
    }
    return tl
}

func TestIsValidPlacement(t *testing.T) {
    song := Song{Year: 2003}

    assert.True(t, IsValidPlacement(nil, song, 0), "empty timeline accepts any song at 0")

    tl := timelineOf(2001, 2005, 2010)
    assert.True(t, IsValidPlacement(tl, song, 1))
    assert.False(t, IsValidPlacement(tl, song, 0))
    assert.False(t, IsValidPlacement(tl, song, 2))
    assert.False(t, IsValidPlacement(tl, song, 3))

    assert.False(t, IsValidPlacement(tl, song, -1))
    assert.False(t, IsValidPlacement(tl, song, 4))
}

func TestIsValidPlacementBoundaries(t *testing.T) {
    tl := timelineOf(1990, 2000)
    assert.True(t, IsValidPlacement(tl, Song{Year: 1980}, 0))
    assert.True(t, IsValidPlacement(tl, Song{Year: 2020}, 2))
    // equal years are valid on either side
    assert.True(t, IsValidPlacement(tl, Song{Year: 1990}, 0))
    assert.True(t, IsValidPlacement(tl, Song{Year: 1990}, 1))
}

func TestValidPositions(t *testing.T) {
    tl := timelineOf(2001, 2005, 2010)

    assert.Equal(t, []int{1, 2}, ValidPositions(tl, 2005), "boundary ties are both valid")
    assert.Equal(t, []int{0}, ValidPositions(tl, 1990))
    assert.Equal(t, []int{3}, ValidPositions(tl, 2020))
    assert.Equal(t, []int{0}, ValidPositions(nil, 1975), "empty timeline has exactly one slot")
}

// Every position ValidPositions returns must satisfy IsValidPlacement, and
// every position it omits must not.
func TestValidPositionsAgreesWithValidator(t *testing.T) {
    rng := rand.New(rand.NewSource(7))
    for trial := 0; trial < 100; trial++ {
        years := make([]int, rng.Intn(8))
        for i := range years {
            years[i] = 1960 + rng.Intn(60)
        }
        // sort by insertion, mimicking how timelines are built
        tl := []PlacedCard{}
        for _, y := range years {
            pos := ValidPositions(tl, y)[0]
            song := Song{Year: y}
            tl = append(tl, PlacedCard{})
            copy(tl[pos+1:], tl[pos:])
            tl[pos] = PlacedCard{Song: song}
        }
        // sortedness invariant
        for i := 0; i < len(tl)-1; i++ {
            require.LessOrEqual(t, tl[i].Year, tl[i+1].Year)
        }

        year := 1960 + rng.Intn(60)
        valid := map[int]bool{}
        for _, p := range ValidPositions(tl, year) {
            valid[p] = true
        }
        for pos := 0; pos <= len(tl); pos++ {
            assert.Equal(t, valid[pos], IsValidPlacement(tl, Song{Year: year}, pos),
                "position %d, year %d, timeline %v", pos, year, tl)
        }
    }
}

func TestTurnRotation(t *testing.T) {
    assert.Equal(t, 0, NextPlayerIndex(2, 3))
    assert.Equal(t, 1, NextPlayerIndex(0, 3))
    assert.Equal(t, 0, NextDjIndex(2, 3))
    // a single-player room rotates to itself
    assert.Equal(t, 0, NextPlayerIndex(0, 1))
}

func TestHasWon(t *testing.T) {
    assert.False(t, HasWon(9))
    assert.True(t, HasWon(10))
    assert.True(t, HasWon(15))
}

func TestCanAfford(t *testing.T) {
    assert.False(t, CanAfford(0, ActionSkip))
    assert.True(t, CanAfford(1, ActionSkip))
    assert.True(t, CanAfford(1, ActionChallenge))
    assert.False(t, CanAfford(2, ActionFreeCard))
    assert.True(t, CanAfford(3, ActionFreeCard))
}

func TestTokenCost(t *testing.T) {
    assert.Equal(t, 1, TokenCost(ActionSkip))
    assert.Equal(t, 1, TokenCost(ActionChallenge))
    assert.Equal(t, 3, TokenCost(ActionFreeCard))
}
