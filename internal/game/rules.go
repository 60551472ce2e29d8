package game

import "math"

// Token costs for the three spendable actions.
type TokenAction string

const (
    ActionSkip      TokenAction = "skip"
    ActionChallenge TokenAction = "challenge"
    ActionFreeCard  TokenAction = "freeCard"
)

var tokenCosts = map[TokenAction]int{
    ActionSkip:      1,
    ActionChallenge: 1,
    ActionFreeCard:  3,
}

func TokenCost(action TokenAction) int {
    return tokenCosts[action]
}

func CanAfford(tokens int, action TokenAction) bool {
    return tokens >= tokenCosts[action]
}

// IsValidPlacement reports whether inserting song at position keeps the
// timeline sorted by year. Position 0 means before all cards,
// len(timeline) after all. This is the single rule for both normal and
// challenge placements.
func IsValidPlacement(timeline []PlacedCard, song Song, position int) bool {
    if position < 0 || position > len(timeline) {
        return false
    }
    if len(timeline) == 0 {
        return true
    }
    years := make([]int, 0, len(timeline)+1)
    for _, c := range timeline[:position] {
        years = append(years, c.Year)
    }
    years = append(years, song.Year)
    for _, c := range timeline[position:] {
        years = append(years, c.Year)
    }
    for i := 0; i < len(years)-1; i++ {
        if years[i] > years[i+1] {
            return false
        }
    }
    return true
}

// ValidPositions returns every insertion index that keeps the timeline
// sorted for a card of the given year. Free-card auto-placement takes the
// first entry.
func ValidPositions(timeline []PlacedCard, year int) []int {
    positions := []int{}
    for i := 0; i <= len(timeline); i++ {
        left := math.MinInt
        if i > 0 {
            left = timeline[i-1].Year
        }
        right := math.MaxInt
        if i < len(timeline) {
            right = timeline[i].Year
        }
        if year >= left && year <= right {
            positions = append(positions, i)
        }
    }
    return positions
}

// NextPlayerIndex rotates the turn to the next player.
func NextPlayerIndex(current, playerCount int) int {
    return (current + 1) % playerCount
}

// NextDjIndex rotates the DJ role. Tracked separately from the turn index
// even though the two rotate in lockstep.
func NextDjIndex(current, playerCount int) int {
    return (current + 1) % playerCount
}

func HasWon(timelineLength int) bool {
    return timelineLength >= WinThreshold
}
