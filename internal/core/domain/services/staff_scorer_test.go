package services

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/domain/model/staff"
)

func restoreMember(
	t *testing.T,
	name string,
	available bool,
	rating float64,
	completed int,
	hourlyRateCents int64,
	createdAt time.Time,
) *staff.StaffMember {
	t.Helper()
	rate, err := kernel.NewMoney(hourlyRateCents)
	require.NoError(t, err)
	member, err := staff.RestoreStaffMember(
		kernel.NewUUID(), kernel.NewUUID(), name, available, rating, completed, rate, createdAt,
	)
	require.NoError(t, err)
	return member
}

func Test_StaffScorer_Score_CapsExperienceAndRateBonuses(t *testing.T) {
	scorer := NewStaffScorer()
	hired := time.Now()

	// 500 completions would be a 50.0 bonus uncapped; an 80.00/h rate would
	// be 4.0 uncapped. Both hit their caps: 6.0 + 5.0 + 2.0.
	veteran := restoreMember(t, "veteran", true, 6.0, 500, 8000, hired)
	assert.InDelta(t, 13.0, scorer.Score(veteran), 0.0001)

	// 12 completions and a 20.00/h rate stay under the caps:
	// 6.0 + 1.2 + 1.0.
	junior := restoreMember(t, "junior", true, 6.0, 12, 2000, hired)
	assert.InDelta(t, 8.2, scorer.Score(junior), 0.0001)
}

func Test_StaffScorer_Select_PicksHighestScore(t *testing.T) {
	scorer := NewStaffScorer()
	hired := time.Now()

	low := restoreMember(t, "low", true, 4.0, 0, 2000, hired)
	high := restoreMember(t, "high", true, 9.0, 10, 2000, hired)
	mid := restoreMember(t, "mid", true, 7.0, 10, 2000, hired)

	selected, err := scorer.Select([]*staff.StaffMember{low, high, mid})

	require.NoError(t, err)
	assert.True(t, high.IsEqual(selected))
}

func Test_StaffScorer_Select_SkipsUnavailableMembers(t *testing.T) {
	scorer := NewStaffScorer()
	hired := time.Now()

	busy := restoreMember(t, "busy", false, 9.9, 100, 5000, hired)
	free := restoreMember(t, "free", true, 3.0, 0, 2000, hired)

	selected, err := scorer.Select([]*staff.StaffMember{busy, free})

	require.NoError(t, err)
	assert.True(t, free.IsEqual(selected))
}

func Test_StaffScorer_Select_FailsWhenNoOneIsAvailable(t *testing.T) {
	scorer := NewStaffScorer()

	_, err := scorer.Select(nil)
	assert.ErrorIs(t, err, ErrNoStaffAvailable)

	busy := restoreMember(t, "busy", false, 9.9, 100, 5000, time.Now())
	_, err = scorer.Select([]*staff.StaffMember{busy})
	assert.ErrorIs(t, err, ErrNoStaffAvailable)
}

func Test_StaffScorer_Select_BreaksTiesByEarliestHire(t *testing.T) {
	scorer := NewStaffScorer()

	older := restoreMember(t, "older", true, 5.0, 10, 2000,
		time.Date(2024, 1, 10, 0, 0, 0, 0, time.UTC))
	newer := restoreMember(t, "newer", true, 5.0, 10, 2000,
		time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC))

	selected, err := scorer.Select([]*staff.StaffMember{newer, older})

	require.NoError(t, err)
	assert.True(t, older.IsEqual(selected))
}

func Test_StaffScorer_Select_BreaksExactTiesByID(t *testing.T) {
	scorer := NewStaffScorer()
	hired := time.Date(2024, 1, 10, 0, 0, 0, 0, time.UTC)

	first := restoreMember(t, "first", true, 5.0, 10, 2000, hired)
	second := restoreMember(t, "second", true, 5.0, 10, 2000, hired)

	want := first
	if second.ID().String() < first.ID().String() {
		want = second
	}

	selected, err := scorer.Select([]*staff.StaffMember{first, second})
	require.NoError(t, err)
	assert.True(t, want.IsEqual(selected))

	// Same result regardless of input order.
	selected, err = scorer.Select([]*staff.StaffMember{second, first})
	require.NoError(t, err)
	assert.True(t, want.IsEqual(selected))
}

func Test_StaffScorer_Rank_ReturnsCandidatesBestFirst(t *testing.T) {
	scorer := NewStaffScorer()
	hired := time.Now()

	low := restoreMember(t, "low", true, 4.0, 0, 2000, hired)
	high := restoreMember(t, "high", true, 9.0, 10, 2000, hired)
	busy := restoreMember(t, "busy", false, 9.9, 100, 5000, hired)

	ranked, err := scorer.Rank([]*staff.StaffMember{low, busy, high})

	require.NoError(t, err)
	require.Len(t, ranked, 2)
	assert.True(t, high.IsEqual(ranked[0]))
	assert.True(t, low.IsEqual(ranked[1]))
}
