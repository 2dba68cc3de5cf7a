package services

import (
	"errors"
	"sort"

	"fulfillment/internal/core/domain/model/staff"
)

// ErrNoStaffAvailable is returned when no available staff member exists for
// the restaurant. Callers recover by queuing the order in the backlog.
var ErrNoStaffAvailable = errors.New("no staff available")

// Scoring weights. The experience and rate bonuses are capped so a very
// senior or very expensive staff member cannot drown out the performance
// rating, which stays the dominant term.
const (
	experiencePerOrder = 0.1
	experienceCap      = 5.0

	// rate bonus: 0.05 per major currency unit of hourly rate, capped
	ratePerMajorUnit = 0.05
	rateCap          = 2.0
)

// StaffScorer is a domain service that ranks a restaurant's available staff
// members and selects the best candidate for a new order.
//
// Business rules:
//   - only available staff members are candidates
//   - score = performance rating + capped experience bonus + capped rate bonus
//   - ties break deterministically: earliest hire first, then smallest ID
//
// The scorer only ranks; claiming the selected member is the caller's job, so
// a lost race surfaces there and the caller falls through to the next
// candidate.
type StaffScorer struct{}

// NewStaffScorer creates a new StaffScorer instance.
func NewStaffScorer() StaffScorer {
	return StaffScorer{}
}

// Score computes the ranking value of a single staff member.
func (s StaffScorer) Score(member *staff.StaffMember) float64 {
	experience := experiencePerOrder * float64(member.TotalOrdersCompleted())
	if experience > experienceCap {
		experience = experienceCap
	}

	rate := ratePerMajorUnit * float64(member.HourlyRate().Amount()) / 100
	if rate > rateCap {
		rate = rateCap
	}

	return member.PerformanceRating() + experience + rate
}

// Rank returns the available candidates ordered best-first. The order is a
// total one: equal scores fall back to the earliest hire, then to the
// smallest ID, so concurrent rankings over the same pool agree.
func (s StaffScorer) Rank(members []*staff.StaffMember) ([]*staff.StaffMember, error) {
	candidates := make([]*staff.StaffMember, 0, len(members))
	for _, member := range members {
		if err := member.Validate(); err != nil {
			return nil, err
		}
		if member.IsAvailable() {
			candidates = append(candidates, member)
		}
	}

	if len(candidates) == 0 {
		return nil, ErrNoStaffAvailable
	}

	sort.SliceStable(candidates, func(i, j int) bool {
		scoreI, scoreJ := s.Score(candidates[i]), s.Score(candidates[j])
		if scoreI != scoreJ {
			return scoreI > scoreJ
		}
		if !candidates[i].CreatedAt().Equal(candidates[j].CreatedAt()) {
			return candidates[i].CreatedAt().Before(candidates[j].CreatedAt())
		}
		return candidates[i].ID().String() < candidates[j].ID().String()
	})

	return candidates, nil
}

// Select returns the single best candidate, or ErrNoStaffAvailable when the
// pool has no available member.
func (s StaffScorer) Select(members []*staff.StaffMember) (*staff.StaffMember, error) {
	ranked, err := s.Rank(members)
	if err != nil {
		return nil, err
	}
	return ranked[0], nil
}
