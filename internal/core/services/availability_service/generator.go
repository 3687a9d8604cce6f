package availability_service

import (
	"github.com/clinera/appointment-slots-service/internal/core/domain"
)

// generateCandidates walks every matching rule from its start time,
// stepping by the rule's own granularity, and keeps each start whose
// slot still fits inside the rule window. The boundary is inclusive:
// a slot ending exactly at the rule end is valid. Candidates from
// overlapping rules collapse through the map, so identical starts
// never produce duplicates.
//
// The step is the rule's granularity, not the requested duration: a
// 60-minute appointment can start on a 30-minute offset when the rule
// steps in 30s.
func generateCandidates(rules []domain.ScheduleRule, durationMinutes int) map[int]struct{} {
	candidates := make(map[int]struct{})

	for _, rule := range rules {
		if !rule.Active || !rule.Valid() {
			continue
		}

		for start := rule.StartTime.Minutes; start+durationMinutes <= rule.EndTime.Minutes; start += rule.SlotMinutes {
			candidates[start] = struct{}{}
		}
	}

	return candidates
}
