package availability_service

import "github.com/clinera/appointment-slots-service/internal/core/domain"

type SlotSlice []domain.Slot

func (s SlotSlice) quickSort() SlotSlice {
	if len(s) < 2 {
		return s
	}

	pivot := s[len(s)/2]

	less := SlotSlice{}
	equal := SlotSlice{}
	greater := SlotSlice{}

	for _, slot := range s {
		if slot.StartTime.Before(pivot.StartTime) {
			less = append(less, slot)
		} else if slot.StartTime.Minutes == pivot.StartTime.Minutes {
			equal = append(equal, slot)
		} else {
			greater = append(greater, slot)
		}
	}

	return append(append(less.quickSort(), equal...), greater.quickSort()...)
}
