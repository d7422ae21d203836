package model

var transitions = map[Status][]Status{
	StatusBooked: {StatusInUse, StatusCancelled},
	StatusInUse:  {StatusCompleted, StatusCancelled},
}

// CanTransitionTo reports whether a booking may move from s to next.
// Keeping the current status is always allowed.
func (s Status) CanTransitionTo(next Status) bool {
	if !next.Valid() {
		return false
	}

	if s == next {
		return true
	}

	for _, allowed := range transitions[s] {
		if allowed == next {
			return true
		}
	}

	return false
}
