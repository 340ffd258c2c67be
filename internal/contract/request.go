package contract

import "time"

// NewProgressRequest builds a request for Complete. Skip and Fail ignore delta.
func NewProgressRequest(habitID, userID, delta string) ProgressRequest {
	return ProgressRequest{HabitID: habitID, UserID: userID, Delta: delta}
}

// NewStatusRequest asks for today's status.
func NewStatusRequest(habitID, userID string) StatusRequest {
	return StatusRequest{HabitID: habitID, UserID: userID}
}

// NewStatusRequestOn asks for the status on day.
func NewStatusRequestOn(habitID, userID string, day time.Time) StatusRequest {
	return StatusRequest{HabitID: habitID, UserID: userID, Day: day}
}
