package core

// Task is a unit of work that becomes available at Time.
type Task struct {
	Position
	Time int64 `json:"time"` // Simulated second the task appears
}

// NewTask creates an unscheduled task at pos.
func NewTask(pos Position) *Task {
	return &Task{Position: pos}
}

// AppearedBy reports whether the task is available at simulated time t.
func (t *Task) AppearedBy(at float64) bool {
	return float64(t.Time) <= at
}

// TaskTimes returns the times of tasks in order.
func TaskTimes(tasks []*Task) []int64 {
	times := make([]int64, len(tasks))
	for i, t := range tasks {
		times[i] = t.Time
	}
	return times
}
