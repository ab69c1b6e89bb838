package models

// TaskRecord is the wire shape returned by the worker-task provider.
// The provider returns the entire current collection on each call, in no
// guaranteed order.
type TaskRecord struct {
	ID       string      `json:"id"`
	Title    string      `json:"title"`
	DueDate  string      `json:"due_date"`
	Status   string      `json:"status"`
	Priority string      `json:"priority,omitempty"`
	Worker   *TaskWorker `json:"worker,omitempty"`
}

// TaskWorker carries the display name of the assigned worker.
type TaskWorker struct {
	Name string `json:"name"`
}
