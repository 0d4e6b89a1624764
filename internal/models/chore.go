package models

// Chore is a single household task. IDs are assigned by the store,
// increase monotonically, and are never reused after deletion.
// AssignedTo is free text; it is not validated against registered users.
type Chore struct {
	ID         int64  `json:"id"`
	Title      string `json:"title"`
	AssignedTo string `json:"assignedTo"`
	Completed  bool   `json:"completed"`
	CreatedBy  string `json:"createdBy"`
}
