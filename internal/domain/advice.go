package domain

// Advice is one answer from the advice provider. Answer holds a fallback
// message when the completion API could not be reached.
type Advice struct {
	TaskID string `json:"task_id"`
	Kind   string `json:"kind"`
	Answer string `json:"answer"`
}
