package request

type Status string

const (
	StatusIdle      Status = "idle"
	StatusPending   Status = "pending"
	StatusFulfilled Status = "fulfilled"
	StatusRejected  Status = "rejected"
)

// Request tracks the lifecycle of one async operation. Data stays
// populated across a re-dispatch so a refresh can render stale results
// while the next response is in flight.
type Request[T any] struct {
	Status Status `json:"status"`
	Data   T      `json:"data"`
	Err    string `json:"error,omitempty"`
}

// Begin moves the request to pending and clears any previous error.
func (r *Request[T]) Begin() {
	r.Status = StatusPending
	r.Err = ""
}

// Resolve records a successful result.
func (r *Request[T]) Resolve(data T) {
	r.Status = StatusFulfilled
	r.Data = data
	r.Err = ""
}

// Fail records a failure. Data from a previous success is dropped so
// an error banner never sits next to a stale result.
func (r *Request[T]) Fail(msg string) {
	var zero T
	r.Status = StatusRejected
	r.Data = zero
	r.Err = msg
}

// FailKeep records a failure but leaves the previous result in place,
// for operations where a refresh error should not blank the screen.
func (r *Request[T]) FailKeep(msg string) {
	r.Status = StatusRejected
	r.Err = msg
}

// Reset returns the request to its zero state.
func (r *Request[T]) Reset() {
	var zero T
	r.Status = StatusIdle
	r.Data = zero
	r.Err = ""
}

func (r Request[T]) Loading() bool {
	return r.Status == StatusPending
}

func (r Request[T]) Fulfilled() bool {
	return r.Status == StatusFulfilled
}

func (r Request[T]) Rejected() bool {
	return r.Status == StatusRejected
}
