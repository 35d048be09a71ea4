package reconcile

import "errors"

var (
	// ErrNoOrderReference means an authenticated notification carried no
	// resolvable order reference. Data integrity problem, not a race.
	ErrNoOrderReference = errors.New("notification carries no order reference")
)
