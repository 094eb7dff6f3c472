package review

import "errors"

// ErrForbidden is returned when someone other than the review owner or
// an admin attempts a mutation. Handlers map it to a 403.
var ErrForbidden = errors.New("not authorized to modify this review")
