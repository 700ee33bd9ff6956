package guardrail

import "errors"

// ErrUnknownAccessPoint is returned when a request names an access point
// with no record in the store. It is a lookup failure, not a policy
// rejection: callers should distinguish it from a Decision with
// Allowed=false.
var ErrUnknownAccessPoint = errors.New("unknown access point")
