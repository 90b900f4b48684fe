package interp

import "github.com/astrokit/anise/anierr"

// shortPayload reports a segment payload too small to hold its own
// declared trailer/record layout — this is a malformed-kernel condition,
// not an out-of-range query, so it surfaces as NotEnoughSamples.
func shortPayload(have, want int) error {
	return &anierr.NotEnoughSamplesError{Have: have, Want: want}
}
