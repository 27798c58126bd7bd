package art

import "errors"

var (
	// ErrRecoveryUnavailable means the WHOOP recovery fetch failed or had
	// no usable records.
	ErrRecoveryUnavailable = errors.New("recovery data unavailable")

	// ErrGenerationFailed means the image provider returned an error.
	ErrGenerationFailed = errors.New("art generation failed")
)
