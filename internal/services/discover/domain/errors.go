package domain

import perr "tripmaker/internal/platform/errors"

// IsValidation reports a rejected request
func IsValidation(err error) bool { return perr.IsCode(err, perr.ErrorCodeValidation) }

// IsUpstream reports a fatal directory failure
func IsUpstream(err error) bool { return perr.IsCode(err, perr.ErrorCodeUpstream) }

// IsCanceled reports a run abandoned by its caller
func IsCanceled(err error) bool { return perr.IsCode(err, perr.ErrorCodeCanceled) }

// IsExhausted reports a run that spent its attempt or time budget
func IsExhausted(err error) bool { return perr.IsCode(err, perr.ErrorCodeExhausted) }

// StatusOf maps a Discover error onto the ledger status
func StatusOf(err error) Status {
	switch {
	case err == nil:
		return StatusOK
	case IsValidation(err):
		return StatusInvalid
	case IsExhausted(err):
		return StatusExhausted
	case IsCanceled(err):
		return StatusCanceled
	default:
		return StatusUpstream
	}
}
