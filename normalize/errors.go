package normalize

import "github.com/whitemech/lydia-sub000/errs"

func contractViolation(msg string) error {
	return errs.Contract(msg)
}
