package bookings

import "errors"

var (
	ErrNotFound   = errors.New("not found")
	ErrBadRequest = errors.New("bad request")
	ErrForbidden  = errors.New("forbidden")
)

func IsErrNotFound(err error) bool {
	return errors.Is(err, ErrNotFound)
}

func IsErrBadRequest(err error) bool {
	return errors.Is(err, ErrBadRequest)
}

func IsErrForbidden(err error) bool {
	return errors.Is(err, ErrForbidden)
}
