package facilities

import "errors"

var (
	ErrNotFound   = errors.New("not found")
	ErrBadRequest = errors.New("bad request")
)

func IsErrNotFound(err error) bool {
	return errors.Is(err, ErrNotFound)
}

func IsErrBadRequest(err error) bool {
	return errors.Is(err, ErrBadRequest)
}
