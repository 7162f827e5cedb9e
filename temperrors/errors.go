package temperrors

import "errors"

var ErrEmptyList = errors.New("empty list")
