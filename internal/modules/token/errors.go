package token

import "errors"

var ErrTokenNotFound = errors.New("api token not found")
