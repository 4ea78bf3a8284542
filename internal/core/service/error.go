package service

import "errors"

var ErrMissingUser = errors.New("missing user")
