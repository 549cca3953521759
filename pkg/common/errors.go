package common

import "github.com/cockroachdb/errors"

var ErrNotFound = errors.New("record not found")
