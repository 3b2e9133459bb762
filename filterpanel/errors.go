package filterpanel

import "errors"

var ErrParsePage = errors.New("failed to parse page")
