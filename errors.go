package sitesearch

import "errors"

var (
	ErrIndexFetch   = errors.New("search index fetch failed")
	ErrIndexDecode  = errors.New("search index decode failed")
	ErrIndexMissing = errors.New("search index url not configured")
)
