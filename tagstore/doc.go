// Package tagstore keeps a bbolt catalogue of the last built search index: the entries in index order and
// the tag vocabulary with per-tag counts.
package tagstore
