// Package sitesearch is the search side of a static site: it loads the site's index.json once and answers
// queries in memory with highlighted, deduplicated hits.
//
// Sub-packages cover the rest of the pipeline. indexgen builds index.json from a markdown tree, tagstore
// keeps a bbolt catalogue of the last build, filterpanel filters rendered post cards by month and tags,
// and server previews a built site with a search API.
package sitesearch
