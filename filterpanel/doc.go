// Package filterpanel filters the post list of a rendered page by year-month and tags.
//
// The panel state is explicit: every UI event maps to one method on Panel, and View returns what should
// be rendered afterwards. Pages are read with goquery from the data-* attributes the site templates emit.
package filterpanel
