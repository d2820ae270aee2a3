// Package lists provides a generic, read-only table backed by a remote JSON
// array. A Component owns the last successfully loaded items, filters them by
// a case-insensitive substring query and renders <tbody> fragments.
//
// Each component exposes three routes under its mount path: GET returns a
// JSON snapshot, GET /rows renders the filtered rows and POST /reload fetches
// the upstream list again. Overlapping loads are sequenced by a generation
// counter so a slow response never replaces a newer one.
package lists
