// Package history turns a Burp Suite history export into a queryable
// in-memory store of captured exchanges.
//
// Load is the entry point: it streams the export through the container
// reader (pkg/burpxml), decodes each payload, parses the raw HTTP messages
// (pkg/httpmsg), and inserts the resulting Entries into a Store. Problems
// confined to a single entry never abort the load; they become Diagnostics
// attached to that entry. Only a malformed container, where the boundaries
// of later entries can no longer be trusted, is fatal.
//
// The Store has a bounded lifecycle: Load creates it, fills it, and freezes
// it. A frozen Store is immutable and safe for any number of concurrent
// readers. Ids are assigned at insertion in arrival order and never reused,
// so iteration order is capture order.
package history
