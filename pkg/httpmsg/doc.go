// Package httpmsg parses raw, possibly malformed HTTP messages into a
// structured form.
//
// Captured traffic is not guaranteed to be conformant: servers truncate
// bodies, omit framing headers, and emit garbage start lines. This parser
// therefore never gives up on a message when anything at all can be
// recovered. Grammar violations produce Diagnostics and a best-effort
// partial Message instead of errors.
//
// Headers are kept as an ordered sequence of byte-exact (name, value) pairs:
// order and duplicates are preserved, and names are never case-normalized,
// so a parsed message can be faithfully compared against the original bytes.
//
// This package is a leaf with no internal dependencies.
package httpmsg
