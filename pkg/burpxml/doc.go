// Package burpxml reads and writes Burp Suite HTTP history exports.
//
// The export is an XML document: an <items> root whose children are <item>
// elements, one per captured exchange, with the raw request and response
// embedded as base64 CDATA payloads. Reader streams the document one item
// at a time so memory stays bounded by the largest single item, never the
// whole file; exports routinely reach hundreds of megabytes.
//
// Error handling is split by blast radius. Anything that makes subsequent
// item boundaries untrustworthy (bad root, syntax error mid-document) is a
// fatal ContainerError. A stream that simply ends mid-item is recoverable:
// Next returns ErrTruncated after yielding every complete item. Payload
// decode failures (DecodeError) are scoped to one message of one item.
//
// Export writes a store of items back out in the same schema, so a load can
// be round-tripped.
package burpxml
