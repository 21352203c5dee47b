// Package extradata encodes the opaque application data attached to identity
// and session records.
//
// The value space is deliberately minimal and self-describing: null, bool,
// number, string, list and map. Values are stored as JSON, so blobs written
// by one process round-trip exactly in another with no language-specific
// object format involved. Numbers decode as json.Number to preserve
// integer/float fidelity across the round trip.
//
// Absence of data is not represented here: callers store SQL NULL for
// "no data", which is distinct from an encoded null or an empty map.
package extradata
