// Package relp owns the RELP wire contract shared by the frame codec and
// the session engine.
//
// Ownership boundary:
// - protocol-level sentinel errors
// - response decoding (status code + detail)
package relp
