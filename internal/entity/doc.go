// Package entity holds the extension point of the sync engine: a handler table
// keyed by (entity kind, operation kind), the accessor used by normalizers to
// read untyped client payloads, and the client-visible error types.
//
// Each entity kind lives in its own subpackage exposing
//
//	func Register(r *entity.Registry, s Store)
//
// which installs its create, update and delete handlers.
package entity
