// Package store persists diagrams across backends.
//
// A [Store] holds flattened [diagram.Diagram] values under server-assigned
// ids. Three implementations are provided:
//
//   - [Memory]: in-process map, the default for tests and single-shot CLI use
//   - [Redis]: serialized JSON under namespaced keys, for shared short-lived state
//   - [Mongo]: one BSON document per diagram, for durable storage
//
// All backends report the same not-found condition through the
// DIAGRAM_NOT_FOUND error code, so callers never branch on the backend.
package store
