// Package networks builds classic example circuits (bitonic merge/sort,
// bubble sort, insertion sort, and an additive reduction tree) purely by
// composing the circuit algebra. The generators double as test fixtures for
// the core passes and as the named networks exposed by the CLI and API;
// [Build] resolves a generator by name.
package networks
