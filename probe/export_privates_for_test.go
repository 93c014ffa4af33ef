// SPDX-License-Identifier: MIT
// Package probe: re-export private helpers for white-box tests.
// Compiled only under `go test`; keeps the public surface clean while
// letting the external test package exercise internals directly.

package probe

// CompareBlock exposes compareBlock to probe_test.
var CompareBlock = compareBlock
