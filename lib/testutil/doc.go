// Copyright 2026 The Hex Authors
// SPDX-License-Identifier: Apache-2.0

// Package testutil provides shared test helpers for hex packages.
//
// [WriteFile] puts fixture bytes (binaries, configs, notes documents)
// into a per-test temporary directory and returns the path.
//
// [RequireReceive] and [RequireClosed] wrap the select-with-timeout
// pattern so that a concurrency test fails instead of hanging when an
// expected signal never arrives.
//
// All helpers call t.Fatalf on failure rather than returning errors,
// since test setup failures are not recoverable.
package testutil
