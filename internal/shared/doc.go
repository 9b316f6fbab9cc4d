// Package shared holds code used across packages that belongs to no single
// layer. Today that is only the testutil subpackage: a capturing slog
// handler and oscilloscope capture fixtures for tests.
package shared
