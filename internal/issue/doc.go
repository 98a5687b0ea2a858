// SPDX-License-Identifier: MPL-2.0

// Package issue provides actionable error types and a catalog of known
// failure conditions rendered as terminal help cards.
package issue
