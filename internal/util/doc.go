// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package util provides utility functions for the chatwidget application.
//
// String helpers are width-aware (github.com/mattn/go-runewidth) so chips and
// bubbles line up with CJK and emoji text. AtomicWriteFile is used when the
// config file is written.
package util
