// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

// Package render converts project long descriptions from Markdown to
// sanitized HTML for the storefront detail pages.
package render

import (
	"bytes"
	"fmt"

	"github.com/microcosm-cc/bluemonday"
	"github.com/yuin/goldmark"
)

// htmlSanitizer strips dangerous elements from rendered descriptions.
// Project descriptions are admin-edited but rendered on the public
// storefront, so they get the same policy as user-generated content.
var htmlSanitizer = bluemonday.UGCPolicy()

// Markdown converts a Markdown long description to sanitized HTML.
func Markdown(src string) (string, error) {
	var buf bytes.Buffer
	if err := goldmark.Convert([]byte(src), &buf); err != nil {
		return "", fmt.Errorf("rendering markdown: %w", err)
	}
	return htmlSanitizer.Sanitize(buf.String()), nil
}
