// Package emails embeds the markdown email templates and their HTML layouts.
package emails

import "embed"

// FS holds *.md templates at the root and layouts under layouts/.
//
//go:embed *.md layouts/*.html
var FS embed.FS
