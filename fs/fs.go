// Package appfs exposes the embedded static assets of the application:
// SQL migrations and email templates.
package appfs

import "embed"

// The base templates are named explicitly: embed skips files whose names
// start with "_" when a directory is walked.
//
//go:embed migrations assets assets/templates/email/_base.txt assets/templates/email/_base.gohtml
var FS embed.FS
