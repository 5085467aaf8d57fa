// Package templates embeds the HTML templates for the public site.
package templates

import "embed"

//go:embed *.html partials/*.html
var FS embed.FS
