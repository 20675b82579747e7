// Package hints provides actionable error hints for common failure scenarios.
// Hints are formatted consistently as "\n  hint: <text>" for appending to error messages.
package hints

import "strings"

// ForConfigMissing suggests creating the book first.
func ForConfigMissing(slug string) string {
	return format("run `quickbook init " + slug + "` to create it")
}

// ForSourceMissing points at where the source file belongs.
func ForSourceMissing(path string) string {
	return format("copy the LaTeX manuscript to " + path)
}

// ForRendererNotFound suggests installing pandoc or pointing at it.
func ForRendererNotFound() string {
	return format("install pandoc or set QUICKBOOK_RENDERER to its path")
}

// ForRenderFailed suggests inspecting the normalized source.
func ForRenderFailed(cleanFile string) string {
	return format("check " + cleanFile + " for constructs pandoc cannot read; rerun with --verbose")
}

// ForManifestMissing names the stage that writes the manifest.
func ForManifestMissing(slug string) string {
	return format("run `quickbook split " + slug + "` first")
}

// ForHTMLMissing names the stage that renders HTML.
func ForHTMLMissing(slug string) string {
	return format("run `quickbook convert " + slug + "` first")
}

// ForChunksMissing names the stage that writes chunk files.
func ForChunksMissing(slug string) string {
	return format("run `quickbook chunk " + slug + "` first")
}

// ForPublishTarget lists the variables that configure upload targets.
func ForPublishTarget() string {
	return format("set QUICKBOOK_OBJECT_STORE and QUICKBOOK_DOC_STORE (directory, file or http(s) URL)")
}

// ForPublishFailed suggests retrying once the target is reachable.
func ForPublishFailed() string {
	return format("objects already uploaded are kept; rerun `upload` once the target is reachable")
}

// ForInvalidSlug describes valid slugs.
func ForInvalidSlug() string {
	return format("use lowercase letters, digits and dashes, e.g. real-analysis")
}

// ForStyleNotFound returns hints for style not found errors.
func ForStyleNotFound(available []string) string {
	if len(available) == 0 {
		return ""
	}
	return format("available: " + strings.Join(available, ", "))
}

// ForBookExists suggests editing instead of reinitializing.
func ForBookExists(configFile string) string {
	return format("edit " + configFile + " instead")
}

// format creates a single hint string with consistent formatting.
func format(hint string) string {
	if hint == "" {
		return ""
	}
	return "\n  hint: " + hint
}
