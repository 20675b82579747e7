package chapters

import "strings"

// InjectCSS inserts a <style> block into an HTML document.
// Tries </head> first, then after <body>, then prepends.
func InjectCSS(doc, css string) string {
	if css == "" {
		return doc
	}

	styleBlock := "<style>" + sanitizeCSS(css) + "</style>"
	lower := strings.ToLower(doc)

	if idx := strings.Index(lower, "</head>"); idx != -1 {
		return doc[:idx] + styleBlock + doc[idx:]
	}

	if idx := strings.Index(lower, "<body"); idx != -1 {
		if closeIdx := strings.Index(doc[idx:], ">"); closeIdx != -1 {
			insertPos := idx + closeIdx + 1
			return doc[:insertPos] + styleBlock + doc[insertPos:]
		}
	}

	return styleBlock + doc
}

// sanitizeCSS escapes "</" so the stylesheet cannot close its <style> block.
func sanitizeCSS(css string) string {
	return strings.ReplaceAll(css, "</", `<\/`)
}
