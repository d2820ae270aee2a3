package vanilla

import (
	"strings"
	"sync"

	"github.com/microcosm-cc/bluemonday"
)

var (
	previewPolicyOnce sync.Once
	previewPolicy     *bluemonday.Policy

	// The sanitizer re-encodes text with numeric entities for quotes; map
	// them back to the entities render.EscapeHTML produces.
	entityRestorer = strings.NewReplacer("&#34;", "&quot;", "&#39;", "&#039;")
)

// sanitizePreview restricts the preview fragment to the list markup the
// template emits.
func sanitizePreview(raw string) string {
	trimmed := strings.TrimSpace(raw)
	if trimmed == "" {
		return ""
	}
	return entityRestorer.Replace(strings.TrimSpace(previewSanitizer().Sanitize(trimmed)))
}

func previewSanitizer() *bluemonday.Policy {
	previewPolicyOnce.Do(func() {
		policy := bluemonday.StrictPolicy()
		policy.AllowElements("ul", "li", "strong", "br")
		policy.AllowAttrs("class").Matching(bluemonday.SpaceSeparatedTokens).OnElements("ul")
		previewPolicy = policy
	})
	return previewPolicy
}
