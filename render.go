package workset

import (
	"fmt"
	"sort"
	"strings"
	"time"
)

// archivePreviewLength caps the content preview emitted by
// [Engine.SummarizeArchive].
const archivePreviewLength = 80

// archiveEmptyMessage is returned by [Engine.SummarizeArchive]
// when there is nothing to summarize.
const archiveEmptyMessage = "No archived fragments to summarize."

// Render produces the human-consumable view of the resident
// set. When pinning is enabled and configured, the pinned
// instruction block comes first under its own label. Resident
// fragments follow in presentation order — critical fragments
// before the rest, most recent first within each group — each
// annotated with its priority tier. A one-line archived count
// closes the output when the archive is non-empty.
//
// Render never mutates the working set.
func (e *Engine) Render() string {
	var b strings.Builder

	if e.pinEnabled && e.instructions != "" {
		b.WriteString("## Pinned Instructions\n")
		b.WriteString(e.instructions)
		b.WriteString("\n\n")
	}

	ordered := presentationOrder(e.resident, e.criticalCutoff)
	for _, frag := range ordered {
		fmt.Fprintf(&b, "[%s] %s\n",
			tierOf(frag.Priority, e.criticalCutoff),
			frag.Content,
		)
	}

	if len(e.archive) > 0 {
		fmt.Fprintf(&b, "\n(%d archived fragment(s) not shown)\n",
			len(e.archive),
		)
	}

	return b.String()
}

// SummarizeArchive renders a condensed description of up to
// limit archived fragments, most recent first. Each entry is
// the fragment's timestamp plus a content preview truncated at
// archivePreviewLength characters with a trailing ellipsis
// marker. Returns a fixed message when the archive is empty.
//
// SummarizeArchive never mutates the working set.
func (e *Engine) SummarizeArchive(limit int) string {
	if len(e.archive) == 0 {
		return archiveEmptyMessage
	}
	if limit < 0 {
		limit = 0
	}

	sorted := make([]*Fragment, len(e.archive))
	copy(sorted, e.archive)
	sort.SliceStable(sorted, func(i, j int) bool {
		a, b := sorted[i], sorted[j]
		if !a.CreatedAt.Equal(b.CreatedAt) {
			return a.CreatedAt.After(b.CreatedAt)
		}
		return a.seq > b.seq
	})
	if limit < len(sorted) {
		sorted = sorted[:limit]
	}

	var b strings.Builder
	fmt.Fprintf(&b, "Archived fragments (%d of %d):\n",
		len(sorted), len(e.archive),
	)
	for _, frag := range sorted {
		fmt.Fprintf(&b, "- [%s] %s\n",
			frag.CreatedAt.Format(time.RFC3339),
			previewContent(frag.Content),
		)
	}
	return b.String()
}

// previewContent truncates content at archivePreviewLength
// runes, appending an ellipsis marker when truncated.
func previewContent(content string) string {
	runes := []rune(content)
	if len(runes) <= archivePreviewLength {
		return content
	}
	return string(runes[:archivePreviewLength]) + "..."
}
