package step

import (
	"log/slog"

	"github.com/c360studio/owl2step/model"
)

// nullRef marks a resolved list slot with no recorded value. It renders as
// a $ placeholder.
const nullRef = ""

// resolveChain flattens a list-cell chain into its ordered value references
// by walking hasNext links from the head cell. A cell without recorded
// contents contributes a single null placeholder. The walk never revisits a
// cell: a cyclic chain is reported and truncated at the point of the cycle.
func resolveChain(m *model.Model, head string, logger *slog.Logger) []string {
	var refs []string
	if contents, ok := m.Contents(head); ok {
		refs = append(refs, contents...)
	} else {
		refs = append(refs, nullRef)
		logger.Warn("Found a list without contents", "cell", head)
	}

	seen := map[string]bool{head: true}
	cur := head
	for {
		next, ok := m.Next(cur)
		if !ok {
			return refs
		}
		if seen[next] {
			logger.Warn("Found a cyclic list chain", "cell", next, "head", head)
			return refs
		}
		seen[next] = true
		if contents, ok := m.Contents(next); ok {
			refs = append(refs, contents...)
		}
		cur = next
	}
}
