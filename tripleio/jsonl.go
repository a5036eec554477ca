package tripleio

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"

	"github.com/goccy/go-json"

	"github.com/c360studio/semstreams/message"
)

// jsonTriple is the wire form of one edge in a JSON Lines document.
type jsonTriple struct {
	Subject   string `json:"subject"`
	Predicate string `json:"predicate"`
	Object    any    `json:"object"`
}

// jsonLine is one JSON Lines record: either a bare triple, or an entity
// batch carrying a triples array (the graph-ingestion message shape).
type jsonLine struct {
	jsonTriple
	Triples []jsonTriple `json:"triples"`
}

// JSONLines streams triples from a JSON Lines document where each line is
// either a single {subject, predicate, object} record or a batch record
// with a triples array.
type JSONLines struct {
	open   func() (io.ReadCloser, error)
	logger *slog.Logger
}

// NewJSONLines creates a source over a re-openable reader.
func NewJSONLines(open func() (io.ReadCloser, error), logger *slog.Logger) *JSONLines {
	if logger == nil {
		logger = slog.Default()
	}
	return &JSONLines{open: open, logger: logger}
}

// NewJSONLinesFile creates a source over a JSON Lines file.
func NewJSONLinesFile(path string, logger *slog.Logger) *JSONLines {
	return NewJSONLines(func() (io.ReadCloser, error) { return os.Open(path) }, logger)
}

// Edges opens the document and starts the producer goroutine.
func (s *JSONLines) Edges(ctx context.Context) (<-chan message.Triple, error) {
	r, err := s.open()
	if err != nil {
		return nil, fmt.Errorf("open json lines input: %w", err)
	}

	ch := make(chan message.Triple, edgeChannelBuffer)
	go func() {
		defer close(ch)
		defer r.Close()

		sc := bufio.NewScanner(r)
		sc.Buffer(make([]byte, 64*1024), 4*1024*1024)
		lineNo := 0
		for sc.Scan() {
			lineNo++
			line := strings.TrimSpace(sc.Text())
			if line == "" {
				continue
			}
			var rec jsonLine
			if err := json.Unmarshal([]byte(line), &rec); err != nil {
				s.logger.Warn("Skipping malformed json line", "line", lineNo, "error", err.Error())
				continue
			}
			for _, jt := range s.expand(rec, lineNo) {
				select {
				case ch <- jt:
				case <-ctx.Done():
					return
				}
			}
		}
		if err := sc.Err(); err != nil {
			s.logger.Error("Reading json lines input failed", "line", lineNo, "error", err.Error())
		}
	}()
	return ch, nil
}

// expand turns one record into its triples, dropping incomplete entries.
func (s *JSONLines) expand(rec jsonLine, lineNo int) []message.Triple {
	raw := rec.Triples
	if len(raw) == 0 {
		raw = []jsonTriple{rec.jsonTriple}
	}
	out := make([]message.Triple, 0, len(raw))
	for _, jt := range raw {
		if jt.Predicate == "" {
			s.logger.Warn("Skipping triple without a predicate", "line", lineNo)
			continue
		}
		out = append(out, message.Triple{
			Subject:   jt.Subject,
			Predicate: jt.Predicate,
			Object:    jt.Object,
		})
	}
	return out
}
