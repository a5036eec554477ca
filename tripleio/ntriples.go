// Package tripleio provides one-shot edge-stream producers for serialized
// ifcOWL model graphs.
//
// Each producer runs as a single fire-and-forget goroutine writing triples
// to a channel and closing it at end of stream; the consumer side is a
// plain range loop. Sources are re-openable so a conversion can scan the
// stream once for its schema-import declaration and a second time for
// ingestion. Lines that fail to parse are logged and skipped; producers
// never fail a conversion on a malformed line.
package tripleio

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strconv"
	"strings"

	"github.com/c360studio/semstreams/message"
)

// edgeChannelBuffer is the size of the producer/consumer handoff channel.
const edgeChannelBuffer = 256

// XSD datatype IRIs mapped to native object values during decoding.
const (
	xsdInteger        = "http://www.w3.org/2001/XMLSchema#integer"
	xsdInt            = "http://www.w3.org/2001/XMLSchema#int"
	xsdLong           = "http://www.w3.org/2001/XMLSchema#long"
	xsdNonNegativeInt = "http://www.w3.org/2001/XMLSchema#nonNegativeInteger"
	xsdDouble         = "http://www.w3.org/2001/XMLSchema#double"
	xsdFloat          = "http://www.w3.org/2001/XMLSchema#float"
	xsdDecimal        = "http://www.w3.org/2001/XMLSchema#decimal"
	xsdBoolean        = "http://www.w3.org/2001/XMLSchema#boolean"
)

// NTriples streams triples from an N-Triples document.
type NTriples struct {
	open   func() (io.ReadCloser, error)
	logger *slog.Logger
}

// NewNTriples creates a source over a re-openable reader.
func NewNTriples(open func() (io.ReadCloser, error), logger *slog.Logger) *NTriples {
	if logger == nil {
		logger = slog.Default()
	}
	return &NTriples{open: open, logger: logger}
}

// NewNTriplesFile creates a source over an N-Triples file.
func NewNTriplesFile(path string, logger *slog.Logger) *NTriples {
	return NewNTriples(func() (io.ReadCloser, error) { return os.Open(path) }, logger)
}

// Edges opens the document and starts the producer goroutine.
func (s *NTriples) Edges(ctx context.Context) (<-chan message.Triple, error) {
	r, err := s.open()
	if err != nil {
		return nil, fmt.Errorf("open ntriples input: %w", err)
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
			t, ok, err := parseTripleLine(sc.Text())
			if err != nil {
				s.logger.Warn("Skipping malformed ntriples line", "line", lineNo, "error", err.Error())
				continue
			}
			if !ok {
				continue
			}
			select {
			case ch <- t:
			case <-ctx.Done():
				return
			}
		}
		if err := sc.Err(); err != nil {
			s.logger.Error("Reading ntriples input failed", "line", lineNo, "error", err.Error())
		}
	}()
	return ch, nil
}

// parseTripleLine parses one N-Triples statement. Blank lines and comments
// report ok=false without error.
func parseTripleLine(line string) (message.Triple, bool, error) {
	p := &lineParser{s: line}
	p.skipSpace()
	if p.eof() || p.peek() == '#' {
		return message.Triple{}, false, nil
	}

	subject, err := p.resource()
	if err != nil {
		return message.Triple{}, false, fmt.Errorf("subject: %w", err)
	}
	p.skipSpace()
	predicate, err := p.iri()
	if err != nil {
		return message.Triple{}, false, fmt.Errorf("predicate: %w", err)
	}
	p.skipSpace()
	object, err := p.object()
	if err != nil {
		return message.Triple{}, false, fmt.Errorf("object: %w", err)
	}
	p.skipSpace()
	if p.eof() || p.peek() != '.' {
		return message.Triple{}, false, fmt.Errorf("statement not terminated with '.'")
	}

	return message.Triple{Subject: subject, Predicate: predicate, Object: object}, true, nil
}

// lineParser is a minimal cursor over one statement.
type lineParser struct {
	s string
	i int
}

func (p *lineParser) eof() bool { return p.i >= len(p.s) }
func (p *lineParser) peek() byte { return p.s[p.i] }
func (p *lineParser) skipSpace() {
	for !p.eof() && (p.s[p.i] == ' ' || p.s[p.i] == '\t') {
		p.i++
	}
}

// iri consumes an angle-bracketed IRI.
func (p *lineParser) iri() (string, error) {
	if p.eof() || p.peek() != '<' {
		return "", fmt.Errorf("expected '<'")
	}
	end := strings.IndexByte(p.s[p.i:], '>')
	if end < 0 {
		return "", fmt.Errorf("unterminated IRI")
	}
	iri := p.s[p.i+1 : p.i+end]
	p.i += end + 1
	return iri, nil
}

// resource consumes an IRI or a blank node label.
func (p *lineParser) resource() (string, error) {
	if !p.eof() && p.peek() == '_' {
		start := p.i
		for !p.eof() && p.s[p.i] != ' ' && p.s[p.i] != '\t' {
			p.i++
		}
		return p.s[start:p.i], nil
	}
	return p.iri()
}

// object consumes an IRI, blank node, or literal, mapping well-known XSD
// datatypes to native values.
func (p *lineParser) object() (any, error) {
	if p.eof() {
		return nil, fmt.Errorf("missing object term")
	}
	if p.peek() != '"' {
		return p.resource()
	}

	lexical, err := p.quoted()
	if err != nil {
		return nil, err
	}

	// Optional language tag or datatype suffix.
	if !p.eof() && p.peek() == '@' {
		for !p.eof() && p.s[p.i] != ' ' && p.s[p.i] != '\t' {
			p.i++
		}
		return lexical, nil
	}
	if strings.HasPrefix(p.s[p.i:], "^^") {
		p.i += 2
		dt, err := p.iri()
		if err != nil {
			return nil, fmt.Errorf("datatype: %w", err)
		}
		return typedLiteral(lexical, dt)
	}
	return lexical, nil
}

// quoted consumes a double-quoted literal and resolves escapes.
func (p *lineParser) quoted() (string, error) {
	p.i++ // opening quote
	var sb strings.Builder
	for !p.eof() {
		c := p.s[p.i]
		switch c {
		case '"':
			p.i++
			return sb.String(), nil
		case '\\':
			p.i++
			if p.eof() {
				return "", fmt.Errorf("dangling escape")
			}
			switch p.s[p.i] {
			case 't':
				sb.WriteByte('\t')
			case 'n':
				sb.WriteByte('\n')
			case 'r':
				sb.WriteByte('\r')
			case '"', '\\':
				sb.WriteByte(p.s[p.i])
			case 'u':
				if p.i+4 >= len(p.s) {
					return "", fmt.Errorf("truncated unicode escape")
				}
				n, err := strconv.ParseUint(p.s[p.i+1:p.i+5], 16, 32)
				if err != nil {
					return "", fmt.Errorf("unicode escape: %w", err)
				}
				sb.WriteRune(rune(n))
				p.i += 4
			default:
				return "", fmt.Errorf("unknown escape \\%c", p.s[p.i])
			}
			p.i++
		default:
			sb.WriteByte(c)
			p.i++
		}
	}
	return "", fmt.Errorf("unterminated literal")
}

// typedLiteral maps a lexical form and datatype IRI to a native object
// value. Unknown datatypes keep the lexical form.
func typedLiteral(lexical, datatype string) (any, error) {
	switch datatype {
	case xsdInteger, xsdInt, xsdLong, xsdNonNegativeInt:
		n, err := strconv.ParseInt(lexical, 10, 64)
		if err != nil {
			return nil, fmt.Errorf("integer literal %q: %w", lexical, err)
		}
		return n, nil
	case xsdDouble, xsdFloat, xsdDecimal:
		f, err := strconv.ParseFloat(lexical, 64)
		if err != nil {
			return nil, fmt.Errorf("double literal %q: %w", lexical, err)
		}
		return f, nil
	case xsdBoolean:
		b, err := strconv.ParseBool(lexical)
		if err != nil {
			return nil, fmt.Errorf("boolean literal %q: %w", lexical, err)
		}
		return b, nil
	default:
		return lexical, nil
	}
}
