package ttl

import (
	"bufio"
	"bytes"
	"io"
	"regexp"
	"strings"

	rdf "github.com/knakk/rdf"
)

var (
	prefixDirective = regexp.MustCompile(`^@prefix\s+([A-Za-z0-9_-]*):\s+<([^>]*)>\s*\.`)
	baseDirective   = regexp.MustCompile(`^@base\s+<([^>]*)>\s*\.`)
	langLiteral     = regexp.MustCompile(`^"(.*)"@([A-Za-z-]+)$`)
	typedLiteral    = regexp.MustCompile(`^"(.*)"\^\^<(.*)>$`)
	plainLiteral    = regexp.MustCompile(`^"(.*)"$`)
)

// Parse decodes Turtle source into its syntactic Document (directives) and
// its resolved RDF Graph (triples). It is the only place in the module that
// knows the Turtle surface syntax; everything downstream — the metadata
// extractor, the lint engine — consumes these two immutable views.
func Parse(source []byte) (*Document, *Graph, error) {
	doc, err := parseDocument(source)
	if err != nil {
		return nil, nil, err
	}
	graph, err := parseGraph(source)
	if err != nil {
		return nil, nil, err
	}
	return doc, graph, nil
}

func parseDocument(source []byte) (*Document, error) {
	doc := &Document{Prefixes: map[string]string{}}
	scanner := bufio.NewScanner(bytes.NewReader(source))
	lineNo := 0
	for scanner.Scan() {
		lineNo++
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}
		if m := prefixDirective.FindStringSubmatch(line); m != nil {
			doc.Prefixes[m[1]] = m[2]
			continue
		}
		if m := baseDirective.FindStringSubmatch(line); m != nil {
			doc.Base = m[1]
			doc.HasBase = true
			continue
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, &ParseError{Line: lineNo, Message: err.Error()}
	}
	return doc, nil
}

func parseGraph(source []byte) (*Graph, error) {
	dec := rdf.NewTripleDecoder(bytes.NewReader(source), rdf.Turtle)
	graph := &Graph{}
	for {
		triple, err := dec.Decode()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, &ParseError{Message: err.Error()}
		}
		graph.Triples = append(graph.Triples, Triple{
			Subject:   convertTerm(triple.Subj),
			Predicate: convertTerm(triple.Pred),
			Object:    convertTerm(triple.Obj),
		})
	}
	return graph, nil
}

// convertTerm maps a knakk/rdf term into our own Term value by inspecting
// its serialized N-Triples form. This avoids depending on knakk/rdf's
// internal literal/IRI accessor surface.
func convertTerm(t rdf.Term) Term {
	s := t.Serialize(rdf.NTriples)
	switch {
	case strings.HasPrefix(s, "<") && strings.HasSuffix(s, ">"):
		return Term{Kind: KindIRI, Value: strings.TrimSuffix(strings.TrimPrefix(s, "<"), ">")}
	case strings.HasPrefix(s, "_:"):
		return Term{Kind: KindBlank, Value: strings.TrimPrefix(s, "_:")}
	case strings.HasPrefix(s, `"`):
		if m := langLiteral.FindStringSubmatch(s); m != nil {
			return Term{Kind: KindLiteral, Value: m[1], Lang: m[2]}
		}
		if m := typedLiteral.FindStringSubmatch(s); m != nil {
			return Term{Kind: KindLiteral, Value: m[1], Datatype: m[2]}
		}
		if m := plainLiteral.FindStringSubmatch(s); m != nil {
			return Term{Kind: KindLiteral, Value: m[1]}
		}
		return Term{Kind: KindLiteral, Value: strings.Trim(s, `"`)}
	default:
		// Bare IRI without angle brackets; some encoders render it this way.
		return Term{Kind: KindIRI, Value: s}
	}
}
