package bridge

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/seu-repo/genie-bridge/internal/domain"
)

// ParsedExample is a canonical example's target code split into its ordered
// typed arguments and the program body with the argument holes still open.
type ParsedExample struct {
	ArgNames []string
	ArgTypes map[string]domain.SlotType
	Body     string
}

var argNameRE = regexp.MustCompile(`\bp_[A-Za-z0-9_]+\b`)

// ParseTargetCode parses stored target code of the form
//
//	action (p_message : String, p_interval : Measure(ms)) := @com.twitter.post(status=p_message);
//
// into its argument list and body. The utterance annotation block (`#_[...]`)
// and the trailing semicolon are discarded. Malformed target code is a data
// bug, not a user error.
func ParseTargetCode(code string) (*ParsedExample, error) {
	code = strings.TrimSpace(code)

	assign := strings.Index(code, ":=")
	if assign < 0 {
		return nil, fmt.Errorf("parse target code: missing ':='")
	}
	head, body := code[:assign], code[assign+2:]

	argNames, argTypes, err := parseArgList(head)
	if err != nil {
		return nil, err
	}

	if ann := strings.Index(body, "#_["); ann >= 0 {
		body = body[:ann]
	}
	body = strings.TrimSuffix(strings.TrimSpace(body), ";")

	return &ParsedExample{
		ArgNames: argNames,
		ArgTypes: argTypes,
		Body:     strings.TrimSpace(body),
	}, nil
}

// parseArgList extracts `p_name : Type` declarations from the head of a
// target code string. Types may carry a parenthesized detail, e.g.
// Measure(ms) or Enum(on,off).
func parseArgList(head string) ([]string, map[string]domain.SlotType, error) {
	open := strings.IndexByte(head, '(')
	if open < 0 {
		// No argument list: a fully-bound example.
		return nil, map[string]domain.SlotType{}, nil
	}
	end := matchingParen(head, open)
	if end < 0 {
		return nil, nil, fmt.Errorf("parse target code: unbalanced argument list")
	}

	names := []string{}
	types := map[string]domain.SlotType{}
	for _, decl := range splitTopLevel(head[open+1 : end]) {
		decl = strings.TrimSpace(decl)
		if decl == "" {
			continue
		}
		colon := strings.IndexByte(decl, ':')
		if colon < 0 {
			return nil, nil, fmt.Errorf("parse target code: argument %q has no type", decl)
		}
		name := strings.TrimSpace(decl[:colon])
		slotType, err := parseSlotType(strings.TrimSpace(decl[colon+1:]))
		if err != nil {
			return nil, nil, err
		}
		names = append(names, name)
		types[name] = slotType
	}
	return names, types, nil
}

func parseSlotType(s string) (domain.SlotType, error) {
	if s == "" {
		return domain.SlotType{}, fmt.Errorf("parse target code: empty type")
	}
	if open := strings.IndexByte(s, '('); open >= 0 {
		base := strings.TrimSpace(s[:open])
		detail := strings.TrimSuffix(s[open+1:], ")")
		return domain.SlotType{Kind: domain.EntityKind(base), Unit: strings.TrimSpace(detail)}, nil
	}
	return domain.SlotType{Kind: domain.EntityKind(s)}, nil
}

// matchingParen returns the index of the ')' matching the '(' at open.
func matchingParen(s string, open int) int {
	depth := 0
	for i := open; i < len(s); i++ {
		switch s[i] {
		case '(':
			depth++
		case ')':
			depth--
			if depth == 0 {
				return i
			}
		}
	}
	return -1
}

// splitTopLevel splits on commas that are not nested inside parentheses.
func splitTopLevel(s string) []string {
	parts := []string{}
	depth, start := 0, 0
	for i := 0; i < len(s); i++ {
		switch s[i] {
		case '(':
			depth++
		case ')':
			depth--
		case ',':
			if depth == 0 {
				parts = append(parts, s[start:i])
				start = i + 1
			}
		}
	}
	parts = append(parts, s[start:])
	return parts
}

// Bind substitutes every argument occurrence in the body with its synthetic
// SLOT_<index> key and normalizes whitespace, yielding the engine's
// executable token sequence.
func (p *ParsedExample) Bind() string {
	index := make(map[string]string, len(p.ArgNames))
	for i, name := range p.ArgNames {
		index[name] = SlotKey(i)
	}
	bound := argNameRE.ReplaceAllStringFunc(p.Body, func(name string) string {
		if key, ok := index[name]; ok {
			return key
		}
		return name
	})
	return strings.Join(strings.Fields(bound), " ")
}
