package contract

import (
	"regexp"
	"strings"

	"go.bytecodealliance.org/wit"

	"github.com/wippyai/guest-bridge/errors"
)

// FuncSig is a function signature parsed from WIT text.
type FuncSig struct {
	Params  []wit.Type
	Results []wit.Type
}

// Pattern: [export] name: func(params) [-> result];
var funcPattern = regexp.MustCompile(`(?:export\s+)?([a-zA-Z_][a-zA-Z0-9_-]*)\s*:\s*func\s*\(([^)]*)\)(?:\s*->\s*([^;]+))?`)

var interfacePattern = regexp.MustCompile(`interface\s+([a-zA-Z_][a-zA-Z0-9_-]*)\s*\{`)

// ParseFuncs extracts function signatures from WIT text. Interface
// structure is flattened away; the contract keeps function names unique
// so the flat view stays unambiguous.
func ParseFuncs(text string) (map[string]FuncSig, error) {
	funcs := make(map[string]FuncSig)

	for _, match := range funcPattern.FindAllStringSubmatch(text, -1) {
		name := match[1]
		sig := FuncSig{}

		if paramsStr := strings.TrimSpace(match[2]); paramsStr != "" {
			for _, p := range splitParams(paramsStr) {
				typStr := p
				if idx := strings.LastIndex(p, ":"); idx != -1 {
					typStr = strings.TrimSpace(p[idx+1:])
				}
				t, err := parseWitType(typStr)
				if err != nil {
					return nil, errors.New(errors.PhaseResolve, errors.KindInvalidInput).
						Symbol(name).
						Cause(err).
						Detail("parse param type %q", typStr).
						Build()
				}
				sig.Params = append(sig.Params, t)
			}
		}

		resultStr := strings.TrimSpace(match[3])
		if resultStr != "" && resultStr != "()" {
			parts := []string{resultStr}
			if strings.HasPrefix(resultStr, "(") && strings.HasSuffix(resultStr, ")") {
				inner := strings.TrimSuffix(strings.TrimPrefix(resultStr, "("), ")")
				parts = splitParams(inner)
			}
			for _, part := range parts {
				t, err := parseWitType(part)
				if err != nil {
					return nil, errors.New(errors.PhaseResolve, errors.KindInvalidInput).
						Symbol(name).
						Cause(err).
						Detail("parse result type %q", part).
						Build()
				}
				sig.Results = append(sig.Results, t)
			}
		}

		funcs[name] = sig
	}

	return funcs, nil
}

// ParseInterfaces returns interface names in order of appearance.
func ParseInterfaces(text string) []string {
	var out []string
	for _, match := range interfacePattern.FindAllStringSubmatch(text, -1) {
		out = append(out, match[1])
	}
	return out
}

// splitParams splits a comma-separated parameter list, respecting
// nesting inside parentheses and generic brackets.
func splitParams(s string) []string {
	var result []string
	var current strings.Builder
	depth := 0

	for _, ch := range s {
		switch ch {
		case '(', '<':
			depth++
			current.WriteRune(ch)
		case ')', '>':
			depth--
			current.WriteRune(ch)
		case ',':
			if depth == 0 {
				if str := strings.TrimSpace(current.String()); str != "" {
					result = append(result, str)
				}
				current.Reset()
			} else {
				current.WriteRune(ch)
			}
		default:
			current.WriteRune(ch)
		}
	}
	if str := strings.TrimSpace(current.String()); str != "" {
		result = append(result, str)
	}
	return result
}

func parseWitType(s string) (wit.Type, error) {
	return wit.ParseType(strings.TrimSpace(s))
}
