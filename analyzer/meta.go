package analyzer

import (
	"bytes"
	"regexp"
	"strings"
)

// -----------------------------------------------------------------------------
// Suppression directives
// -----------------------------------------------------------------------------

// RuleName is the rule name recognised in eslint-disable directives
const RuleName = "no-unsafe-first"

var directiveRe = regexp.MustCompile(`(rxguard:ignore|eslint-disable-next-line|eslint-disable-line)\b([^\n*]*)`)

// suppressed returns true if a directive on the given 0-based row or the row above covers the rule
func suppressed(src []byte, row int) bool {
	if row > 0 && hasDirective(lineAt(src, row-1), "rxguard:ignore", "eslint-disable-next-line") {
		return true
	}
	return hasDirective(lineAt(src, row), "rxguard:ignore", "eslint-disable-line")
}

func hasDirective(line []byte, accepted ...string) bool {
	if !bytes.Contains(line, []byte("//")) && !bytes.Contains(line, []byte("/*")) {
		return false
	}
	for _, m := range directiveRe.FindAllSubmatch(line, -1) {
		directive := string(m[1])
		for _, candidate := range accepted {
			if directive != candidate {
				continue
			}
			if directive == "rxguard:ignore" || coversRule(string(m[2])) {
				return true
			}
		}
	}
	return false
}

// coversRule returns true for an empty rule list or a list naming the rule, "-- reason" is ignored
func coversRule(rules string) bool {
	if idx := strings.Index(rules, "--"); idx != -1 {
		rules = rules[:idx]
	}
	rules = strings.TrimSpace(rules)
	if rules == "" {
		return true
	}
	for _, rule := range strings.Split(rules, ",") {
		rule = strings.TrimSpace(rule)
		if rule == RuleName || strings.HasSuffix(rule, "/"+RuleName) {
			return true
		}
	}
	return false
}

func lineAt(src []byte, row int) []byte {
	for i := 0; i < row; i++ {
		idx := bytes.IndexByte(src, '\n')
		if idx == -1 {
			return nil
		}
		src = src[idx+1:]
	}
	if idx := bytes.IndexByte(src, '\n'); idx != -1 {
		return src[:idx]
	}
	return src
}
