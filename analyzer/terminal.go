package analyzer

// terminalOperators complete the stream after N values, N defaults to 1
var terminalOperators = map[string]bool{
	"first": true,
	"take":  true,
}

// IsTerminal returns true for a terminal single-value operator name
func IsTerminal(name string) bool {
	return terminalOperators[name]
}

// Terminal returns the leftmost terminal single-value operator or nil.
// Operators after it never run once it fires, so they are not reported separately.
func Terminal(operators []*Operator) *Operator {
	for _, op := range operators {
		if op != nil && IsTerminal(op.Name) {
			return op
		}
	}
	return nil
}
