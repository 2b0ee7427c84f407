package formulakit

// Program is a formula converted to postfix order with its variables left
// symbolic. It does not depend on any particular binding, so one Program
// can be evaluated many times and from many goroutines.
type Program struct {
	source string
	rpn    []Token
	refs   []Token // first reference to each variable, in source order
}

func newProgram(source string, tokens []Token) *Program {
	seen := make(map[string]struct{})
	var refs []Token
	for _, tok := range tokens {
		if tok.Kind != KindVariable {
			continue
		}
		if _, ok := seen[tok.Text]; ok {
			continue
		}
		seen[tok.Text] = struct{}{}
		refs = append(refs, tok)
	}
	return &Program{
		source: source,
		rpn:    ToRPN(tokens),
		refs:   refs,
	}
}

// Source returns the formula text the program was compiled from.
func (p *Program) Source() string {
	return p.source
}

// RPN returns a copy of the postfix token sequence.
func (p *Program) RPN() []Token {
	return append([]Token(nil), p.rpn...)
}

// Variables returns the distinct variable names the formula references,
// in order of first appearance.
func (p *Program) Variables() []string {
	names := make([]string, len(p.refs))
	for i, tok := range p.refs {
		names[i] = tok.Text
	}
	return names
}

// Eval evaluates the program with the given bindings. Every referenced
// variable must be bound; the first missing one in source order is
// reported.
func (p *Program) Eval(vars map[string]float64) (float64, error) {
	for _, tok := range p.refs {
		if _, ok := vars[tok.Text]; !ok {
			return 0, unknownVariable(tok, vars)
		}
	}
	return evalRPN(p.rpn, vars)
}
