package formulakit

import (
	"fmt"

	"github.com/gammazero/deque"
)

// group tracks one open '(' while converting. For a function call it
// counts the arguments seen so far and whether the current argument slot
// has received anything yet.
type group struct {
	call      bool
	args      int
	slotEmpty bool
}

// endsOperand reports whether a token of kind k completes an operand, so
// that another operand may not follow it directly.
func endsOperand(k Kind) bool {
	return k == KindNumber || k == KindVariable || k == KindRightParen
}

// beginsOperand reports whether a token of kind k starts a new operand.
func beginsOperand(k Kind) bool {
	switch k {
	case KindNumber, KindVariable, KindFunction, KindUnary, KindLeftParen:
		return true
	}
	return false
}

func invalid(tok Token, reason string) Token {
	return Token{Kind: KindInvalid, Text: tok.Text, Pos: tok.Pos, reason: reason}
}

// ToRPN reorders infix tokens into postfix order using the shunting-yard
// algorithm.
//
// Functions sit on the operator stack below their '(' and are emitted only
// when the matching ')' is reached, after all of their arguments. Commas
// flush the current argument. Binary operators are left associative; unary
// signs are right associative and bind tighter than '*' and '/'.
//
// ToRPN never fails. Structural mistakes are copied to the output so that
// EvalRPN rejects them: a ')' without a partner, a '(' that is never
// closed, a comma outside a call, and KindInvalid markers for two operands
// with no operator between them or an empty function argument.
func ToRPN(tokens []Token) []Token {
	out := make([]Token, 0, len(tokens))
	var ops deque.Deque[Token]
	var groups []group
	var prev Kind

	operand := func() {
		if n := len(groups); n > 0 {
			groups[n-1].slotEmpty = false
		}
	}
	flush := func() {
		for ops.Len() > 0 && ops.Back().Kind != KindLeftParen {
			out = append(out, ops.PopBack())
		}
	}

	for _, tok := range tokens {
		if endsOperand(prev) && beginsOperand(tok.Kind) {
			out = append(out, invalid(tok, "missing operator"))
		}

		switch tok.Kind {
		case KindNumber, KindVariable:
			operand()
			out = append(out, tok)

		case KindFunction, KindUnary:
			operand()
			ops.PushBack(tok)

		case KindOperator:
			operand()
			for ops.Len() > 0 && isOperator(ops.Back()) && precedence(ops.Back()) >= precedence(tok) {
				out = append(out, ops.PopBack())
			}
			ops.PushBack(tok)

		case KindComma:
			flush()
			n := len(groups)
			if n == 0 || !groups[n-1].call {
				out = append(out, tok)
				break
			}
			if groups[n-1].slotEmpty {
				out = append(out, invalid(tok, "empty argument"))
			}
			groups[n-1].args++
			groups[n-1].slotEmpty = true

		case KindLeftParen:
			operand()
			groups = append(groups, group{call: prev == KindFunction, slotEmpty: true})
			ops.PushBack(tok)

		case KindRightParen:
			flush()
			if ops.Len() == 0 {
				out = append(out, tok)
				break
			}
			ops.PopBack()
			g := groups[len(groups)-1]
			groups = groups[:len(groups)-1]
			if !g.call {
				break
			}
			argc := g.args
			if !g.slotEmpty {
				argc++
			} else if g.args > 0 {
				out = append(out, invalid(tok, "empty argument"))
				argc++
			}
			fn := ops.PopBack()
			fn.Argc = argc
			out = append(out, fn)

		default:
			out = append(out, tok)
		}
		prev = tok.Kind
	}

	for ops.Len() > 0 {
		out = append(out, ops.PopBack())
	}
	return out
}

// EvalRPN reduces a postfix token sequence to a single number.
//
// Binary operators and two-argument functions pop the right operand first.
// Division by zero and sqrt of a negative number produce ±Inf or NaN, not
// errors. Anything that prevents the stack from ending with exactly one
// value is a *MalformedError. KindVariable tokens are rejected as unknown
// variables; use Tokenize or Program.Eval to bind them.
func EvalRPN(rpn []Token) (float64, error) {
	return evalRPN(rpn, nil)
}

func evalRPN(rpn []Token, vars map[string]float64) (float64, error) {
	stack := make([]float64, 0, len(rpn))

	pop := func() float64 {
		v := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		return v
	}

	for _, tok := range rpn {
		switch tok.Kind {
		case KindNumber:
			stack = append(stack, tok.Value)

		case KindVariable:
			v, ok := vars[tok.Text]
			if !ok {
				return 0, unknownVariable(tok, vars)
			}
			stack = append(stack, v)

		case KindOperator:
			if len(stack) < 2 {
				return 0, malformed(tok, "operator needs two operands")
			}
			b, a := pop(), pop()
			r, ok := applyBinary(tok.Text, a, b)
			if !ok {
				return 0, malformed(tok, "unknown operator")
			}
			stack = append(stack, r)

		case KindUnary:
			if len(stack) < 1 {
				return 0, malformed(tok, "sign needs an operand")
			}
			if tok.Text == "-" {
				stack = append(stack, -pop())
			}

		case KindFunction:
			fn, ok := functions[tok.Text]
			if !ok {
				return 0, malformed(tok, "not a function")
			}
			if tok.Argc != fn.arity {
				return 0, malformed(tok, fmt.Sprintf("expects %d argument(s), got %d", fn.arity, tok.Argc))
			}
			if len(stack) < fn.arity {
				return 0, malformed(tok, "missing argument")
			}
			if fn.arity == 1 {
				stack = append(stack, fn.unary(pop()))
			} else {
				b, a := pop(), pop()
				stack = append(stack, fn.binary(a, b))
			}

		case KindLeftParen, KindRightParen:
			return 0, malformed(tok, "unbalanced parentheses")

		case KindComma:
			return 0, malformed(tok, "comma outside a function call")

		case KindInvalid:
			return 0, malformed(tok, tok.reason)

		default:
			return 0, malformed(tok, "unexpected token")
		}
	}

	switch len(stack) {
	case 1:
		return stack[0], nil
	case 0:
		return 0, &MalformedError{Pos: -1, Reason: "empty expression"}
	default:
		return 0, &MalformedError{Pos: -1, Reason: fmt.Sprintf("%d values left without an operator", len(stack))}
	}
}

func malformed(tok Token, reason string) error {
	return &MalformedError{Token: tok.Text, Pos: tok.Pos, Reason: reason}
}
