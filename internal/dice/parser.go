// Package dice implements the D&D dice notation parser and evaluator.
//
// The grammar is deliberately closed: the only things it recognizes are
// integer literals, dice groups of the form [count]d<sides>[khN|klN],
// and the four arithmetic operators. Unknown tokens are a parse error,
// never passed through to any general-purpose evaluator.
//
//	expression := term (('+' | '-' | '*' | '/') term)*
//	term       := integer | dice_group
//	dice_group := [count] 'd' sides [('kh' | 'kl') keep_count]
//
// Whitespace is insignificant and the grammar is case-insensitive.
package dice

import (
	"strconv"
	"strings"

	"github.com/aditya-ig10/Dungeons-Dragons-DBot/internal/errors"
)

// Notation bounds
const (
	MaxDiceCount = 100
	MaxDieSides  = 1000
)

// Parse parses dice notation like "2d6+3" or "4d6kh3" into an
// Expression. Failures are invalid-argument or out-of-range errors
// carrying the offending fragment in metadata; IsParseError matches
// both.
func Parse(input string) (*Expression, error) {
	normalized := strings.ReplaceAll(strings.ToLower(strings.TrimSpace(input)), " ", "")
	if normalized == "" {
		return nil, errors.InvalidArgument("dice expression is empty").
			WithMeta("fragment", input)
	}

	p := &parser{input: normalized}

	expr := &Expression{Text: normalized}
	term, err := p.parseTerm()
	if err != nil {
		return nil, err
	}
	expr.Terms = append(expr.Terms, term)

	for !p.done() {
		op, ok := p.readOperator()
		if !ok {
			return nil, errors.InvalidArgumentf("unexpected token %q in dice expression", p.rest()).
				WithMeta("fragment", p.rest())
		}
		if p.done() {
			return nil, errors.InvalidArgument("dice expression ends with an operator").
				WithMeta("fragment", string(byte(op)))
		}

		term, err := p.parseTerm()
		if err != nil {
			return nil, err
		}
		expr.Ops = append(expr.Ops, op)
		expr.Terms = append(expr.Terms, term)
	}

	return expr, nil
}

// IsParseError reports whether err came from Parse rather than Evaluate
func IsParseError(err error) bool {
	return errors.IsInvalidArgument(err) || errors.IsOutOfRange(err)
}

// IsEvalError reports whether err came from Evaluate, e.g. a division
// by zero, as opposed to malformed notation
func IsEvalError(err error) bool {
	return errors.IsFailedPrecondition(err)
}

type parser struct {
	input string
	pos   int
}

func (p *parser) done() bool {
	return p.pos >= len(p.input)
}

func (p *parser) rest() string {
	return p.input[p.pos:]
}

func (p *parser) readOperator() (Operator, bool) {
	switch p.input[p.pos] {
	case '+', '-', '*', '/':
		op := Operator(p.input[p.pos])
		p.pos++
		return op, true
	default:
		return 0, false
	}
}

// readDigits consumes a run of ASCII digits, returning "" when the
// next character is not a digit
func (p *parser) readDigits() string {
	start := p.pos
	for p.pos < len(p.input) && p.input[p.pos] >= '0' && p.input[p.pos] <= '9' {
		p.pos++
	}
	return p.input[start:p.pos]
}

func (p *parser) parseTerm() (Term, error) {
	start := p.pos
	countDigits := p.readDigits()

	// A 'd' after the optional count makes this a dice group; digits
	// alone are a literal modifier.
	if p.done() || p.input[p.pos] != 'd' {
		if countDigits == "" {
			return Term{}, errors.InvalidArgumentf("unexpected token %q in dice expression", p.rest()).
				WithMeta("fragment", p.rest())
		}
		value, err := strconv.Atoi(countDigits)
		if err != nil {
			return Term{}, errors.OutOfRangef("number %q is too large", countDigits).
				WithMeta("fragment", countDigits)
		}
		return Term{Kind: TermLiteral, Value: value, Text: countDigits}, nil
	}
	p.pos++ // consume 'd'

	count := 1
	if countDigits != "" {
		var err error
		count, err = strconv.Atoi(countDigits)
		if err != nil {
			count = MaxDiceCount + 1 // force the range check below
		}
	}

	sidesDigits := p.readDigits()
	if sidesDigits == "" {
		return Term{}, errors.InvalidArgumentf("dice group %q is missing a die size", p.input[start:p.pos]).
			WithMeta("fragment", p.input[start:p.pos])
	}
	sides, err := strconv.Atoi(sidesDigits)
	if err != nil {
		sides = MaxDieSides + 1
	}

	keepMode := KeepAll
	keepCount := 0
	if strings.HasPrefix(p.rest(), "kh") || strings.HasPrefix(p.rest(), "kl") {
		if p.input[p.pos+1] == 'h' {
			keepMode = KeepHighest
		} else {
			keepMode = KeepLowest
		}
		p.pos += 2

		keepDigits := p.readDigits()
		if keepDigits == "" {
			return Term{}, errors.InvalidArgumentf("keep specification in %q is missing a count", p.input[start:p.pos]).
				WithMeta("fragment", p.input[start:p.pos])
		}
		keepCount, err = strconv.Atoi(keepDigits)
		if err != nil {
			keepCount = -1
		}
	}

	text := p.input[start:p.pos]

	if count < 1 || count > MaxDiceCount {
		return Term{}, errors.OutOfRangef("number of dice must be between 1 and %d", MaxDiceCount).
			WithMeta("fragment", text)
	}
	if sides < 1 || sides > MaxDieSides {
		return Term{}, errors.OutOfRangef("die size must be between 1 and %d", MaxDieSides).
			WithMeta("fragment", text)
	}
	if keepMode != KeepAll && (keepCount < 1 || keepCount > count) {
		return Term{}, errors.OutOfRange("keep count must be between 1 and the number of dice").
			WithMeta("fragment", text)
	}

	return Term{
		Kind:      TermDice,
		Count:     count,
		Sides:     sides,
		KeepMode:  keepMode,
		KeepCount: keepCount,
		Text:      text,
	}, nil
}
