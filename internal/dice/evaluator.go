package dice

import (
	"fmt"
	"sort"
	"strings"

	"github.com/aditya-ig10/Dungeons-Dragons-DBot/internal/errors"
)

// Evaluate rolls a parsed expression against the given roller and
// returns the result with full provenance. The outcome is reproducible
// given the same sequence of roller draws: terms are rolled left to
// right, each group drawing Count values in roll order.
func Evaluate(expr *Expression, roller Roller) (*RollResult, error) {
	if expr == nil || len(expr.Terms) == 0 {
		return nil, errors.InvalidArgument("expression is empty")
	}
	if roller == nil {
		return nil, errors.InvalidArgument("roller is required")
	}

	results := make([]TermResult, 0, len(expr.Terms))
	for _, term := range expr.Terms {
		results = append(results, evaluateTerm(term, roller))
	}

	total, err := combine(results, expr.Ops)
	if err != nil {
		return nil, err
	}

	return &RollResult{
		Expression: expr.Text,
		Total:      total,
		Details:    renderDetails(expr, results),
		Terms:      results,
	}, nil
}

// Roll is the convenience path used by callers that hold raw notation:
// parse then evaluate in one step.
func Roll(notation string, roller Roller) (*RollResult, error) {
	expr, err := Parse(notation)
	if err != nil {
		return nil, err
	}
	return Evaluate(expr, roller)
}

func evaluateTerm(term Term, roller Roller) TermResult {
	if term.Kind == TermLiteral {
		return TermResult{Text: term.Text, Value: term.Value}
	}

	rolls := make([]int, term.Count)
	for i := range rolls {
		rolls[i] = roller.Roll(term.Sides)
	}

	kept := rolls
	if term.KeepMode != KeepAll {
		sorted := make([]int, len(rolls))
		copy(sorted, rolls)
		if term.KeepMode == KeepHighest {
			sort.Sort(sort.Reverse(sort.IntSlice(sorted)))
		} else {
			sort.Ints(sorted)
		}
		kept = sorted[:term.KeepCount]
	}

	value := 0
	for _, v := range kept {
		value += v
	}

	return TermResult{
		Text:  term.Text,
		Rolls: rolls,
		Kept:  kept,
		Value: value,
	}
}

// combine reduces term values with standard precedence: one pass
// collapsing * and /, then a left-to-right pass over + and -.
func combine(results []TermResult, ops []Operator) (int, error) {
	values := []int{results[0].Value}
	pending := []Operator{}

	for i, op := range ops {
		right := results[i+1].Value
		switch op {
		case OpMul:
			values[len(values)-1] *= right
		case OpDiv:
			if right == 0 {
				return 0, errors.FailedPrecondition("cannot divide a roll by zero").
					WithMeta("fragment", results[i+1].Text)
			}
			// Go integer division truncates toward zero
			values[len(values)-1] /= right
		default:
			values = append(values, right)
			pending = append(pending, op)
		}
	}

	total := values[0]
	for i, op := range pending {
		if op == OpAdd {
			total += values[i+1]
		} else {
			total -= values[i+1]
		}
	}
	return total, nil
}

// renderDetails formats the audit line the way the bot has always shown
// rolls: "Rolled: [4, 5] + 3", "Rolled: [1, 3, 5, 6] → Kept: [3, 5, 6]",
// or "Static value: 20" for a bare number.
func renderDetails(expr *Expression, results []TermResult) string {
	if len(results) == 1 && results[0].Rolls == nil {
		return fmt.Sprintf("Static value: %d", results[0].Value)
	}

	var b strings.Builder
	for i, res := range results {
		if i > 0 {
			b.WriteString(" " + operatorGlyph(expr.Ops[i-1]) + " ")
		}
		if res.Rolls == nil {
			b.WriteString(fmt.Sprintf("%d", res.Value))
			continue
		}
		b.WriteString("Rolled: " + formatRolls(res.Rolls))
		if len(res.Kept) != len(res.Rolls) {
			b.WriteString(" → Kept: " + formatRolls(res.Kept))
		}
	}
	return b.String()
}

func operatorGlyph(op Operator) string {
	switch op {
	case OpMul:
		return "×"
	case OpDiv:
		return "÷"
	default:
		return string(byte(op))
	}
}

func formatRolls(rolls []int) string {
	parts := make([]string, len(rolls))
	for i, r := range rolls {
		parts[i] = fmt.Sprintf("%d", r)
	}
	return "[" + strings.Join(parts, ", ") + "]"
}
