package dice

// Operator is one of the four supported arithmetic operators
type Operator byte

// Operators
const (
	OpAdd Operator = '+'
	OpSub Operator = '-'
	OpMul Operator = '*'
	OpDiv Operator = '/'
)

// KeepMode selects which rolls of a dice group count toward its value
type KeepMode int

// Keep modes
const (
	KeepAll KeepMode = iota
	KeepHighest
	KeepLowest
)

// TermKind distinguishes dice groups from literal modifiers
type TermKind int

// Term kinds
const (
	TermDice TermKind = iota
	TermLiteral
)

// Term is a single parsed term: either a dice group like "4d6kh3" or a
// literal integer modifier.
type Term struct {
	Kind TermKind

	// Dice group fields (Kind == TermDice)
	Count     int
	Sides     int
	KeepMode  KeepMode
	KeepCount int

	// Literal value (Kind == TermLiteral)
	Value int

	// Text is the source fragment this term was parsed from
	Text string
}

// Expression is a parsed dice expression: Terms joined left to right by
// Ops, with standard precedence applied at evaluation time. There is
// always exactly one more term than operator.
type Expression struct {
	// Text is the normalized input (trimmed, lowercased, no spaces)
	Text  string
	Terms []Term
	Ops   []Operator
}

// TermResult is the provenance recorded for one evaluated term
type TermResult struct {
	// Text is the term's source fragment
	Text string

	// Rolls holds every raw die value in roll order; nil for literals
	Rolls []int

	// Kept holds the rolls that counted toward the value, equal to
	// Rolls when no keep rule applied; nil for literals
	Kept []int

	// Value is the term's contribution before arithmetic combination
	Value int
}

// RollResult is the immutable outcome of evaluating an expression
type RollResult struct {
	// Expression is the normalized notation that was rolled
	Expression string

	// Total is the fully reduced integer result
	Total int

	// Details is a human-readable audit line, e.g. "Rolled: [4, 5] + 3"
	Details string

	// Terms holds per-term provenance, never empty
	Terms []TermResult
}
