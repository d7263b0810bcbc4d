// Package brackets gates candidate regular-expression text by checking bracket
// balance and symbol membership.
//
// It is not a regular-expression parser: operator arity and placement are never
// checked, so strings such as "**" or "(+)" pass.
package brackets

import (
	"context"
	"fmt"
	"slices"
	"time"

	"github.com/aretw0/fsmsketch/pkg/domain"
)

// Family identifies a pair of bracket characters.
type Family int

const (
	Paren  Family = 1 // ( )
	Square Family = 2 // [ ]
	Curly  Family = 3 // { }
)

var (
	openers = map[rune]Family{'(': Paren, '[': Square, '{': Curly}
	closers = map[rune]Family{')': Paren, ']': Square, '}': Curly}
)

// Operators are the non-bracket symbols accepted besides the alphabet.
var Operators = []rune{'+', '*'}

// Membership is the alphabet side of the validator.
type Membership interface {
	IsMember(symbol rune) bool
}

// SyntaxError locates a failed check. Err is one of domain.ErrMismatchedBracket,
// domain.ErrUnclosedBracket or domain.ErrUnexpectedSymbol.
type SyntaxError struct {
	Pos    int
	Symbol rune
	Err    error
}

func (e *SyntaxError) Error() string {
	return fmt.Sprintf("%v: %q at position %d", e.Err, e.Symbol, e.Pos)
}

func (e *SyntaxError) Unwrap() error { return e.Err }

// Validator checks expressions over one alphabet.
type Validator struct {
	alphabet Membership
	hooks    domain.LifecycleHooks
}

// Option configures a Validator.
type Option func(*Validator)

// WithLifecycleHooks registers observability hooks.
func WithLifecycleHooks(hooks domain.LifecycleHooks) Option {
	return func(v *Validator) {
		v.hooks = hooks
	}
}

// New creates a validator over alphabet.
func New(alphabet Membership, opts ...Option) *Validator {
	v := &Validator{alphabet: alphabet}
	for _, opt := range opts {
		opt(v)
	}
	return v
}

type opener struct {
	family Family
	pos    int
	symbol rune
}

func (v *Validator) passThrough(symbol rune) bool {
	return slices.Contains(Operators, symbol) || v.alphabet.IsMember(symbol)
}

// Check scans expr left to right and returns nil when every bracket is closed by
// its own family and every other symbol is an alphabet member or an operator.
// Failures are *SyntaxError.
func (v *Validator) Check(ctx context.Context, expr []rune) error {
	err := v.check(expr)
	if v.hooks.OnExpressionCheck != nil {
		v.hooks.OnExpressionCheck(ctx, &domain.ExpressionEvent{
			EventBase: domain.EventBase{Timestamp: time.Now(), Type: domain.EventExpressionCheck},
			Length:    len(expr),
			Valid:     err == nil,
			Err:       err,
		})
	}
	return err
}

func (v *Validator) check(expr []rune) error {
	var stack []opener

	for pos, symbol := range expr {
		if v.passThrough(symbol) {
			continue
		}
		if family, ok := openers[symbol]; ok {
			stack = append(stack, opener{family: family, pos: pos, symbol: symbol})
			continue
		}
		family, ok := closers[symbol]
		if !ok {
			return &SyntaxError{Pos: pos, Symbol: symbol, Err: domain.ErrUnexpectedSymbol}
		}
		if len(stack) == 0 {
			return &SyntaxError{Pos: pos, Symbol: symbol, Err: domain.ErrMismatchedBracket}
		}
		top := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		if top.family != family {
			return &SyntaxError{Pos: pos, Symbol: symbol, Err: domain.ErrMismatchedBracket}
		}
	}

	if n := len(stack); n > 0 {
		top := stack[n-1]
		return &SyntaxError{Pos: top.pos, Symbol: top.symbol, Err: domain.ErrUnclosedBracket}
	}
	return nil
}

// Validate reports whether Check passes.
func (v *Validator) Validate(ctx context.Context, expr []rune) bool {
	return v.Check(ctx, expr) == nil
}
