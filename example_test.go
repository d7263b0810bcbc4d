package fsmsketch_test

import (
	"context"
	"fmt"
	"log"

	"github.com/aretw0/fsmsketch"
)

// ExampleNew builds an automaton for words over {a,b} that end in "a".
func ExampleNew() {
	ctx := context.Background()
	s, err := fsmsketch.New(2)
	if err != nil {
		log.Fatal(err)
	}

	start, _ := s.AddState("start")
	end, _ := s.AddState("end")
	if err := s.SetFinalState(end); err != nil {
		log.Fatal(err)
	}
	for _, sym := range s.Alphabet() {
		_ = s.AddTransition(start, start, sym)
	}
	_ = s.AddTransition(start, end, 'a')

	for _, w := range []string{"", "a", "ab", "bba", "abc"} {
		fmt.Printf("%q: %s\n", w, s.Test(ctx, w))
	}
	// Output:
	// "": reject
	// "a": accept
	// "ab": reject
	// "bba": accept
	// "abc": invalid
}

// ExampleNew_expression checks bracket balance.
func ExampleNew_expression() {
	ctx := context.Background()
	s, err := fsmsketch.New(2)
	if err != nil {
		log.Fatal(err)
	}

	fmt.Println(s.CheckExpression(ctx, "[(a+b)*a]"))
	fmt.Println(s.CheckExpression(ctx, "(a+b]"))
	fmt.Println(s.CheckExpression(ctx, "{a"))
	// Output:
	// <nil>
	// mismatched bracket: ']' at position 4
	// unclosed bracket: '{' at position 0
}

// ExampleWithStrictSymbols lets transitions use symbols outside the alphabet.
// Words containing them are still invalid.
func ExampleWithStrictSymbols() {
	s, err := fsmsketch.New(1, fsmsketch.WithStrictSymbols(false))
	if err != nil {
		log.Fatal(err)
	}
	q, _ := s.AddState("")
	fmt.Println(s.AddTransition(q, q, 'z'))
	fmt.Println(s.Test(context.Background(), "z"))
	// Output:
	// <nil>
	// invalid
}
