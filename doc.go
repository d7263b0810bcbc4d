/*
Package fsmsketch edits and simulates nondeterministic finite automata.

An automaton is built one edit at a time: add states, draw labeled transitions,
mark the initial state and the accepting states. Words are decided by subset
simulation, so several transitions may leave a state on the same symbol. A
separate validator checks that an expression only uses alphabet symbols, the
operators + and *, and balanced brackets.

# Packages

  - pkg/alphabet generates the ordered symbol set.
  - pkg/automaton owns states, transitions and acceptance marks.
  - pkg/simulation decides words and records traces.
  - pkg/brackets validates expressions.
  - pkg/session serializes all of the above for concurrent callers.

# Usage

	s, err := fsmsketch.New(2)
	if err != nil {
		log.Fatal(err)
	}
	start, _ := s.AddState("start")
	end, _ := s.AddState("end")
	_ = s.SetFinalState(end)
	_ = s.AddTransition(start, start, 'a')
	_ = s.AddTransition(start, start, 'b')
	_ = s.AddTransition(start, end, 'a')

	fmt.Println(s.Test(ctx, "bba")) // accept
*/
package fsmsketch
