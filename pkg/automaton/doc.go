/*
Package automaton holds the in-memory model of a finite-state machine: its states,
its symbol-labeled transitions, its initial state and its set of final states.

States are addressed by stable handles (domain.StateID). A handle stays valid until
its own state is removed; removing one state never renumbers another. Transitions
are stored per source state in insertion order and are never deduplicated, so the
model can describe nondeterministic machines with several destinations per symbol.

The model performs no simulation; see package simulation.
*/
package automaton
