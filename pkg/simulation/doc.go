/*
Package simulation decides whether an automaton accepts a word.

It runs the automaton by subset simulation: the set of active states starts as
{initial} and every symbol replaces it with the union of the destinations of all
matching transitions. There are no epsilon moves, so no closure is computed. The
word is rejected as soon as the set becomes empty, and accepted when the set left
after the last symbol contains a final state.

Words with symbols outside the alphabet are rejected, never reported as errors.
*/
package simulation
