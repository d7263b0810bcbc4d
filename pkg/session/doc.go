/*
Package session wraps one editing session of an automaton for concurrent callers.

The engine packages (automaton, simulation, brackets) are single-threaded. A Session
bundles an alphabet, a strict model, a simulation engine and a bracket validator and
serializes every edit and query behind one mutex. A Manager keys sessions by UUID so
several editors can be served from one process.
*/
package session
