/*
Package domain contains the core types shared by every layer of the fsmsketch engine.

It is kept pure and free of I/O. The automaton model, the simulation engine and
the bracket validator all depend on it, never the other way around.

# Key Entities

  - StateID: a stable handle for a state (slot index + generation).
  - Transition, Edge: symbol-labeled edges.
  - LifecycleHooks: synchronous callbacks for observability.
*/
package domain
