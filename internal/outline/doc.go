// Package outline implements the pure document algorithms of the engine:
// assembling an ordered block list into a flat document, enforcing the
// heading hierarchy invariants, narrowing a block list to a zoomed subtree,
// computing drag-and-drop reorders with orphan promotion, parsing raw
// markdown into blocks, and maintaining the real-valued sort order keys.
//
// Every function here is a pure transformation over domain values. State
// ownership, persistence and sequencing live in internal/core/services.
package outline
