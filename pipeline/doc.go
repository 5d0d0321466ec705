// Package pipeline wires the solver end to end: grid → transition graph →
// minimax, driven by a JSON-serializable Config, producing a Report.
package pipeline
