// Package pauli provides the observable types consumed by the
// measurement-selection optimizer: Pauli strings over {I, X, Y, Z} and
// ordered sets of them with per-observable importance weights and hit
// targets.
package pauli
