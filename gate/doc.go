// Package gate provides the fixed catalogue of gate tensors used by the
// measurement-circuit weight calculations.
//
// All tensors act on Pauli transfer ("Pauli basis") vectors rather than
// state vectors: a two-qubit gate is a 4x4x4x4 tensor over the basis
// {I, X, Y, Z} x {I, X, Y, Z}, and a single-qubit gate is a 4x4 matrix
// over {I, X, Y, Z}. Tensors are precomputed once and shared; callers
// must treat the returned slices as read-only.
//
// The package also derives, once, the signature-reduced representation
// of each two-qubit gate under random single-qubit twirling: the
// 4-valued Pauli index collapses to a 2-valued identity/non-identity
// index, which is what the coarse structure-only weight calculation
// contracts with.
package gate
