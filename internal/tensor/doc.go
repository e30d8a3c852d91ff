// Package tensor implements the brickwork tensor-network contraction
// that turns a measurement circuit and a target observable into a
// single Pauli weight.
//
// Tensors are flat float64 slices with explicit dimension arithmetic.
// The per-layer leg merges are hand-written loops on reusable scratch
// buffers since the contraction dominates the optimizer's wall-clock
// time; the closing matrix-chain product and trace use gonum.
package tensor
