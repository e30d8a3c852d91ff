package gate

// Bond dimensions of the two tensor encodings: Full tracks the four
// Pauli components per site, Signature only identity vs non-identity.
const (
	BondFull      = 4
	BondSignature = 2
)

// TwoQubit identifies a two-qubit gate in the catalogue.
type TwoQubit uint8

const (
	// TwoQubitIdentity leaves both Pauli components untouched.
	TwoQubitIdentity TwoQubit = iota

	// TwoQubitCNOT is the CNOT transfer tensor.
	TwoQubitCNOT

	// TwoQubitSwap exchanges the two Pauli components.
	TwoQubitSwap

	// TwoQubitAverage is a random two-qubit Clifford averaged over the
	// full group. It stands in for gate slots that have not been fixed
	// yet and is never a committable choice of the optimizer.
	TwoQubitAverage
)

func (g TwoQubit) String() string {
	switch g {
	case TwoQubitIdentity:
		return "identity"
	case TwoQubitCNOT:
		return "cnot"
	case TwoQubitSwap:
		return "swap"
	case TwoQubitAverage:
		return "average"
	default:
		return "unknown"
	}
}

// SingleQubit identifies a single-qubit gate in the catalogue. The six
// fixed gates are the permutations of {X, Y, Z} realizable by
// single-qubit Cliffords; SingleAverage is the Haar/random average.
type SingleQubit uint8

const (
	// SingleAverage is a random single-qubit Clifford averaged over the
	// group, used for rotation slots that remain undetermined.
	SingleAverage SingleQubit = iota

	// SingleIdentity fixes every Pauli component.
	SingleIdentity

	// SingleSwapYZ exchanges Y and Z.
	SingleSwapYZ

	// SingleSwapXY exchanges X and Y.
	SingleSwapXY

	// SingleCycleXYZ maps X->Y->Z->X.
	SingleCycleXYZ

	// SingleCycleXZY maps X->Z->Y->X.
	SingleCycleXZY

	// SingleHadamard exchanges X and Z.
	SingleHadamard
)

func (r SingleQubit) String() string {
	switch r {
	case SingleAverage:
		return "average"
	case SingleIdentity:
		return "identity"
	case SingleSwapYZ:
		return "swap-yz"
	case SingleSwapXY:
		return "swap-xy"
	case SingleCycleXYZ:
		return "cycle-xyz"
	case SingleCycleXZY:
		return "cycle-xzy"
	case SingleHadamard:
		return "hadamard"
	default:
		return "unknown"
	}
}

// Idx4 flattens the index (i,j,k,l) of a rank-4 tensor with uniform
// bond dimension b. The (i,j) legs face the state preparation, (k,l)
// the measurement.
func Idx4(i, j, k, l, b int) int {
	return ((i*b+j)*b+k)*b + l
}

// cnotPerm[r] is the column of the single 1 in row r of the CNOT
// transfer matrix over the two-qubit Pauli basis ordered
// II, IX, IY, IZ, XI, XX, ..., ZZ.
var cnotPerm = [16]int{0, 1, 14, 15, 5, 4, 11, 10, 9, 8, 7, 6, 12, 13, 2, 3}

func identityTensor() []float64 {
	t := make([]float64, 256)
	for i := 0; i < 4; i++ {
		for j := 0; j < 4; j++ {
			t[Idx4(i, j, i, j, 4)] = 1
		}
	}
	return t
}

func swapTensor() []float64 {
	t := make([]float64, 256)
	for i := 0; i < 4; i++ {
		for j := 0; j < 4; j++ {
			t[Idx4(i, j, j, i, 4)] = 1
		}
	}
	return t
}

func cnotTensor() []float64 {
	t := make([]float64, 256)
	for r, c := range cnotPerm {
		t[Idx4(r/4, r%4, c/4, c%4, 4)] = 1
	}
	return t
}

// averageTensor is the two-qubit Clifford group average: the identity
// component passes through untouched, every non-identity input spreads
// uniformly over the 15 non-identity outputs.
func averageTensor() []float64 {
	t := make([]float64, 256)
	for i := 0; i < 4; i++ {
		for j := 0; j < 4; j++ {
			for k := 0; k < 4; k++ {
				for l := 0; l < 4; l++ {
					switch {
					case i == 0 && j == 0:
						if k == 0 && l == 0 {
							t[Idx4(i, j, k, l, 4)] = 1
						}
					case k != 0 || l != 0:
						t[Idx4(i, j, k, l, 4)] = 1.0 / 15.0
					}
				}
			}
		}
	}
	return t
}

// permMatrix builds a 4x4 matrix with a 1 at (r, perm[r]) per row.
func permMatrix(perm [4]int) []float64 {
	m := make([]float64, 16)
	for r, c := range perm {
		m[r*4+c] = 1
	}
	return m
}

func averageMatrix() []float64 {
	m := []float64{
		1, 0, 0, 0,
		0, 1, 1, 1,
		0, 1, 1, 1,
		0, 1, 1, 1,
	}
	for i, v := range m {
		if i >= 4 {
			m[i] = v / 3
		}
	}
	return m
}

var twoQubitTensors = [4][]float64{
	TwoQubitIdentity: identityTensor(),
	TwoQubitCNOT:     cnotTensor(),
	TwoQubitSwap:     swapTensor(),
	TwoQubitAverage:  averageTensor(),
}

var singleQubitMatrices = [7][]float64{
	SingleAverage:  averageMatrix(),
	SingleIdentity: permMatrix([4]int{0, 1, 2, 3}),
	SingleSwapYZ:   permMatrix([4]int{0, 1, 3, 2}),
	SingleSwapXY:   permMatrix([4]int{0, 2, 1, 3}),
	SingleCycleXYZ: permMatrix([4]int{0, 3, 1, 2}),
	SingleCycleXZY: permMatrix([4]int{0, 2, 3, 1}),
	SingleHadamard: permMatrix([4]int{0, 3, 2, 1}),
}

// Tensor returns the 4x4x4x4 transfer tensor of g, flattened with Idx4
// at bond dimension 4. The slice is shared; do not mutate.
func (g TwoQubit) Tensor() []float64 {
	return twoQubitTensors[g]
}

// Matrix returns the 4x4 row-major transfer matrix of r. The slice is
// shared; do not mutate.
func (r SingleQubit) Matrix() []float64 {
	return singleQubitMatrices[r]
}
