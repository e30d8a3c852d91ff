package gate

// twirl averages g over independent random single-qubit Cliffords on
// all four open legs:
//
//	tw[i,j,k,l] = sum_{a,b,c,d} T[i,a] T[j,b] T[c,k] T[d,l] g[a,b,c,d]
//
// with T the single-qubit Clifford average. The preparation-side legs
// contract T from the left, the measurement-side legs from the right.
func twirl(g []float64) []float64 {
	t := SingleAverage.Matrix()
	out := make([]float64, 256)

	for i := 0; i < 4; i++ {
		for j := 0; j < 4; j++ {
			for k := 0; k < 4; k++ {
				for l := 0; l < 4; l++ {
					var s float64
					for a := 0; a < 4; a++ {
						ta := t[i*4+a]
						if ta == 0 {
							continue
						}
						for b := 0; b < 4; b++ {
							tb := t[j*4+b]
							if tb == 0 {
								continue
							}
							for c := 0; c < 4; c++ {
								tc := t[c*4+k]
								if tc == 0 {
									continue
								}
								for d := 0; d < 4; d++ {
									td := t[d*4+l]
									if td == 0 {
										continue
									}
									s += ta * tb * tc * td * g[Idx4(a, b, c, d, 4)]
								}
							}
						}
					}
					out[Idx4(i, j, k, l, 4)] = s
				}
			}
		}
	}

	return out
}

// reduceSignature collapses the twirled tensor to the 2x2x2x2
// identity/non-identity representation. The measurement-side legs sum
// their three non-identity components into one; the preparation-side
// legs are merely sliced, since twirling already made their three
// non-identity components equal.
func reduceSignature(tw []float64) []float64 {
	sig := make([]float64, 16)
	nonIdentity := [3]int{1, 2, 3}

	for i := 0; i < 2; i++ {
		for j := 0; j < 2; j++ {
			for k := 0; k < 2; k++ {
				ks := nonIdentity[:]
				if k == 0 {
					ks = []int{0}
				}
				for l := 0; l < 2; l++ {
					ls := nonIdentity[:]
					if l == 0 {
						ls = []int{0}
					}
					var s float64
					for _, kk := range ks {
						for _, ll := range ls {
							s += tw[Idx4(i, j, kk, ll, 4)]
						}
					}
					sig[Idx4(i, j, k, l, 2)] = s
				}
			}
		}
	}

	return sig
}

var signatureTensors = [4][]float64{
	TwoQubitIdentity: reduceSignature(twirl(identityTensor())),
	TwoQubitCNOT:     reduceSignature(twirl(cnotTensor())),
	TwoQubitSwap:     reduceSignature(twirl(swapTensor())),
	TwoQubitAverage:  reduceSignature(twirl(averageTensor())),
}

// Signature returns the twirled 2x2x2x2 signature tensor of g,
// flattened with Idx4 at bond dimension 2. The slice is shared; do not
// mutate.
func (g TwoQubit) Signature() []float64 {
	return signatureTensors[g]
}
