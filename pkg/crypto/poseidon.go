package crypto

import (
	"crypto/sha256"
	"encoding/binary"
	"math/big"
)

// bn254ScalarField is the order of the scalar field of the BN254 curve (Fr),
// the field every algebraic hash H operation and circuit commitment lives
// in. It is prime and 254 bits wide.
var bn254ScalarField, _ = new(big.Int).SetString(
	"21888242871839275222246405745257275088548364400416034343698204186575808495617", 10)

// PoseidonParams holds a fully instantiated Poseidon permutation: width,
// round counts, the round-constants table, and the MDS mixing matrix. It is
// read-only process-wide configuration, built once and reused -- the core
// never regenerates constants mid-proof.
type PoseidonParams struct {
	T             int
	FullRounds    int
	PartialRounds int
	RoundConstants []*big.Int
	MDS           [][]*big.Int
	Field         *big.Int
}

var defaultPoseidonParams *PoseidonParams

// DefaultPoseidonParams returns the process-wide Poseidon instance: width 3
// (rate 2, capacity 1), 8 full rounds, 57 partial rounds, over the BN254
// scalar field. Built once and cached; every prover/verifier pair using
// these defaults shares an identical constants table.
func DefaultPoseidonParams() *PoseidonParams {
	if defaultPoseidonParams == nil {
		defaultPoseidonParams = newPoseidonParams(3, 8, 57, bn254ScalarField)
	}
	return defaultPoseidonParams
}

func newPoseidonParams(t, fullRounds, partialRounds int, field *big.Int) *PoseidonParams {
	totalRounds := fullRounds + partialRounds
	return &PoseidonParams{
		T:              t,
		FullRounds:     fullRounds,
		PartialRounds:  partialRounds,
		RoundConstants: generateRoundConstants(t, totalRounds, field),
		MDS:            generateMDS(t, field),
		Field:          field,
	}
}

// SBox raises x to the fifth power modulo field. This is the nonlinear
// layer of the Poseidon round function; x^5 is a permutation of F whenever
// gcd(5, |F|-1) = 1, which holds for the BN254 scalar field.
func SBox(x, field *big.Int) *big.Int {
	r := new(big.Int).Mod(x, field)
	sq := new(big.Int).Mul(r, r)
	sq.Mod(sq, field)
	quad := new(big.Int).Mul(sq, sq)
	quad.Mod(quad, field)
	quad.Mul(quad, r)
	quad.Mod(quad, field)
	return quad
}

// MDSMul multiplies the state vector by the MDS matrix modulo field,
// providing the linear diffusion layer of the permutation.
func MDSMul(state []*big.Int, mds [][]*big.Int, field *big.Int) []*big.Int {
	t := len(state)
	result := make([]*big.Int, t)
	for i := 0; i < t; i++ {
		acc := new(big.Int)
		for j := 0; j < t; j++ {
			term := new(big.Int).Mul(mds[i][j], state[j])
			acc.Add(acc, term)
		}
		acc.Mod(acc, field)
		result[i] = acc
	}
	return result
}

// permute runs the full Poseidon permutation over state in place semantics
// (it returns a new slice; callers discard the input). Round structure:
// FullRounds/2 full rounds, then PartialRounds partial rounds, then
// FullRounds/2 full rounds. Each round adds the round constants, applies
// the S-box (all lanes in a full round, only lane 0 in a partial round),
// then mixes with the MDS matrix.
func permute(params *PoseidonParams, state []*big.Int) []*big.Int {
	field := params.Field
	half := params.FullRounds / 2
	cur := make([]*big.Int, len(state))
	for i, v := range state {
		cur[i] = new(big.Int).Set(v)
	}

	round := 0
	applyRound := func(full bool) {
		base := round * params.T
		for i := 0; i < params.T; i++ {
			cur[i] = new(big.Int).Add(cur[i], params.RoundConstants[base+i])
			cur[i].Mod(cur[i], field)
		}
		if full {
			for i := 0; i < params.T; i++ {
				cur[i] = SBox(cur[i], field)
			}
		} else {
			cur[0] = SBox(cur[0], field)
		}
		cur = MDSMul(cur, params.MDS, field)
		round++
	}

	for i := 0; i < half; i++ {
		applyRound(true)
	}
	for i := 0; i < params.PartialRounds; i++ {
		applyRound(false)
	}
	for i := 0; i < half; i++ {
		applyRound(true)
	}
	return cur
}

// PoseidonHash hashes a variable number of field elements with a sponge
// built over params (DefaultPoseidonParams() if params is nil) and returns
// state[0] after the final permutation. The result depends on input order:
// H(a, b) != H(b, a) in general.
func PoseidonHash(params *PoseidonParams, inputs ...*big.Int) *big.Int {
	if params == nil {
		params = DefaultPoseidonParams()
	}
	rate := params.T - 1
	state := make([]*big.Int, params.T)
	for i := range state {
		state[i] = new(big.Int)
	}

	pos := 0
	for _, in := range inputs {
		reduced := new(big.Int).Mod(in, params.Field)
		state[1+pos] = new(big.Int).Add(state[1+pos], reduced)
		state[1+pos].Mod(state[1+pos], params.Field)
		pos++
		if pos == rate {
			state = permute(params, state)
			pos = 0
		}
	}
	// Final permutation even if the last block was partially filled, so the
	// empty-input and rate-aligned cases are both covered by one call.
	state = permute(params, state)
	return state[0]
}

// PoseidonSponge is a stateful absorb/squeeze wrapper over the same
// permutation PoseidonHash uses, exposing the two-phase sponge interface
// needed when callers interleave absorption with arbitrary squeeze counts.
type PoseidonSponge struct {
	params  *PoseidonParams
	state   []*big.Int
	rate    int
	absPos  int
	sqPos   int
	squeezing bool
}

// NewPoseidonSponge creates a sponge over params (or the defaults if nil),
// with capacity-1 state initialized to zero.
func NewPoseidonSponge(params *PoseidonParams) *PoseidonSponge {
	if params == nil {
		params = DefaultPoseidonParams()
	}
	state := make([]*big.Int, params.T)
	for i := range state {
		state[i] = new(big.Int)
	}
	return &PoseidonSponge{
		params: params,
		state:  state,
		rate:   params.T - 1,
	}
}

// Absorb mixes elements into the sponge's rate lanes, permuting whenever a
// rate-sized block fills.
func (s *PoseidonSponge) Absorb(elements ...*big.Int) {
	for _, e := range elements {
		reduced := new(big.Int).Mod(e, s.params.Field)
		idx := 1 + s.absPos
		s.state[idx] = new(big.Int).Add(s.state[idx], reduced)
		s.state[idx].Mod(s.state[idx], s.params.Field)
		s.absPos++
		if s.absPos == s.rate {
			s.state = permute(s.params, s.state)
			s.absPos = 0
		}
	}
	s.squeezing = false
}

// Squeeze extracts n field elements from the sponge, permuting whenever the
// rate lanes have all been read.
func (s *PoseidonSponge) Squeeze(n int) []*big.Int {
	if !s.squeezing {
		s.state = permute(s.params, s.state)
		s.sqPos = 0
		s.squeezing = true
	}
	out := make([]*big.Int, n)
	for i := 0; i < n; i++ {
		if s.sqPos == s.rate {
			s.state = permute(s.params, s.state)
			s.sqPos = 0
		}
		out[i] = new(big.Int).Set(s.state[1+s.sqPos])
		s.sqPos++
	}
	return out
}

// generateRoundConstants deterministically derives t*numRounds field
// elements by hashing an incrementing counter with SHA-256 and reducing
// each digest modulo field. Determinism (not provenance from a published
// Poseidon parameter ceremony) is what the core needs: prover and verifier
// must agree on the same table, which holding the generator fixed
// guarantees.
func generateRoundConstants(t, numRounds int, field *big.Int) []*big.Int {
	n := t * numRounds
	out := make([]*big.Int, n)
	for i := 0; i < n; i++ {
		out[i] = deriveFieldElement("darkmint/poseidon/rc", i, field)
	}
	return out
}

// generateMDS builds a Cauchy matrix M[i][j] = 1/(x_i + y_j) mod field over
// two deterministically generated, pairwise-distinct sequences x and y. A
// Cauchy matrix is guaranteed MDS (every square submatrix is invertible)
// whenever the x_i and y_j are themselves pairwise distinct.
func generateMDS(t int, field *big.Int) [][]*big.Int {
	xs := make([]*big.Int, t)
	ys := make([]*big.Int, t)
	for i := 0; i < t; i++ {
		xs[i] = deriveFieldElement("darkmint/poseidon/mds/x", i, field)
		ys[i] = deriveFieldElement("darkmint/poseidon/mds/y", i, field)
	}
	mds := make([][]*big.Int, t)
	for i := 0; i < t; i++ {
		mds[i] = make([]*big.Int, t)
		for j := 0; j < t; j++ {
			sum := new(big.Int).Add(xs[i], ys[j])
			sum.Mod(sum, field)
			inv := new(big.Int).ModInverse(sum, field)
			mds[i][j] = inv
		}
	}
	return mds
}

// deriveFieldElement hashes domain||index with SHA-256 and reduces the
// digest modulo field, giving a deterministic, reproducible field element.
func deriveFieldElement(domain string, index int, field *big.Int) *big.Int {
	h := sha256.New()
	h.Write([]byte(domain))
	var idxBuf [8]byte
	binary.BigEndian.PutUint64(idxBuf[:], uint64(index))
	h.Write(idxBuf[:])
	digest := h.Sum(nil)
	v := new(big.Int).SetBytes(digest)
	return v.Mod(v, field)
}

// BytesToField takes up to the first 32 bytes of b, right-pads with zeros
// to 32 bytes, interprets the result little-endian, and reduces modulo the
// field order. The empty input yields the zero element.
func BytesToField(b []byte) *big.Int {
	buf := make([]byte, 32)
	n := len(b)
	if n > 32 {
		n = 32
	}
	copy(buf, b[:n])
	// buf is now left-aligned with the first (up to 32) input bytes and
	// zero-padded on the right; reinterpret little-endian by reversing.
	for i, j := 0, len(buf)-1; i < j; i, j = i+1, j-1 {
		buf[i], buf[j] = buf[j], buf[i]
	}
	v := new(big.Int).SetBytes(buf)
	return v.Mod(v, bn254ScalarField)
}

// FieldToBytes serializes a field element as big-endian, left-padded to 32
// bytes.
func FieldToBytes(x *big.Int) []byte {
	out := make([]byte, 32)
	b := new(big.Int).Mod(x, bn254ScalarField).Bytes()
	copy(out[32-len(b):], b)
	return out
}

// FieldToU32 returns the four least-significant bytes of the big-endian
// serialization of x, interpreted big-endian. The truncation is
// intentional: Ethereum contracts consume a 32-bit tag, and a host-side
// public-value digest authenticates the tag, so truncation collisions are
// not a relevant attack surface here.
func FieldToU32(x *big.Int) uint32 {
	b := FieldToBytes(x)
	return binary.BigEndian.Uint32(b[28:32])
}
