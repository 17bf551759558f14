package pflow

import "github.com/papadanku/papaganda/pkg/pmath"

// Solve turns an accumulated tensor into a flow correction in pixel
// units. A window whose temporal residual is small relative to its
// gradient energy keeps the flow it arrived with: the whole tensor
// gets masked to zero, and a zero tensor solves to zero. A tensor
// whose determinant is not strictly positive (flat patch, or an edge
// with gradients in only one direction) also solves to zero rather
// than amplifying noise. Finite input always gives finite output.
func (k *Kernel)Solve(st StructureTensor) pmath.Vec2 {
	// The gate is SSD/(IxIx+IyIy) > threshold, in multiplied-out form
	// so an all-flat window resolves to "masked" instead of 0/0.
	m := 0.0
	if st.SSD > k.threshold*(st.IxIx+st.IyIy) {
		m = 1.0
	}

	ixix := st.IxIx * m
	iyiy := st.IyIy * m
	ixiy := st.IxIy * m
	ixit := st.IxIt * m
	iyit := st.IyIt * m

	det := ixix*iyiy - ixiy*ixiy
	if det <= 0 {
		return pmath.Vec2{}
	}

	// Analytic 2x2 inverse, applied to the negated space-time terms
	return pmath.Vec2{
		(ixiy*iyit - iyiy*ixit) / det,
		(ixiy*ixit - ixix*iyit) / det,
	}
}
