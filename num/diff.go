package num

// DiffCentral differentiates unevenly spaced x,y data by a weighted
// central difference. The returned slice holds one derivative per
// interior point, length len(x)-2.
func DiffCentral(x, y []float64) []float64 {
	if len(x) != len(y) {
		panic("num.DiffCentral: length mismatch")
	}
	if len(x) < 3 {
		panic("num.DiffCentral: need at least 3 points")
	}
	d := make([]float64, len(x)-2)
	for i := range d {
		x0, x1, x2 := x[i], x[i+1], x[i+2]
		y0, y1, y2 := y[i], y[i+1], y[i+2]
		f := (x2 - x1) / (x2 - x0)
		d[i] = (1.-f)*(y2-y1)/(x2-x1) + f*(y1-y0)/(x1-x0)
	}
	return d
}
