package expr

// Number holds either an int64 or a float64 lane, promoting to float only
// when an operand requires it — the same promotion rule teacher's
// util/data.Doc.Inc/Dec apply when incrementing stored document fields.
type Number struct {
	isFloat bool
	i       int64
	f       float64
}

func IntNum(i int64) Number { return Number{i: i} }

func FloatNum(f float64) Number { return Number{isFloat: true, f: f} }

func (n Number) IsFloat() bool { return n.isFloat }

func (n Number) Int() int64 {
	if n.isFloat {
		return int64(n.f)
	}
	return n.i
}

func (n Number) Float() float64 {
	if n.isFloat {
		return n.f
	}
	return float64(n.i)
}

func (n Number) Equal(o Number) bool {
	if n.isFloat || o.isFloat {
		return n.Float() == o.Float()
	}
	return n.i == o.i
}

// Add returns n+o, promoting to float if either operand is a float.
func (n Number) Add(o Number) Number {
	if n.isFloat || o.isFloat {
		return FloatNum(n.Float() + o.Float())
	}
	return IntNum(n.i + o.i)
}

// Sub returns n-o, promoting to float if either operand is a float.
func (n Number) Sub(o Number) Number {
	if n.isFloat || o.isFloat {
		return FloatNum(n.Float() - o.Float())
	}
	return IntNum(n.i - o.i)
}

func (n Number) Less(o Number) bool {
	if n.isFloat || o.isFloat {
		return n.Float() < o.Float()
	}
	return n.i < o.i
}
