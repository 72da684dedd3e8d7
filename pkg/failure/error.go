package failure

import "errors"

// Error is a Failure that also satisfies Go's error interface, so it can be
// returned, wrapped and reported like any other error. Every category
// implements it; the Failure interface itself stays free of that coupling.
type Error interface {
	Failure
	error
}

var (
	_ Error = Custom{}
	_ Error = ObjKey{}
	_ Error = Length{}
	_ Error = Round{}
	_ Error = FromJSON{}
	_ Error = ToNumber{}
	_ Error = Sort{}
	_ Error = Has{}
	_ Error = Split{}
	_ Error = Keys{}
	_ Error = Iter{}
	_ Error = Neg{}
	_ Error = MathOp{}
	_ Error = Index{}
	_ Error = IndexWith{}
	_ Error = IndexOutOfBounds{}
	_ Error = Isize{}
	_ Error = Usize{}
	_ Error = SliceAssign{}
)

// As finds the first Failure in err's chain.
func As(err error) (Failure, bool) {
	var f Failure
	if errors.As(err, &f) {
		return f, true
	}
	return nil, false
}

func (f Custom) Error() string           { return f.String() }
func (f ObjKey) Error() string           { return f.String() }
func (f Length) Error() string           { return f.String() }
func (f Round) Error() string            { return f.String() }
func (f FromJSON) Error() string         { return f.String() }
func (f ToNumber) Error() string         { return f.String() }
func (f Sort) Error() string             { return f.String() }
func (f Has) Error() string              { return f.String() }
func (f Split) Error() string            { return f.String() }
func (f Keys) Error() string             { return f.String() }
func (f Iter) Error() string             { return f.String() }
func (f Neg) Error() string              { return f.String() }
func (f MathOp) Error() string           { return f.String() }
func (f Index) Error() string            { return f.String() }
func (f IndexWith) Error() string        { return f.String() }
func (f IndexOutOfBounds) Error() string { return f.String() }
func (f Isize) Error() string            { return f.String() }
func (f Usize) Error() string            { return f.String() }
func (f SliceAssign) Error() string      { return f.String() }
