package failure

import "fmt"

// Kind names a failure category. Kinds are stable identifiers used when
// failures are stored or matched in conformance catalogs.
type Kind uint8

const (
	KindCustom Kind = iota
	KindObjKey
	KindLength
	KindRound
	KindFromJSON
	KindToNumber
	KindSort
	KindHas
	KindSplit
	KindKeys
	KindIter
	KindNeg
	KindMathOp
	KindIndex
	KindIndexWith
	KindIndexOutOfBounds
	KindIsize
	KindUsize
	KindSliceAssign

	kindCount
)

var kindNames = [kindCount]string{
	KindCustom:           "Custom",
	KindObjKey:           "ObjKey",
	KindLength:           "Length",
	KindRound:            "Round",
	KindFromJSON:         "FromJSON",
	KindToNumber:         "ToNumber",
	KindSort:             "Sort",
	KindHas:              "Has",
	KindSplit:            "Split",
	KindKeys:             "Keys",
	KindIter:             "Iter",
	KindNeg:              "Neg",
	KindMathOp:           "MathOp",
	KindIndex:            "Index",
	KindIndexWith:        "IndexWith",
	KindIndexOutOfBounds: "IndexOutOfBounds",
	KindIsize:            "Isize",
	KindUsize:            "Usize",
	KindSliceAssign:      "SliceAssign",
}

// Kinds returns every failure kind in declaration order.
func Kinds() []Kind {
	ks := make([]Kind, kindCount)
	for i := range ks {
		ks[i] = Kind(i)
	}
	return ks
}

func (k Kind) String() string {
	if k < kindCount {
		return kindNames[k]
	}
	return fmt.Sprintf("Kind(%d)", uint8(k))
}

// ParseKind looks a kind up by its name.
func ParseKind(name string) (Kind, error) {
	for i, n := range kindNames {
		if n == name {
			return Kind(i), nil
		}
	}
	return 0, fmt.Errorf("unknown failure kind %q", name)
}

func (Custom) Kind() Kind           { return KindCustom }
func (ObjKey) Kind() Kind           { return KindObjKey }
func (Length) Kind() Kind           { return KindLength }
func (Round) Kind() Kind            { return KindRound }
func (FromJSON) Kind() Kind         { return KindFromJSON }
func (ToNumber) Kind() Kind         { return KindToNumber }
func (Sort) Kind() Kind             { return KindSort }
func (Has) Kind() Kind              { return KindHas }
func (Split) Kind() Kind            { return KindSplit }
func (Keys) Kind() Kind             { return KindKeys }
func (Iter) Kind() Kind             { return KindIter }
func (Neg) Kind() Kind              { return KindNeg }
func (MathOp) Kind() Kind           { return KindMathOp }
func (Index) Kind() Kind            { return KindIndex }
func (IndexWith) Kind() Kind        { return KindIndexWith }
func (IndexOutOfBounds) Kind() Kind { return KindIndexOutOfBounds }
func (Isize) Kind() Kind            { return KindIsize }
func (Usize) Kind() Kind            { return KindUsize }
func (SliceAssign) Kind() Kind      { return KindSliceAssign }
