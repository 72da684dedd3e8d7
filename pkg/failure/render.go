package failure

import (
	"fmt"
	"strconv"
)

func (f Custom) String() string { return f.Reason }

func (f ObjKey) String() string {
	return fmt.Sprintf("cannot use %s as object key", f.Value)
}

func (f Length) String() string {
	return fmt.Sprintf("%s has no length", f.Value)
}

func (f Round) String() string {
	return fmt.Sprintf("cannot round %s", f.Value)
}

func (f FromJSON) String() string {
	if !f.HasDetail {
		return fmt.Sprintf("cannot parse %s as JSON", f.Value)
	}
	return fmt.Sprintf("cannot parse %s as JSON: %s", f.Value, f.Detail)
}

func (f ToNumber) String() string {
	return fmt.Sprintf("cannot parse %s as number", f.Value)
}

func (f Sort) String() string {
	return fmt.Sprintf("cannot sort %s, as it is not an array", f.Value)
}

func (f Has) String() string {
	return fmt.Sprintf("cannot check whether %s has key %s", f.Value, f.Key)
}

func (Split) String() string {
	return "split input and separator must be strings"
}

func (f Keys) String() string {
	return fmt.Sprintf("%s has no keys", f.Value)
}

func (f Iter) String() string {
	return fmt.Sprintf("cannot iterate over %s", f.Value)
}

func (f Neg) String() string {
	return fmt.Sprintf("cannot negate %s", f.Value)
}

func (f MathOp) String() string {
	return fmt.Sprintf("%s and %s cannot be %s", f.Left, f.Right, f.Op.Passive())
}

func (f Index) String() string {
	return fmt.Sprintf("cannot index %s", f.Value)
}

func (f IndexWith) String() string {
	return fmt.Sprintf("cannot index %s with %s", f.Value, f.Index)
}

func (f IndexOutOfBounds) String() string {
	sign := ""
	if !f.NonNegative {
		sign = "-"
	}
	return "index " + sign + strconv.FormatUint(uint64(f.Magnitude), 10) + " is out of bounds"
}

func (f Isize) String() string {
	return fmt.Sprintf("cannot use %s as (signed) integer", f.Value)
}

func (f Usize) String() string {
	return fmt.Sprintf("cannot use %s as unsigned integer", f.Value)
}

func (f SliceAssign) String() string {
	return fmt.Sprintf("cannot assign non-array (%s) to an array slice", f.Value)
}
