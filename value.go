package promagg

import (
	"math"
	"strconv"
)

// Value is the scalar carried by an Observation. The set of implementations is closed:
// Int, Float and String.
type Value interface {
	// String returns the value formatted the way it is written on the wire, minus quoting.
	String() string
	isValue()
}

// Int is an integer Value.
type Int int64

// Float is a floating point Value.
type Float float64

// String is a string Value.
type String string

func (Int) isValue()    {}
func (Float) isValue()  {}
func (String) isValue() {}

func (i Int) String() string {
	return strconv.FormatInt(int64(i), 10)
}

func (f Float) String() string {
	return strconv.FormatFloat(float64(f), 'g', -1, 64)
}

func (s String) String() string {
	return string(s)
}

// ParseValue converts s into the narrowest Value that represents it: an Int if it parses
// as a base 10 integer, a Float if it parses as a finite float, otherwise a String.
func ParseValue(s string) Value {
	if i, err := strconv.ParseInt(s, 10, 64); err == nil {
		return Int(i)
	}
	if f, err := strconv.ParseFloat(s, 64); err == nil && !math.IsInf(f, 0) && !math.IsNaN(f) {
		return Float(f)
	}
	return String(s)
}
