package variables

import "strconv"

// Value is the closed set of result kinds a Variable can produce.
type Value interface {
	bool | Integer | Numeric
}

// Integer is a nullable int.
type Integer struct {
	value   int
	present bool
}

// IntegerOf returns a present Integer.
func IntegerOf(v int) Integer {
	return Integer{value: v, present: true}
}

// NoInteger returns the absent Integer.
func NoInteger() Integer {
	return Integer{}
}

// Value returns the int and whether it is present.
func (i Integer) Value() (int, bool) {
	return i.value, i.present
}

// Present reports whether the Integer holds a value.
func (i Integer) Present() bool {
	return i.present
}

func (i Integer) String() string {
	if !i.present {
		return "none"
	}

	return strconv.Itoa(i.value)
}

// Numeric is a nullable float64.
type Numeric struct {
	value   float64
	present bool
}

// NumericOf returns a present Numeric.
func NumericOf(v float64) Numeric {
	return Numeric{value: v, present: true}
}

// NoNumeric returns the absent Numeric.
func NoNumeric() Numeric {
	return Numeric{}
}

// Value returns the float64 and whether it is present.
func (n Numeric) Value() (float64, bool) {
	return n.value, n.present
}

// Present reports whether the Numeric holds a value.
func (n Numeric) Present() bool {
	return n.present
}

// Truthy is the boolean reading of a Numeric: present and non-zero.
func (n Numeric) Truthy() bool {
	return n.present && n.value != 0
}

func (n Numeric) String() string {
	if !n.present {
		return "none"
	}

	return strconv.FormatFloat(n.value, 'g', -1, 64)
}
