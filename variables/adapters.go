package variables

// valueKind orders the closed set of value kinds from narrowest to widest.
type valueKind int

const (
	kindBoolean valueKind = iota
	kindInteger
	kindNumeric
)

func kindOf[T Value]() valueKind {
	var zero T
	switch any(zero).(type) {
	case bool:
		return kindBoolean
	case Integer:
		return kindInteger
	default:
		return kindNumeric
	}
}

// adapter is implemented by every type-adapter variable.
type adapter interface {
	Unwrap() any
	widening() bool
}

// adapted translates the value domain of a wrapped variable without adding computation.
type adapted[From, To Value] struct {
	wrapped Variable[From]
	convert func(From) To
}

func (a *adapted[From, To]) ValueAt(entityValues EntityValues) func(ResponseEntity) To {
	evaluate := a.wrapped.ValueAt(entityValues)
	convert := a.convert

	return func(response ResponseEntity) To {
		return convert(evaluate(response))
	}
}

func (a *adapted[From, To]) MembersAt(predicate func(To) bool) func(ResponseEntity) []int {
	convert := a.convert

	return a.wrapped.MembersAt(func(v From) bool {
		return predicate(convert(v))
	})
}

func (a *adapted[From, To]) FieldDependencies() []FieldDescriptor {
	return a.wrapped.FieldDependencies()
}

func (a *adapted[From, To]) IntroducedEntityTypes() []EntityType {
	return a.wrapped.IntroducedEntityTypes()
}

// Unwrap returns the wrapped variable.
func (a *adapted[From, To]) Unwrap() any {
	return a.wrapped
}

// widening adapters convert losslessly, so converting back just means unwrapping.
func (a *adapted[From, To]) widening() bool {
	return kindOf[From]() < kindOf[To]()
}

// AsBoolean adapts v to a boolean variable: a value is true when present and non-zero.
func AsBoolean[From Value](v Variable[From]) Variable[bool] {
	return adapt[From, bool](v)
}

// AsInteger adapts v to an Integer variable. Numeric values are truncated, true becomes 1 and false no value.
func AsInteger[From Value](v Variable[From]) Variable[Integer] {
	return adapt[From, Integer](v)
}

// AsNumeric adapts v to a Numeric variable. true becomes 1 and false no value.
func AsNumeric[From Value](v Variable[From]) Variable[Numeric] {
	return adapt[From, Numeric](v)
}

// Underlying strips all adapters and returns the variable doing the actual computation.
func Underlying(v any) any {
	for {
		a, ok := v.(adapter)
		if !ok {
			return v
		}
		v = a.Unwrap()
	}
}

func adapt[From, To Value](v Variable[From]) Variable[To] {
	if same, ok := any(v).(Variable[To]); ok {
		return same
	}

	if a, ok := any(v).(adapter); ok && a.widening() {
		if original, ok := a.Unwrap().(Variable[To]); ok {
			return original
		}
	}

	return &adapted[From, To]{wrapped: v, convert: converter[From, To]()}
}

func converter[From, To Value]() func(From) To {
	var convert any

	switch kindOf[From]() {
	case kindBoolean:
		switch kindOf[To]() {
		case kindInteger:
			convert = func(v bool) Integer {
				if v {
					return IntegerOf(1)
				}
				return NoInteger()
			}
		case kindNumeric:
			convert = func(v bool) Numeric {
				if v {
					return NumericOf(1)
				}
				return NoNumeric()
			}
		}
	case kindInteger:
		switch kindOf[To]() {
		case kindBoolean:
			convert = func(v Integer) bool {
				i, ok := v.Value()
				return ok && i != 0
			}
		case kindNumeric:
			convert = func(v Integer) Numeric {
				if i, ok := v.Value(); ok {
					return NumericOf(float64(i))
				}
				return NoNumeric()
			}
		}
	case kindNumeric:
		switch kindOf[To]() {
		case kindBoolean:
			convert = Numeric.Truthy
		case kindInteger:
			convert = func(v Numeric) Integer {
				if f, ok := v.Value(); ok {
					return IntegerOf(int(f))
				}
				return NoInteger()
			}
		}
	}

	return convert.(func(From) To)
}
