package variables

import "fmt"

// Kind is the orientation of a variable.
type Kind int

const (
	// Autoscale variables keep their direction: the smallest raw value
	// normalizes to 0, the closest to the ideal point.
	Autoscale Kind = iota
	// InvertedAutoscale variables are reflected: the largest raw value
	// normalizes to 0.
	InvertedAutoscale
)

func (k Kind) String() string {
	switch k {
	case Autoscale:
		return "autoscale"
	case InvertedAutoscale:
		return "inverted_autoscale"
	default:
		return fmt.Sprintf("kind(%d)", int(k))
	}
}

// MarshalText renders the kind by name in JSON payloads.
func (k Kind) MarshalText() ([]byte, error) {
	return []byte(k.String()), nil
}

func (k *Kind) UnmarshalText(text []byte) error {
	switch string(text) {
	case "autoscale":
		*k = Autoscale
	case "inverted_autoscale":
		*k = InvertedAutoscale
	default:
		return fmt.Errorf("unknown variable kind %q", text)
	}
	return nil
}

// Variable binds a criterion name to its raw observations.
type Variable struct {
	name   Name
	values Values
	kind   Kind
}

// NewAutoscale creates a direct variable.
func NewAutoscale(name Name, values Values) Variable {
	return Variable{name: name, values: values, kind: Autoscale}
}

// NewInvertedAutoscale creates a variable whose normalization is reflected.
func NewInvertedAutoscale(name Name, values Values) Variable {
	return Variable{name: name, values: values, kind: InvertedAutoscale}
}

func (v Variable) Name() Name        { return v.name }
func (v Variable) RawValues() Values { return v.values }
func (v Variable) Kind() Kind        { return v.kind }
func (v Variable) Len() int          { return v.values.Len() }

// Rescale returns the normalized observations, same length as the raw ones.
func (v Variable) Rescale() Values {
	return Values{data: AutorescaleVector(v.values.data, v.kind == InvertedAutoscale)}
}
