package dataset

import "fmt"

// Kind is the type a column is coerced to.
type Kind int

const (
	Text Kind = iota
	Numeric
	Integer
	Date
)

var kindNames = [...]string{
	Text:    "Text",
	Numeric: "Numeric",
	Integer: "Integer",
	Date:    "Date",
}

// Kinds lists every kind in selection order.
func Kinds() []Kind {
	return []Kind{Text, Numeric, Integer, Date}
}

func (k Kind) String() string {
	if k < 0 || int(k) >= len(kindNames) {
		return fmt.Sprintf("Kind(%d)", int(k))
	}
	return kindNames[k]
}

// Orderable reports whether greater/less comparisons are defined.
func (k Kind) Orderable() bool {
	return k == Numeric || k == Integer || k == Date
}

// IsNumber reports whether cells of this kind hold a number.
func (k Kind) IsNumber() bool {
	return k == Numeric || k == Integer
}

// ParseKind maps a kind label to its Kind.
func ParseKind(s string) (Kind, error) {
	for i, name := range kindNames {
		if name == s {
			return Kind(i), nil
		}
	}
	return Text, fmt.Errorf("unknown column kind %q", s)
}

func (k Kind) MarshalText() ([]byte, error) {
	return []byte(k.String()), nil
}

func (k *Kind) UnmarshalText(b []byte) error {
	parsed, err := ParseKind(string(b))
	if err != nil {
		return err
	}
	*k = parsed
	return nil
}
