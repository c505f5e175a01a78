package value

// Type identifies the unit category of a Value. Types are compared by
// identity: two values are compatible only when their types are the same
// instance. Scalar categories are package-level singletons; enum and flag
// types are created per declaration with NewEnumType and NewFlagType.
type Type interface {
	// Name reports the human-readable type name used in diagnostics.
	Name() string
}

type scalarType struct {
	name string
}

func (t *scalarType) Name() string { return t.name }

func (t *scalarType) String() string { return t.name }

// Scalar type singletons.
//
//nolint:gochecknoglobals
var (
	TypeNumber  Type = &scalarType{"Number"}
	TypePercent Type = &scalarType{"Percentage"}
	TypeAngle   Type = &scalarType{"Angle"}
	TypeTime    Type = &scalarType{"Time"}
	TypeString  Type = &scalarType{"String"}
	TypeVec4    Type = &scalarType{"Vec4"}
	TypeElement Type = &scalarType{"Element"}
)

// Op is a unary or binary operator symbol as written in source.
type Op string

// Operator symbols. Mod has no operator form; it is the builtin mod().
const (
	OpAdd Op = "+"
	OpSub Op = "-"
	OpMul Op = "*"
	OpDiv Op = "/"
	OpOr  Op = "|"
	OpPos Op = "+"
	OpNeg Op = "-"
)

// unitType reports whether t is a magnitude-with-unit category, which
// scales under multiplication and division by a plain number.
func unitType(t Type) bool {
	return t == TypePercent || t == TypeAngle || t == TypeTime
}

// binaryType resolves the static result type of lhs op rhs, or fails when
// the combination is not in the unit matrix.
func binaryType(op Op, lhs, rhs Type) (Type, error) {
	// String concatenation stringifies the other operand, whatever it is.
	if op == OpAdd && (lhs == TypeString || rhs == TypeString) {
		return TypeString, nil
	}

	switch op {
	case OpAdd, OpSub:
		switch {
		case lhs == TypeNumber && rhs == TypeNumber:
			return TypeNumber, nil
		case unitType(lhs) && rhs == lhs:
			return lhs, nil
		case lhs == TypeVec4 && (rhs == TypeVec4 || rhs == TypeNumber):
			return TypeVec4, nil
		case rhs == TypeVec4 && lhs == TypeNumber:
			return TypeVec4, nil
		}

	case OpMul, OpDiv:
		switch {
		case lhs == TypeNumber && rhs == TypeNumber:
			return TypeNumber, nil
		case unitType(lhs) && rhs == TypeNumber:
			return lhs, nil
		case unitType(rhs) && lhs == TypeNumber && op == OpMul:
			return rhs, nil
		case lhs == TypeVec4 && (rhs == TypeVec4 || rhs == TypeNumber):
			return TypeVec4, nil
		case rhs == TypeVec4 && lhs == TypeNumber:
			return TypeVec4, nil
		}

	case OpOr:
		if ft, ok := lhs.(*FlagType); ok && rhs == ft {
			return ft, nil
		}
	}

	return nil, NewErrorf("Incompatible operand types %s and %s for %q", lhs.Name(), rhs.Name(), string(op))
}

// unaryType resolves the static result type of op operand. Negation and
// identity preserve the operand's unit.
func unaryType(op Op, operand Type) (Type, error) {
	switch op {
	case OpNeg, OpPos:
		switch operand {
		case TypeNumber, TypePercent, TypeAngle, TypeTime, TypeVec4:
			return operand, nil
		}
	}

	return nil, NewErrorf("Incompatible operand type %s for unary %q", operand.Name(), string(op))
}
