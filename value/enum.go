package value

import (
	"iter"
	"strings"
)

// MemberSpec declares one named member of an enum or flag type. A name
// whose value repeats an earlier member declares an alias: looking the
// alias up yields the earlier, canonical member.
type MemberSpec struct {
	Name  string
	Value int
}

// EnumType is a distinct value category with a closed set of named
// ordinals. Members of different enum types are never compatible.
type EnumType struct {
	name    string
	names   []string
	members map[string]EnumMember
}

// NewEnumType declares an enum type from its member specs, in declaration
// order.
func NewEnumType(name string, members ...MemberSpec) *EnumType {
	t := &EnumType{
		name:    name,
		members: make(map[string]EnumMember, len(members)),
	}

	canonical := make(map[int]string, len(members))

	for _, m := range members {
		t.names = append(t.names, m.Name)

		member := EnumMember{typ: t, name: m.Name, ord: m.Value}
		if first, ok := canonical[m.Value]; ok {
			member.name = first
		} else {
			canonical[m.Value] = m.Name
		}

		t.members[m.Name] = member
	}

	return t
}

// Name reports the enum type name used in diagnostics.
func (t *EnumType) Name() string { return t.name }

// Names iterates over the declared member names, aliases included.
func (t *EnumType) Names() iter.Seq[string] {
	return func(yield func(string) bool) {
		for _, n := range t.names {
			if !yield(n) {
				return
			}
		}
	}
}

// Member resolves a declared member or alias by name.
func (t *EnumType) Member(name string) (EnumMember, bool) {
	m, ok := t.members[name]

	return m, ok
}

// EnumMember is a value of an EnumType.
type EnumMember struct {
	typ  *EnumType
	name string
	ord  int
}

// Ord reports the member's ordinal value.
func (m EnumMember) Ord() int { return m.ord }

func (m EnumMember) Type() Type { return m.typ }

func (m EnumMember) Eval(*Context) (Value, error) { return m, nil }

func (EnumMember) Constant() bool { return true }

func (EnumMember) Values() iter.Seq[Value] { return noValues() }

func (m EnumMember) String() string { return m.typ.name + "." + m.name }

// FlagType is a distinct value category whose members are bit masks and
// may be combined with the | operator.
type FlagType struct {
	name    string
	names   []string
	members map[string]FlagMember
}

// NewFlagType declares a flag type from its member specs, in declaration
// order. Member values are bit masks; compound members (and aliases of
// them) are permitted.
func NewFlagType(name string, members ...MemberSpec) *FlagType {
	t := &FlagType{
		name:    name,
		members: make(map[string]FlagMember, len(members)),
	}

	canonical := make(map[int]string, len(members))

	for _, m := range members {
		t.names = append(t.names, m.Name)

		member := FlagMember{typ: t, name: m.Name, bits: m.Value}
		if first, ok := canonical[m.Value]; ok {
			member.name = first
		} else {
			canonical[m.Value] = m.Name
		}

		t.members[m.Name] = member
	}

	return t
}

// Name reports the flag type name used in diagnostics.
func (t *FlagType) Name() string { return t.name }

// Names iterates over the declared member names, aliases included.
func (t *FlagType) Names() iter.Seq[string] {
	return func(yield func(string) bool) {
		for _, n := range t.names {
			if !yield(n) {
				return
			}
		}
	}
}

// Member resolves a declared member or alias by name.
func (t *FlagType) Member(name string) (FlagMember, bool) {
	m, ok := t.members[name]

	return m, ok
}

// bits wraps a raw mask in a FlagMember, reusing the canonical name when
// the mask matches a declared member exactly.
func (t *FlagType) bits(mask int) FlagMember {
	for _, n := range t.names {
		if m := t.members[n]; m.bits == mask {
			return m
		}
	}

	return FlagMember{typ: t, bits: mask}
}

// MemberOf resolves a named member on t when t is an enum or flag type,
// for callers holding the type abstractly.
func MemberOf(t Type, name string) (Value, bool) {
	switch tt := t.(type) {
	case *EnumType:
		if m, ok := tt.Member(name); ok {
			return m, true
		}
	case *FlagType:
		if m, ok := tt.Member(name); ok {
			return m, true
		}
	}

	return nil, false
}

// FlagMember is a value of a FlagType: a bit mask over the type's declared
// flags. A member produced by | carries no name of its own and renders as
// the flags it combines.
type FlagMember struct {
	typ  *FlagType
	name string
	bits int
}

// Bits reports the member's bit mask.
func (m FlagMember) Bits() int { return m.bits }

// Has reports whether every bit of o is set in m.
func (m FlagMember) Has(o FlagMember) bool {
	return m.typ == o.typ && m.bits&o.bits == o.bits
}

func (m FlagMember) Type() Type { return m.typ }

func (m FlagMember) Eval(*Context) (Value, error) { return m, nil }

func (FlagMember) Constant() bool { return true }

func (FlagMember) Values() iter.Seq[Value] { return noValues() }

func (m FlagMember) String() string {
	if m.name != "" {
		return m.typ.name + "." + m.name
	}

	var parts []string

	rest := m.bits
	for _, n := range m.typ.names {
		member := m.typ.members[n]
		if member.name != n || member.bits == 0 {
			continue // alias or empty mask
		}

		if rest&member.bits == member.bits {
			parts = append(parts, n)
			rest &^= member.bits
		}
	}

	if len(parts) == 0 {
		return m.typ.name + "." + FormatFloat(float64(m.bits))
	}

	return m.typ.name + "." + strings.Join(parts, "|")
}
