package node

//go:generate go tool stringer -type=CategoryEnum,StateEnum -output=kind_string.go

// CategoryEnum is the accounting category of a type.
type CategoryEnum int

const (
	CategoryUnknown   CategoryEnum = iota // nil type, nothing to account for
	CategoryReference                     // pointer or interface, resolved before classification
	CategoryPrimitive
	CategoryText
	CategoryContainer
	CategoryComposite

	// CategoryTotal is a constant that represents the total number of categories defined
	CategoryTotal = int(iota)
)

// StateEnum is the answer of Tracker.Enter for an identity.
type StateEnum int

const (
	StateFresh     StateEnum = iota // not seen yet, the caller accounts for it and must call Leave
	StateCompleted                  // already accounted for, contributes nothing
	StateCyclic                     // still on the active stack
)
