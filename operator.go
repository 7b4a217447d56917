package pager

import "fmt"

// Operator defines a comparison operator for the keyset condition of cursor
// pagination: strictly-greater when traversing forward, strictly-less when
// traversing backward.
type Operator string

const (
	OperatorGT Operator = ">"
	OperatorLT Operator = "<"
)

func (o Operator) Valid() bool {
	return o == OperatorLT || o == OperatorGT
}

func (o Operator) ForOrdering() Direction {
	switch o {
	case OperatorGT:
		return DirectionASC
	case OperatorLT:
		return DirectionDESC
	default:
		panic(fmt.Errorf("cannot map operator '%s' to ordering", o))
	}
}
