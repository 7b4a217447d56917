package pager

import (
	"fmt"
	"math"
	"strings"

	"github.com/samber/lo"
	"gorm.io/gorm"
)

// Direction defines the sort direction for the requested dataset. The
// lowercase wire form matches what API callers send and what result
// envelopes echo back.
type Direction string

const (
	DirectionASC  Direction = "asc"
	DirectionDESC Direction = "desc"
)

func (d Direction) Valid() bool {
	return d == DirectionASC || d == DirectionDESC
}

// ParseDirection normalizes a raw direction string. Anything that is not
// recognizably descending sorts ascending, which is the documented default.
func ParseDirection(raw string) Direction {
	if Direction(strings.ToLower(raw)) == DirectionDESC {
		return DirectionDESC
	}

	return DirectionASC
}

func (d Direction) ForOperator() Operator {
	switch d {
	case DirectionASC:
		return OperatorGT
	case DirectionDESC:
		return OperatorLT
	default:
		panic(fmt.Errorf("cannot map direction '%s' to operator", d))
	}
}

type (
	Orderings []OrderBy
	OrderBy   struct {
		Column    string
		Direction Direction
	}
)

var _availableColumnNameSymbols = append([]rune("_.'`\""), lo.AlphanumericCharset...)

func (o OrderBy) validate() error {
	if !o.Direction.Valid() {
		return fmt.Errorf("invalid ordering direction '%s'", o.Direction)
	}

	// Guard against SQL injection by restricting allowed characters in column names.
	if !lo.Every(_availableColumnNameSymbols, []rune(o.Column)) {
		return fmt.Errorf("ordering column name contains forbidden symbols '%s'", o.Column)
	}

	return nil
}

// ToSQLSlice converts Orderings to a slice of strings in the form
// "<order_column> <order_direction>" suitable for SQL query builders.
//
// Example: for Orderings: [{"a", "asc"}, {"b", "desc"}] returns ["a asc", "b desc"].
func (o Orderings) ToSQLSlice() []string {
	ret := make([]string, 0, len(o))
	for _, ordering := range o {
		ret = append(ret, fmt.Sprintf("%s %s", ordering.Column, ordering.Direction))
	}

	return ret
}

// ToSQL converts Orderings to a single string
// "<order_column_1> <order_direction_1>, <order_column_2> <order_direction_2>"
// suitable for embedding into an SQL query.
func (o Orderings) ToSQL() string {
	return strings.Join(o.ToSQLSlice(), ", ")
}

// Apply applies the ordering to a gorm query.
func (o Orderings) Apply(db *gorm.DB) *gorm.DB {
	return db.Order(o.ToSQL())
}

func (o Orderings) validate() error {
	if len(o) == 0 {
		return fmt.Errorf("empty ordering list")
	}

	var err error
	for _, ordering := range o {
		err = ordering.validate()
		if err != nil {
			return err
		}
	}

	return nil
}

// validateColumnName applies the same symbol whitelist as ordering validation
// to any column string that is about to be embedded into SQL text.
func validateColumnName(column string) error {
	if column == "" {
		return fmt.Errorf("empty column name")
	}

	if !lo.Every(_availableColumnNameSymbols, []rune(column)) {
		return fmt.Errorf("column name contains forbidden symbols '%s'", column)
	}

	return nil
}

// closestName returns the whitelist entry with the smallest edit distance to
// the input. Used for error hints on unknown sort keys.
func closestName(input string, dataSet []string) string {
	minDist := math.MaxInt
	closest := ""

	for _, candidate := range dataSet {
		dist := levenshtein([]rune(candidate), []rune(input))
		if dist < minDist {
			minDist = dist
			closest = candidate
		}
	}

	return closest
}
