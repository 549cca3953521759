package database

import (
	"strings"

	"github.com/cockroachdb/errors"
	"github.com/samber/lo"
)

type Direction string

const (
	DirectionIncome  Direction = "income"
	DirectionExpense Direction = "expense"
)

type Category string

const (
	CategoryFood          Category = "food"
	CategoryTransport     Category = "transport"
	CategoryEntertainment Category = "entertainment"
	CategoryHealth        Category = "health"
	CategoryEducation     Category = "education"
	CategoryShopping      Category = "shopping"
	CategoryBills         Category = "bills"
	CategorySalary        Category = "salary"
	CategoryInvestment    Category = "investment"
	CategoryOther         Category = "other"
)

// Categories is the closed, authoritative category set. Values outside of it
// are rejected, never silently accepted.
func Categories() []Category {
	return []Category{
		CategoryFood,
		CategoryTransport,
		CategoryEntertainment,
		CategoryHealth,
		CategoryEducation,
		CategoryShopping,
		CategoryBills,
		CategorySalary,
		CategoryInvestment,
		CategoryOther,
	}
}

func ParseDirection(raw string) (Direction, error) {
	direction := Direction(strings.ToLower(strings.TrimSpace(raw)))

	if direction != DirectionIncome && direction != DirectionExpense {
		return "", errors.Newf("unknown direction %q", raw)
	}

	return direction, nil
}

func ParseCategory(raw string) (Category, error) {
	category := Category(strings.ToLower(strings.TrimSpace(raw)))

	if !lo.Contains(Categories(), category) {
		return "", errors.Newf("unknown category %q", raw)
	}

	return category, nil
}
