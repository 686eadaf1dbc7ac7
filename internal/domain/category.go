package domain

// Category is one of a fixed set of transaction categories, partitioned
// into income and expense categories.
type Category string

const (
	CategorySalary         Category = "salary"
	CategoryFreelance      Category = "freelance"
	CategoryInvestment     Category = "investment"
	CategoryGift           Category = "gift"
	CategoryOtherIncome    Category = "other-income"
	CategoryHousing        Category = "housing"
	CategoryFood           Category = "food"
	CategoryTransportation Category = "transportation"
	CategoryEntertainment  Category = "entertainment"
	CategoryHealthcare     Category = "healthcare"
	CategoryUtilities      Category = "utilities"
	CategoryOtherExpense   Category = "other-expense"
)

var categoryTypes = map[Category]TransactionType{
	CategorySalary:         TransactionTypeIncome,
	CategoryFreelance:      TransactionTypeIncome,
	CategoryInvestment:     TransactionTypeIncome,
	CategoryGift:           TransactionTypeIncome,
	CategoryOtherIncome:    TransactionTypeIncome,
	CategoryHousing:        TransactionTypeExpense,
	CategoryFood:           TransactionTypeExpense,
	CategoryTransportation: TransactionTypeExpense,
	CategoryEntertainment:  TransactionTypeExpense,
	CategoryHealthcare:     TransactionTypeExpense,
	CategoryUtilities:      TransactionTypeExpense,
	CategoryOtherExpense:   TransactionTypeExpense,
}

// IsValid reports whether the category is one of the known categories.
func (c Category) IsValid() bool {
	_, ok := categoryTypes[c]
	return ok
}

// Type returns the transaction type the category belongs to.
// The zero TransactionType is returned for unknown categories.
func (c Category) Type() TransactionType {
	return categoryTypes[c]
}

// ExpenseCategories returns the expense partition of the category set.
func ExpenseCategories() []Category {
	return []Category{
		CategoryHousing,
		CategoryFood,
		CategoryTransportation,
		CategoryEntertainment,
		CategoryHealthcare,
		CategoryUtilities,
		CategoryOtherExpense,
	}
}
