package criteria

// TranslateOperator maps a filter-control operator to its DSL operator.
//
// Unrecognised operators fall back to Contains, which is what list screens have always
// done with them.
func TranslateOperator(op FilterOperator) Operator {
	switch op {
	case FilterContains:
		return Contains
	case FilterEquals:
		return Equals
	case FilterNotEqual:
		return NotEqual
	case FilterGreaterThan:
		return GreaterThan
	case FilterGreaterOrEqual:
		return GreaterOrEqual
	case FilterLessThan:
		return LessThan
	case FilterLessOrEqual:
		return LessOrEqual
	case FilterAnyTrue:
		return AnyTrue
	case FilterAnyFalse:
		return AnyFalse
	default:
		return Contains
	}
}

// Translate converts filter items into criteria, preserving order.
func Translate(items []FilterItem) []Criterion {
	out := make([]Criterion, len(items))
	for i, item := range items {
		out[i] = Criterion{
			Field:            item.Field,
			Operator:         TranslateOperator(item.Operator),
			Value:            item.Value,
			IsExplicitFilter: item.IsExplicitFilter,
		}
	}
	return out
}
