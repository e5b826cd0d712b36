package aisle

// Aisle names used by the built-in table.
const (
	Produce     = "Produce"
	Dairy       = "Dairy"
	MeatSeafood = "Meat & Seafood"
	Bakery      = "Bakery"
	Pantry      = "Pantry"
	Spices      = "Spices"
	Frozen      = "Frozen"
	Beverages   = "Beverages"
)

// defaultRules is the curated built-in keyword table. Order matters:
// "tomato paste" must beat "tomato", "eggplant" must beat "egg",
// "bell pepper" must beat "pepper", "orange juice" must beat "orange".
func defaultRules() []Rule {
	return []Rule{
		{"frozen", Frozen},

		{"tomato paste", Pantry},
		{"tomato sauce", Pantry},
		{"orange juice", Beverages},
		{"apple juice", Beverages},
		{"canned", Pantry},
		{"bell pepper", Produce},
		{"eggplant", Produce},
		{"peanut butter", Pantry},
		{"chili powder", Spices},
		{"garlic powder", Spices},
		{"onion powder", Spices},

		{"lettuce", Produce},
		{"kale", Produce},
		{"spinach", Produce},
		{"tomato", Produce},
		{"onion", Produce},
		{"garlic", Produce},
		{"carrot", Produce},
		{"celery", Produce},
		{"potato", Produce},
		{"mushroom", Produce},
		{"cucumber", Produce},
		{"zucchini", Produce},
		{"broccoli", Produce},
		{"cauliflower", Produce},
		{"ginger", Produce},
		{"avocado", Produce},
		{"scallion", Produce},
		{"leek", Produce},
		{"cabbage", Produce},
		{"apple", Produce},
		{"banana", Produce},
		{"lemon", Produce},
		{"lime", Produce},
		{"orange", Produce},
		{"berry", Produce},
		{"berries", Produce},
		{"cilantro", Produce},
		{"parsley", Produce},
		{"basil", Produce},
		{"mint", Produce},

		{"milk", Dairy},
		{"cheese", Dairy},
		{"butter", Dairy},
		{"yogurt", Dairy},
		{"cream", Dairy},
		{"egg", Dairy},

		{"chicken", MeatSeafood},
		{"beef", MeatSeafood},
		{"pork", MeatSeafood},
		{"turkey", MeatSeafood},
		{"lamb", MeatSeafood},
		{"bacon", MeatSeafood},
		{"sausage", MeatSeafood},
		{"ham", MeatSeafood},
		{"steak", MeatSeafood},
		{"fish", MeatSeafood},
		{"salmon", MeatSeafood},
		{"tuna", MeatSeafood},
		{"shrimp", MeatSeafood},
		{"crab", MeatSeafood},
		{"anchov", MeatSeafood},

		{"bread", Bakery},
		{"bagel", Bakery},
		{"tortilla", Bakery},
		{"croissant", Bakery},
		{"baguette", Bakery},

		{"flour", Pantry},
		{"sugar", Pantry},
		{"rice", Pantry},
		{"pasta", Pantry},
		{"noodle", Pantry},
		{"bean", Pantry},
		{"lentil", Pantry},
		{"chickpea", Pantry},
		{"oil", Pantry},
		{"vinegar", Pantry},
		{"broth", Pantry},
		{"stock", Pantry},
		{"sauce", Pantry},
		{"cereal", Pantry},
		{"oat", Pantry},
		{"honey", Pantry},
		{"jam", Pantry},
		{"chocolate", Pantry},
		{"baking powder", Pantry},
		{"baking soda", Pantry},
		{"yeast", Pantry},

		{"salt", Spices},
		{"pepper", Spices},
		{"cumin", Spices},
		{"paprika", Spices},
		{"cinnamon", Spices},
		{"oregano", Spices},
		{"thyme", Spices},
		{"rosemary", Spices},
		{"nutmeg", Spices},
		{"turmeric", Spices},
		{"curry", Spices},
		{"vanilla", Spices},
		{"cayenne", Spices},

		{"juice", Beverages},
		{"coffee", Beverages},
		{"tea", Beverages},
		{"soda", Beverages},
		{"wine", Beverages},
		{"beer", Beverages},
	}
}
