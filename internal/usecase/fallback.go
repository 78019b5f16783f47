package usecase

import "github.com/nutriswap/backend/internal/domain"

// PlaceholderProfile is returned for names that match nothing
var PlaceholderProfile = domain.NutrientProfile{
	Calories:      50,
	Protein:       2,
	Carbohydrates: 5,
	Fat:           1,
	Fiber:         0.5,
}

// fallbackProfiles covers common ingredients, per 100 g, for when the dataset
// is missing or lacks an entry. Catalog entries with the same key take precedence.
var fallbackProfiles = map[string]domain.NutrientProfile{
	// Proteins
	"beef":           {Calories: 250, Protein: 26, Carbohydrates: 0, Fat: 15, Fiber: 0, Sugar: 0},
	"pork":           {Calories: 242, Protein: 27, Carbohydrates: 0, Fat: 14, Fiber: 0, Sugar: 0},
	"lamb":           {Calories: 294, Protein: 25, Carbohydrates: 0, Fat: 21, Fiber: 0, Sugar: 0},
	"chicken":        {Calories: 239, Protein: 27, Carbohydrates: 0, Fat: 14, Fiber: 0, Sugar: 0},
	"chicken breast": {Calories: 165, Protein: 31, Carbohydrates: 0, Fat: 3.6, Fiber: 0, Sugar: 0},
	"turkey breast":  {Calories: 135, Protein: 30, Carbohydrates: 0, Fat: 1, Fiber: 0, Sugar: 0},
	"fish":           {Calories: 136, Protein: 24, Carbohydrates: 0, Fat: 4, Fiber: 0, Sugar: 0},
	"salmon":         {Calories: 208, Protein: 20, Carbohydrates: 0, Fat: 13, Fiber: 0, Sugar: 0},
	"tofu":           {Calories: 76, Protein: 8, Carbohydrates: 1.9, Fat: 4.8, Fiber: 0.3, Sugar: 0.6},
	"egg":            {Calories: 155, Protein: 13, Carbohydrates: 1.1, Fat: 11, Fiber: 0, Sugar: 1.1},
	"egg whites":     {Calories: 52, Protein: 11, Carbohydrates: 0.7, Fat: 0.2, Fiber: 0, Sugar: 0.7},
	"bacon":          {Calories: 541, Protein: 37, Carbohydrates: 1.4, Fat: 42, Fiber: 0, Sugar: 0},
	"tempeh":         {Calories: 192, Protein: 20, Carbohydrates: 7.6, Fat: 11, Fiber: 0, Sugar: 0},

	// Dairy
	"milk":           {Calories: 61, Protein: 3.2, Carbohydrates: 4.8, Fat: 3.3, Fiber: 0, Sugar: 5.1},
	"skim milk":      {Calories: 34, Protein: 3.4, Carbohydrates: 5, Fat: 0.1, Fiber: 0, Sugar: 5},
	"cheese":         {Calories: 402, Protein: 25, Carbohydrates: 1.3, Fat: 33, Fiber: 0, Sugar: 0.5},
	"cottage cheese": {Calories: 98, Protein: 11, Carbohydrates: 3.4, Fat: 4.3, Fiber: 0, Sugar: 2.7},
	"greek yogurt":   {Calories: 59, Protein: 10, Carbohydrates: 3.6, Fat: 0.4, Fiber: 0, Sugar: 3.2},
	"butter":         {Calories: 717, Protein: 0.9, Carbohydrates: 0.1, Fat: 81, Fiber: 0, Sugar: 0.1},
	"cream":          {Calories: 340, Protein: 2.8, Carbohydrates: 2.7, Fat: 36, Fiber: 0, Sugar: 2.9},

	// Grains
	"white rice":        {Calories: 130, Protein: 2.7, Carbohydrates: 28, Fat: 0.3, Fiber: 0.4, Sugar: 0.1},
	"brown rice":        {Calories: 112, Protein: 2.6, Carbohydrates: 24, Fat: 0.9, Fiber: 1.8, Sugar: 0.4},
	"quinoa":            {Calories: 120, Protein: 4.4, Carbohydrates: 21, Fat: 1.9, Fiber: 2.8, Sugar: 0.9},
	"white bread":       {Calories: 265, Protein: 9, Carbohydrates: 49, Fat: 3.2, Fiber: 2.7, Sugar: 5},
	"whole wheat bread": {Calories: 247, Protein: 13, Carbohydrates: 41, Fat: 3.4, Fiber: 7, Sugar: 6},
	"pasta":             {Calories: 131, Protein: 5, Carbohydrates: 25, Fat: 1.1, Fiber: 1.8, Sugar: 0.6},
	"oats":              {Calories: 389, Protein: 17, Carbohydrates: 66, Fat: 6.9, Fiber: 10.6, Sugar: 1},
	"potato":            {Calories: 77, Protein: 2, Carbohydrates: 17, Fat: 0.1, Fiber: 2.2, Sugar: 0.8},
	"sweet potato":      {Calories: 86, Protein: 1.6, Carbohydrates: 20, Fat: 0.1, Fiber: 3, Sugar: 4.2},

	// Vegetables
	"broccoli":    {Calories: 34, Protein: 2.8, Carbohydrates: 7, Fat: 0.4, Fiber: 2.6, Sugar: 1.7},
	"spinach":     {Calories: 23, Protein: 2.9, Carbohydrates: 3.6, Fat: 0.4, Fiber: 2.2, Sugar: 0.4},
	"cauliflower": {Calories: 25, Protein: 1.9, Carbohydrates: 5, Fat: 0.3, Fiber: 2, Sugar: 1.9},
	"zucchini":    {Calories: 17, Protein: 1.2, Carbohydrates: 3.1, Fat: 0.3, Fiber: 1, Sugar: 2.5},
	"lettuce":     {Calories: 15, Protein: 1.4, Carbohydrates: 2.9, Fat: 0.2, Fiber: 1.3, Sugar: 0.8},
	"carrot":      {Calories: 41, Protein: 0.9, Carbohydrates: 10, Fat: 0.2, Fiber: 2.8, Sugar: 4.7},

	// Fruits
	"apple":   {Calories: 52, Protein: 0.3, Carbohydrates: 14, Fat: 0.2, Fiber: 2.4, Sugar: 10},
	"banana":  {Calories: 89, Protein: 1.1, Carbohydrates: 23, Fat: 0.3, Fiber: 2.6, Sugar: 12},
	"berries": {Calories: 57, Protein: 0.7, Carbohydrates: 14, Fat: 0.3, Fiber: 2.4, Sugar: 10},
	"avocado": {Calories: 160, Protein: 2, Carbohydrates: 8.5, Fat: 15, Fiber: 6.7, Sugar: 0.7},

	// Nuts, oils, sweets
	"almonds":         {Calories: 579, Protein: 21, Carbohydrates: 22, Fat: 50, Fiber: 12.5, Sugar: 4.4},
	"peanut butter":   {Calories: 588, Protein: 25, Carbohydrates: 20, Fat: 50, Fiber: 6, Sugar: 9},
	"olive oil":       {Calories: 884, Protein: 0, Carbohydrates: 0, Fat: 100, Fiber: 0, Sugar: 0},
	"sugar":           {Calories: 387, Protein: 0, Carbohydrates: 100, Fat: 0, Fiber: 0, Sugar: 100},
	"honey":           {Calories: 304, Protein: 0.3, Carbohydrates: 82, Fat: 0, Fiber: 0.2, Sugar: 82},
	"soda":            {Calories: 41, Protein: 0, Carbohydrates: 10.6, Fat: 0, Fiber: 0, Sugar: 10.6},
	"sparkling water": {Calories: 0, Protein: 0, Carbohydrates: 0, Fat: 0, Fiber: 0, Sugar: 0},

	// Legumes
	"black beans": {Calories: 132, Protein: 8.9, Carbohydrates: 24, Fat: 0.5, Fiber: 8.7, Sugar: 0.3},
	"lentils":     {Calories: 116, Protein: 9, Carbohydrates: 20, Fat: 0.4, Fiber: 7.9, Sugar: 1.8},
	"chickpeas":   {Calories: 164, Protein: 8.9, Carbohydrates: 27, Fat: 2.6, Fiber: 7.6, Sugar: 4.8},
}
