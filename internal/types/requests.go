package types

// SimpleRecipeQuery represents the request body for the simple recipe endpoints
type SimpleRecipeQuery struct {
	Ingredients []string `json:"ingredients" binding:"required,min=1,dive,required"`
	Servings    int      `json:"servings"`
}

// ServingsOrDefault returns the requested servings, falling back to 2.
func (q SimpleRecipeQuery) ServingsOrDefault() int {
	if q.Servings <= 0 {
		return 2
	}
	return q.Servings
}

// DetailedRecipeQuery represents the request body for the detailed recipe endpoints
type DetailedRecipeQuery struct {
	Ingredients         []string `json:"ingredients" binding:"required,min=1,dive,required"`
	Servings            int      `json:"servings"`
	DietaryRestrictions []string `json:"dietary_restrictions"`
	CuisinePreference   string   `json:"cuisine_preference"`
	CookingTime         int      `json:"cooking_time"`
}

// ServingsOrDefault returns the requested servings, falling back to 2.
func (q DetailedRecipeQuery) ServingsOrDefault() int {
	if q.Servings <= 0 {
		return 2
	}
	return q.Servings
}
