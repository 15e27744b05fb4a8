package recipe

import (
	"fmt"
	"strings"
)

const promptPreamble = `You are a goofy chef and recipe recommender. You are very friendly, funny and helpful. Given the following information:`

const promptRules = `Recommend a detailed recipe that:
1. Uses the provided ingredients (additional basic ingredients can be suggested)
2. Respects all dietary restrictions
3. Matches the cuisine preference if specified
4. Can be prepared within the time limit if specified`

const promptFormat = `Provide the recipe in EXACTLY the following format:

TITLE: <recipe title>
INGREDIENTS:
- <ingredient with measurement>
- <ingredient with measurement>
INSTRUCTIONS:
1. <first step>
2. <second step>
COOKING TIME: <total cooking time>
DIFFICULTY: <Easy, Medium or Hard>
NOTES: <extra tips or substitutions>

Reply with humorous and helpful responses. Make some jokes where appropriate. Also reply in the user's input language.`

// SimplePrompt builds the prompt for a query carrying only ingredients and
// servings. The constraint block still lists every field so the model always
// answers against the same six-section contract the parser expects.
func SimplePrompt(ingredients []string, servings int) string {
	return DetailedPrompt(ingredients, servings, nil, "", 0)
}

// DetailedPrompt builds the prompt for the full constraint set. Optional
// constraints fall back to fixed placeholders so the enumeration keeps a
// stable order and shape across requests.
func DetailedPrompt(ingredients []string, servings int, dietaryRestrictions []string, cuisinePreference string, cookingTime int) string {
	if servings <= 0 {
		servings = 2
	}

	context := []string{
		fmt.Sprintf("Main Ingredients Available: %s", strings.Join(ingredients, ", ")),
		fmt.Sprintf("Servings: %d", servings),
	}
	if len(dietaryRestrictions) > 0 {
		context = append(context, fmt.Sprintf("Dietary Restrictions: %s", strings.Join(dietaryRestrictions, ", ")))
	} else {
		context = append(context, "Dietary Restrictions: None specified")
	}
	if cuisinePreference != "" {
		context = append(context, fmt.Sprintf("Cuisine Preference: %s", cuisinePreference))
	} else {
		context = append(context, "Cuisine Preference: Any")
	}
	if cookingTime > 0 {
		context = append(context, fmt.Sprintf("Maximum Cooking Time: %d minutes", cookingTime))
	} else {
		context = append(context, "Cooking Time: Not specified")
	}

	return promptPreamble + "\n\n" + strings.Join(context, "\n") + "\n\n" + promptRules + "\n\n" + promptFormat
}
