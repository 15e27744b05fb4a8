package api

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/biarkamimasak/backend/internal/recipe"
	"github.com/biarkamimasak/backend/internal/service"
	"github.com/biarkamimasak/backend/internal/types"
)

// RecipeHandler handles recipe recommendation requests
type RecipeHandler struct {
	llm service.CompletionService
}

// NewRecipeHandler creates a new RecipeHandler instance
func NewRecipeHandler(llm service.CompletionService) *RecipeHandler {
	return &RecipeHandler{llm: llm}
}

// RegisterRoutes registers the recipe routes
func (h *RecipeHandler) RegisterRoutes(router *gin.RouterGroup) {
	recipes := router.Group("/recipe")
	{
		recipes.POST("/simple", h.Simple)
		recipes.POST("/detailed", h.Detailed)
		recipes.POST("/simple/stream", h.SimpleStream)
		recipes.POST("/detailed/stream", h.DetailedStream)
	}
}

// Simple recommends a recipe from ingredients and servings and returns the
// structured record.
func (h *RecipeHandler) Simple(c *gin.Context) {
	var query types.SimpleRecipeQuery
	if err := c.ShouldBindJSON(&query); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	h.recommend(c, recipe.SimplePrompt(query.Ingredients, query.ServingsOrDefault()))
}

// Detailed recommends a recipe honoring the full constraint set.
func (h *RecipeHandler) Detailed(c *gin.Context) {
	var query types.DetailedRecipeQuery
	if err := c.ShouldBindJSON(&query); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	h.recommend(c, recipe.DetailedPrompt(query.Ingredients, query.ServingsOrDefault(), query.DietaryRestrictions, query.CuisinePreference, query.CookingTime))
}

// SimpleStream relays the raw completion for a simple query as it arrives.
func (h *RecipeHandler) SimpleStream(c *gin.Context) {
	var query types.SimpleRecipeQuery
	if err := c.ShouldBindJSON(&query); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	h.relay(c, recipe.SimplePrompt(query.Ingredients, query.ServingsOrDefault()))
}

// DetailedStream relays the raw completion for a detailed query as it arrives.
func (h *RecipeHandler) DetailedStream(c *gin.Context) {
	var query types.DetailedRecipeQuery
	if err := c.ShouldBindJSON(&query); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	h.relay(c, recipe.DetailedPrompt(query.Ingredients, query.ServingsOrDefault(), query.DietaryRestrictions, query.CuisinePreference, query.CookingTime))
}

func (h *RecipeHandler) recommend(c *gin.Context, prompt string) {
	completion, err := h.llm.Complete(c.Request.Context(), prompt)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to generate recipe: " + err.Error()})
		return
	}

	c.JSON(http.StatusOK, recipe.Parse(completion))
}

// relay forwards completion fragments to the caller verbatim, flushing each
// one. Failures are written inline as a final "Error: " fragment; the
// response status stays 200 because headers have already been sent. When the
// caller disconnects, the request context cancels and the upstream stream is
// released.
func (h *RecipeHandler) relay(c *gin.Context, prompt string) {
	c.Header("Content-Type", "text/event-stream")
	c.Header("Cache-Control", "no-cache")
	c.Header("Connection", "keep-alive")
	c.Writer.WriteHeader(http.StatusOK)
	c.Writer.Flush()

	fragments, err := h.llm.CompleteStream(c.Request.Context(), prompt)
	if err != nil {
		c.Writer.WriteString("Error: " + err.Error())
		c.Writer.Flush()
		return
	}

	for fragment := range fragments {
		if fragment.Err != nil {
			c.Writer.WriteString("Error: " + fragment.Err.Error())
			c.Writer.Flush()
			return
		}
		c.Writer.WriteString(fragment.Text)
		c.Writer.Flush()
	}
}
