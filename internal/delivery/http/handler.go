package http

import (
	"errors"
	"fmt"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/nutriswap/backend/internal/domain"
	"github.com/nutriswap/backend/internal/usecase"
)

const defaultHistoryLimit = 20

// Handler holds dependencies for HTTP handlers
type Handler struct {
	swaps  *usecase.SwapService
	logger *zap.Logger
}

// NewHandler creates a new HTTP handler. A nil service makes every API
// endpoint answer 503.
func NewHandler(swaps *usecase.SwapService, logger *zap.Logger) *Handler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Handler{
		swaps:  swaps,
		logger: logger.Named("http"),
	}
}

// goalRequest accepts either a combined key ("decrease_fat") or a
// nutrient/direction pair
type goalRequest struct {
	Key         string  `json:"key"`
	Nutrient    string  `json:"nutrient"`
	Direction   string  `json:"direction"`
	Intensity   float64 `json:"intensity"`
	TargetDelta float64 `json:"targetDelta"`
}

func (g goalRequest) toDomain() (domain.SwapGoal, error) {
	if g.Key != "" {
		n, d, ok := usecase.ParseGoalKey(g.Key)
		if !ok {
			return domain.SwapGoal{}, fmt.Errorf("%w: unknown goal %q", domain.ErrInvalidGoal, g.Key)
		}
		return domain.NewSwapGoal(n, d, g.Intensity, g.TargetDelta), nil
	}
	return domain.ParseSwapGoal(g.Nutrient, g.Direction, g.Intensity, g.TargetDelta)
}

// FindSwapsRequest asks for substitutes of a single food
type FindSwapsRequest struct {
	Food string      `json:"food" binding:"required"`
	Goal goalRequest `json:"goal"`
}

// RecommendRequest asks for ranked swaps across a meal
type RecommendRequest struct {
	Meal  *domain.Meal  `json:"meal" binding:"required"`
	Goals []goalRequest `json:"goals" binding:"required,min=1"`
}

// ApplyRequest applies a previously recommended candidate to a meal
type ApplyRequest struct {
	Meal      *domain.Meal          `json:"meal" binding:"required"`
	Candidate *domain.SwapCandidate `json:"candidate" binding:"required"`
}

type strategyResponse struct {
	GoalType    string `json:"goalType"`
	Description string `json:"description"`
}

// HealthCheck returns the health status of the API
func (h *Handler) HealthCheck(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":  "healthy",
		"service": "nutriswap-backend",
		"version": "1.0.0",
	})
}

// SearchIngredients lists known ingredient keys matching ?q=, or all of them
func (h *Handler) SearchIngredients(c *gin.Context) {
	if !h.ready(c) {
		return
	}
	ingredients := h.swaps.SearchIngredients(c.Query("q"))
	if ingredients == nil {
		ingredients = []string{}
	}
	c.JSON(http.StatusOK, gin.H{
		"ingredients": ingredients,
		"count":       len(ingredients),
	})
}

// GetIngredient resolves a single ingredient name
func (h *Handler) GetIngredient(c *gin.Context) {
	if !h.ready(c) {
		return
	}
	c.JSON(http.StatusOK, h.swaps.Ingredient(c.Param("name")))
}

// ListStrategies lists the goal types swaps can be requested for
func (h *Handler) ListStrategies(c *gin.Context) {
	if !h.ready(c) {
		return
	}
	strategies := h.swaps.Strategies()
	out := make([]strategyResponse, 0, len(strategies))
	for _, s := range strategies {
		out = append(out, strategyResponse{GoalType: s.GoalType(), Description: s.Description()})
	}
	c.JSON(http.StatusOK, gin.H{"strategies": out})
}

// FindSwaps handles single-food swap requests
func (h *Handler) FindSwaps(c *gin.Context) {
	if !h.ready(c) {
		return
	}
	var req FindSwapsRequest
	if !h.bind(c, &req) {
		return
	}
	goal, err := req.Goal.toDomain()
	if err != nil {
		h.respondError(c, err)
		return
	}

	candidates, err := h.swaps.FindSwaps(req.Food, goal)
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"food":       req.Food,
		"goal":       goal,
		"candidates": nonNil(candidates),
		"count":      len(candidates),
	})
}

// Recommend handles meal-level recommendation requests. Meals sent without
// totals get them computed from their ingredients.
func (h *Handler) Recommend(c *gin.Context) {
	if !h.ready(c) {
		return
	}
	var req RecommendRequest
	if !h.bind(c, &req) {
		return
	}

	goals := make([]domain.SwapGoal, 0, len(req.Goals))
	for _, g := range req.Goals {
		goal, err := g.toDomain()
		if err != nil {
			h.respondError(c, err)
			return
		}
		goals = append(goals, goal)
	}

	if req.Meal.Nutrients.IsZero() {
		totals, err := h.swaps.ComputeTotals(req.Meal)
		if err != nil {
			h.respondError(c, err)
			return
		}
		req.Meal.Nutrients = totals
	}

	candidates, err := h.swaps.Recommend(c.Request.Context(), req.Meal, goals)
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"mealNutrients": req.Meal.Nutrients,
		"candidates":    nonNil(candidates),
		"count":         len(candidates),
	})
}

// Preview returns what a candidate would change without applying it
func (h *Handler) Preview(c *gin.Context) {
	if !h.ready(c) {
		return
	}
	var candidate domain.SwapCandidate
	if !h.bind(c, &candidate) {
		return
	}
	delta, err := h.swaps.Preview(&candidate)
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"delta":   delta,
		"changes": delta.AsMap(),
	})
}

// ApplySwap applies a candidate and records it in history
func (h *Handler) ApplySwap(c *gin.Context) {
	if !h.ready(c) {
		return
	}
	var req ApplyRequest
	if !h.bind(c, &req) {
		return
	}
	result, err := h.swaps.ApplySwap(c.Request.Context(), req.Meal, req.Candidate)
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, result)
}

// ListHistory returns applied swaps, newest first
func (h *Handler) ListHistory(c *gin.Context) {
	if !h.ready(c) {
		return
	}
	limit := defaultHistoryLimit
	if raw := c.Query("limit"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n <= 0 {
			h.respondError(c, fmt.Errorf("%w: limit must be a positive integer", domain.ErrInvalidRequest))
			return
		}
		limit = n
	}

	records, err := h.swaps.History(c.Request.Context(), c.Query("profileId"), limit)
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"records": records,
		"count":   len(records),
	})
}

// GetHistoryRecord returns one applied swap
func (h *Handler) GetHistoryRecord(c *gin.Context) {
	if !h.ready(c) {
		return
	}
	record, err := h.swaps.HistoryRecord(c.Request.Context(), c.Param("id"))
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, record)
}

// nonNil keeps empty results rendering as [] rather than null
func nonNil(candidates []domain.SwapCandidate) []domain.SwapCandidate {
	if candidates == nil {
		return []domain.SwapCandidate{}
	}
	return candidates
}

func (h *Handler) ready(c *gin.Context) bool {
	if h.swaps == nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{
			"error": "swap service not configured",
		})
		return false
	}
	return true
}

func (h *Handler) bind(c *gin.Context, obj interface{}) bool {
	if err := c.ShouldBindJSON(obj); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "invalid request body",
			"details": err.Error(),
		})
		return false
	}
	return true
}

func (h *Handler) respondError(c *gin.Context, err error) {
	status := statusForError(err)
	if status >= http.StatusInternalServerError {
		h.logger.Error("request failed",
			zap.String("path", c.FullPath()),
			zap.Error(err),
		)
	}
	c.JSON(status, gin.H{"error": err.Error()})
}

// statusForError maps domain errors to HTTP status codes
func statusForError(err error) int {
	switch {
	case errors.Is(err, domain.ErrInvalidRequest),
		errors.Is(err, domain.ErrInvalidMeal),
		errors.Is(err, domain.ErrInvalidCandidate),
		errors.Is(err, domain.ErrInvalidGoal),
		errors.Is(err, domain.ErrIngredientNotInMeal),
		errors.Is(err, domain.ErrNoStrategy):
		return http.StatusBadRequest
	case errors.Is(err, domain.ErrHistoryNotFound):
		return http.StatusNotFound
	default:
		return http.StatusInternalServerError
	}
}
