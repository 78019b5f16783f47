package domain

import "errors"

var (
	// ErrInvalidRequest is returned when request parameters are invalid
	ErrInvalidRequest = errors.New("invalid request parameters")

	// ErrInvalidMeal is returned when a meal is nil or its ingredient and quantity lists disagree
	ErrInvalidMeal = errors.New("invalid meal")

	// ErrInvalidCandidate is returned when a swap candidate is nil or fails its validity check
	ErrInvalidCandidate = errors.New("invalid swap candidate")

	// ErrIngredientNotInMeal is returned when the candidate's original food is not part of the meal
	ErrIngredientNotInMeal = errors.New("ingredient not found in meal")

	// ErrInvalidGoal is returned when a goal names an unknown nutrient or direction
	ErrInvalidGoal = errors.New("invalid swap goal")

	// ErrNoStrategy is returned when no strategy is registered for a goal
	ErrNoStrategy = errors.New("no strategy available for goal")

	// ErrCacheMiss is returned when data is not found in cache
	ErrCacheMiss = errors.New("cache miss")

	// ErrHistoryNotFound is returned when a swap record does not exist
	ErrHistoryNotFound = errors.New("swap record not found")
)
