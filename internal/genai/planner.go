// internal/genai/planner.go
package genai

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"

	"mealmate/internal/models"
)

const (
	fallbackQuote  = "You got this!"
	fallbackAdvice = "Consistency is key."
)

// Planner owns the contract between free-form model output and domain types.
type Planner struct {
	gen     Generator
	newID   func() string
	metrics *Metrics
	logger  *slog.Logger
	stores  *storeCache
}

type Option func(*Planner)

func WithIDGenerator(newID func() string) Option {
	return func(p *Planner) { p.newID = newID }
}

func WithMetrics(m *Metrics) Option {
	return func(p *Planner) { p.metrics = m }
}

func WithLogger(logger *slog.Logger) Option {
	return func(p *Planner) { p.logger = logger }
}

// WithStoreCache keeps non-empty store lookups for ttl, keyed by position
// rounded to three decimals.
func WithStoreCache(size int, ttl time.Duration) Option {
	return func(p *Planner) {
		cache, err := newStoreCache(size, ttl)
		if err != nil {
			p.logger.Warn("store cache disabled", "error", err)
			return
		}
		p.stores = cache
	}
}

func NewPlanner(gen Generator, opts ...Option) *Planner {
	p := &Planner{
		gen:    gen,
		newID:  uuid.NewString,
		logger: slog.Default(),
	}
	for _, opt := range opts {
		opt(p)
	}
	p.logger = p.logger.With("component", "genai")
	return p
}

type mealPayload struct {
	Name         *string     `json:"name"`
	Description  *string     `json:"description"`
	Ingredients  flexStrings `json:"ingredients"`
	Instructions flexStrings `json:"instructions"`
	CookingTime  *flexNumber `json:"cookingTime"`
	Difficulty   string      `json:"difficulty"`
	Calories     *flexNumber `json:"calories"`
	Protein      *flexNumber `json:"protein"`
	Carbs        *flexNumber `json:"carbs"`
	Fats         *flexNumber `json:"fats"`
}

type numberField struct {
	field string
	value *flexNumber
	dest  *float64
}

func (p *mealPayload) toMeal(id string, slot models.MealType) (models.Meal, error) {
	if p == nil {
		return models.Meal{}, fmt.Errorf("%w: %s", ErrMissingField, strings.ToLower(string(slot)))
	}
	if p.Name == nil || strings.TrimSpace(*p.Name) == "" {
		return models.Meal{}, fmt.Errorf("%w: name", ErrMissingField)
	}

	var cookingTime float64
	var macros models.MacroNutrients
	numbers := []numberField{
		{"cookingTime", p.CookingTime, &cookingTime},
		{"calories", p.Calories, &macros.Calories},
		{"protein", p.Protein, &macros.Protein},
		{"carbs", p.Carbs, &macros.Carbs},
		{"fats", p.Fats, &macros.Fats},
	}
	for _, n := range numbers {
		v, err := requireNumber(n.field, n.value)
		if err != nil {
			return models.Meal{}, err
		}
		if v < 0 {
			return models.Meal{}, fmt.Errorf("negative %s: %g", n.field, v)
		}
		*n.dest = v
	}

	description := ""
	if p.Description != nil {
		description = *p.Description
	}

	return models.Meal{
		ID:           id,
		Type:         slot,
		Name:         strings.TrimSpace(*p.Name),
		Description:  description,
		Ingredients:  p.Ingredients.orEmpty(),
		Instructions: p.Instructions.orEmpty(),
		CookingTime:  cookingTime,
		Difficulty:   normalizeDifficulty(p.Difficulty),
		Macros:       macros,
	}, nil
}

// normalizeDifficulty maps model output onto the closed set, defaulting to Medium.
func normalizeDifficulty(raw string) models.Difficulty {
	for _, d := range models.Difficulties {
		if strings.EqualFold(strings.TrimSpace(raw), string(d)) {
			return d
		}
	}
	return models.Medium
}

type mealPlanPayload struct {
	Breakfast *mealPayload `json:"breakfast"`
	Lunch     *mealPayload `json:"lunch"`
	Dinner    *mealPayload `json:"dinner"`
}

// GenerateMealPlan returns breakfast, lunch and dinner in that order, each
// with a fresh identity.
func (p *Planner) GenerateMealPlan(ctx context.Context, user models.UserProfile) ([]models.Meal, error) {
	started := time.Now()
	meals, err := p.generateMealPlan(ctx, user)
	if err != nil {
		p.fail(OpMealPlan, started, err)
		return nil, generationError(OpMealPlan, err)
	}
	p.metrics.observe(OpMealPlan, outcomeSuccess, started)
	return meals, nil
}

func (p *Planner) generateMealPlan(ctx context.Context, user models.UserProfile) ([]models.Meal, error) {
	text, err := p.gen.GenerateJSON(ctx, buildMealPlanPrompt(user), mealPlanSchema())
	if err != nil {
		return nil, err
	}

	payload, err := decodeJSON[mealPlanPayload](text)
	if err != nil {
		return nil, err
	}

	slots := []struct {
		payload *mealPayload
		slot    models.MealType
	}{
		{payload.Breakfast, models.Breakfast},
		{payload.Lunch, models.Lunch},
		{payload.Dinner, models.Dinner},
	}

	meals := make([]models.Meal, 0, len(slots))
	for _, s := range slots {
		meal, err := s.payload.toMeal(p.newID(), s.slot)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", strings.ToLower(string(s.slot)), err)
		}
		meals = append(meals, meal)
	}
	return meals, nil
}

// SwapMeal returns an alternative for current. The slot type of current is
// kept whatever the model returns.
func (p *Planner) SwapMeal(ctx context.Context, current models.Meal, user models.UserProfile) (models.Meal, error) {
	started := time.Now()
	meal, err := p.swapMeal(ctx, current, user)
	if err != nil {
		p.fail(OpSwapMeal, started, err)
		return models.Meal{}, generationError(OpSwapMeal, err)
	}
	p.metrics.observe(OpSwapMeal, outcomeSuccess, started)
	return meal, nil
}

func (p *Planner) swapMeal(ctx context.Context, current models.Meal, user models.UserProfile) (models.Meal, error) {
	text, err := p.gen.GenerateJSON(ctx, buildSwapPrompt(current, user), mealSchema())
	if err != nil {
		return models.Meal{}, err
	}

	payload, err := decodeJSON[mealPayload](text)
	if err != nil {
		return models.Meal{}, err
	}
	return payload.toMeal(p.newID(), current.Type)
}

// UniqueIngredients flattens the ingredients of meals, dropping exact
// duplicates and keeping first-occurrence order.
func UniqueIngredients(meals []models.Meal) []string {
	seen := make(map[string]struct{})
	unique := []string{}
	for _, meal := range meals {
		for _, ingredient := range meal.Ingredients {
			if _, ok := seen[ingredient]; ok {
				continue
			}
			seen[ingredient] = struct{}{}
			unique = append(unique, ingredient)
		}
	}
	return unique
}

type groceryPayload struct {
	Items flexStrings `json:"items"`
}

// GenerateGroceryList never fails: when the collaborator yields no items the
// deduplicated raw ingredients are returned instead.
func (p *Planner) GenerateGroceryList(ctx context.Context, meals []models.Meal, servings int) []string {
	started := time.Now()
	if servings < 1 {
		servings = 1
	}
	unique := UniqueIngredients(meals)

	items, err := p.generateGroceryList(ctx, unique, servings)
	if err != nil || len(items) == 0 {
		p.logger.Info("grocery list degraded to raw ingredients", "ingredients", len(unique), "error", err)
		p.metrics.observe(OpGroceryList, outcomeFallback, started)
		return unique
	}
	p.metrics.observe(OpGroceryList, outcomeSuccess, started)
	return items
}

func (p *Planner) generateGroceryList(ctx context.Context, unique []string, servings int) ([]string, error) {
	text, err := p.gen.GenerateJSON(ctx, buildGroceryPrompt(unique, servings), groceryListSchema())
	if err != nil {
		return nil, err
	}
	payload, err := decodeJSON[groceryPayload](text)
	if err != nil {
		return nil, err
	}
	return payload.Items.orEmpty(), nil
}

type reportPayload struct {
	Summary     *string     `json:"summary"`
	Suggestions flexStrings `json:"suggestions"`
	Score       *flexNumber `json:"score"`
	HealthRisks flexStrings `json:"healthRisks"`
	Supplements flexStrings `json:"supplements"`
}

// GenerateNutritionReport computes the totals locally from meals; the model
// only supplies the narrative fields and the score.
func (p *Planner) GenerateNutritionReport(ctx context.Context, meals []models.Meal, user models.UserProfile) (*models.NutritionReport, error) {
	started := time.Now()
	report, err := p.generateNutritionReport(ctx, meals, user)
	if err != nil {
		p.fail(OpNutritionReport, started, err)
		return nil, generationError(OpNutritionReport, err)
	}
	p.metrics.observe(OpNutritionReport, outcomeSuccess, started)
	return report, nil
}

func (p *Planner) generateNutritionReport(ctx context.Context, meals []models.Meal, user models.UserProfile) (*models.NutritionReport, error) {
	text, err := p.gen.GenerateJSON(ctx, buildReportPrompt(meals, user), nutritionReportSchema())
	if err != nil {
		return nil, err
	}

	payload, err := decodeJSON[reportPayload](text)
	if err != nil {
		return nil, err
	}
	if payload.Summary == nil {
		return nil, fmt.Errorf("%w: summary", ErrMissingField)
	}
	score, err := requireNumber("score", payload.Score)
	if err != nil {
		return nil, err
	}

	total := models.SumMacros(meals)
	return &models.NutritionReport{
		TotalCalories: total.Calories,
		TotalMacros:   total,
		Summary:       *payload.Summary,
		Suggestions:   payload.Suggestions.orEmpty(),
		Score:         score,
		HealthRisks:   payload.HealthRisks.orEmpty(),
		Supplements:   payload.Supplements.orEmpty(),
	}, nil
}

type motivationPayload struct {
	Quote  string      `json:"quote"`
	Advice string      `json:"advice"`
	Badges flexStrings `json:"badges"`
}

// GenerateMotivation always returns a usable result; any failure yields
// FallbackMotivation().
func (p *Planner) GenerateMotivation(ctx context.Context, name string, checkIn models.CheckIn) models.ProgressResult {
	started := time.Now()

	text, err := p.gen.GenerateJSON(ctx, buildMotivationPrompt(name, checkIn), motivationSchema())
	var payload *motivationPayload
	if err == nil {
		payload, err = decodeJSON[motivationPayload](text)
	}
	if err != nil {
		p.logger.Info("motivation fell back to default", "error", err)
		p.metrics.observe(OpMotivation, outcomeFallback, started)
		return FallbackMotivation()
	}

	result := models.ProgressResult{
		Quote:  strings.TrimSpace(payload.Quote),
		Advice: strings.TrimSpace(payload.Advice),
		Badges: payload.Badges.orEmpty(),
	}
	if result.Quote == "" {
		result.Quote = fallbackQuote
	}
	if result.Advice == "" {
		result.Advice = fallbackAdvice
	}
	p.metrics.observe(OpMotivation, outcomeSuccess, started)
	return result
}

// FallbackMotivation returns a fresh copy of the result used whenever the
// collaborator fails.
func FallbackMotivation() models.ProgressResult {
	return models.ProgressResult{
		Quote:  fallbackQuote,
		Advice: fallbackAdvice,
		Badges: []string{},
	}
}

// FindGroceryStores returns an empty list, never an error, when the
// collaborator fails or has no grounding data.
func (p *Planner) FindGroceryStores(ctx context.Context, latitude, longitude float64) []models.StoreResult {
	started := time.Now()
	if cached, ok := p.stores.get(latitude, longitude); ok {
		p.logger.Debug("store lookup served from cache", "latitude", latitude, "longitude", longitude)
		p.metrics.observe(OpFindStores, outcomeCached, started)
		return cached
	}

	chunks, err := p.gen.SearchNearby(ctx, storeSearchPrompt, latitude, longitude)
	if err != nil {
		p.logger.Warn("store search failed", "error", err)
		p.metrics.observe(OpFindStores, outcomeFallback, started)
		return []models.StoreResult{}
	}

	stores := []models.StoreResult{}
	for _, chunk := range chunks {
		switch {
		case chunk.Web != nil:
			stores = append(stores, models.StoreResult{Title: chunk.Web.Title, URI: chunk.Web.URI, Source: models.WebSource})
		case chunk.Maps != nil:
			stores = append(stores, models.StoreResult{Title: chunk.Maps.Title, URI: chunk.Maps.URI, Source: models.MapsSource})
		}
	}
	outcome := outcomeSuccess
	if len(stores) == 0 {
		outcome = outcomeFallback
	}
	p.stores.put(latitude, longitude, stores)
	p.metrics.observe(OpFindStores, outcome, started)
	return stores
}

func (p *Planner) fail(op string, started time.Time, err error) {
	p.logger.Warn("generation failed", "operation", op, "error", err)
	p.metrics.observe(op, outcomeFailure, started)
}
