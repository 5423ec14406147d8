// internal/app/controller.go
package app

import (
	"context"
	"log/slog"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"mealmate/internal/location"
	"mealmate/internal/models"
	"mealmate/internal/speech"
	"mealmate/internal/storage"
)

// Orchestrator is the AI layer the controller delegates to.
type Orchestrator interface {
	GenerateMealPlan(ctx context.Context, user models.UserProfile) ([]models.Meal, error)
	SwapMeal(ctx context.Context, current models.Meal, user models.UserProfile) (models.Meal, error)
	GenerateGroceryList(ctx context.Context, meals []models.Meal, servings int) []string
	GenerateNutritionReport(ctx context.Context, meals []models.Meal, user models.UserProfile) (*models.NutritionReport, error)
	GenerateMotivation(ctx context.Context, name string, checkIn models.CheckIn) models.ProgressResult
	FindGroceryStores(ctx context.Context, latitude, longitude float64) []models.StoreResult
}

type Deps struct {
	AI      Orchestrator
	Store   *storage.Persistence
	Locator location.Locator
	Speaker speech.Speaker
	Logger  *slog.Logger
	NewID   func() string
	Now     func() time.Time
}

// Controller owns all in-memory state. The mutex is never held across an
// AI call; results of superseded requests are dropped when they arrive.
// Once started, an operation runs to completion even if the caller's
// context is cancelled.
type Controller struct {
	ai      Orchestrator
	store   *storage.Persistence
	locator location.Locator
	speaker speech.Speaker
	logger  *slog.Logger
	newID   func() string
	now     func() time.Time

	mu       sync.Mutex
	state    State
	inFlight int

	planSeq     uint64
	planVersion uint64
	// planApplied is the sequence of the last plan written to state.
	planApplied uint64
	// startPending is set while a StartPlan waits for a plan to land.
	startPending bool
	grocerySeq  uint64
	reportSeq   uint64
	storesSeq   uint64
}

// NewController loads the persisted slices once; missing or corrupt slices
// fall back to their defaults.
func NewController(deps Deps) *Controller {
	c := &Controller{
		ai:      deps.AI,
		store:   deps.Store,
		locator: deps.Locator,
		speaker: deps.Speaker,
		logger:  deps.Logger,
		newID:   deps.NewID,
		now:     deps.Now,
	}
	if c.logger == nil {
		c.logger = slog.Default()
	}
	c.logger = c.logger.With("component", "controller")
	if c.locator == nil {
		c.locator = location.Unavailable{}
	}
	if c.speaker == nil {
		c.speaker = speech.Unsupported{}
	}
	if c.newID == nil {
		c.newID = uuid.NewString
	}
	if c.now == nil {
		c.now = time.Now
	}

	c.state = State{
		Screen:      models.WelcomeScreen,
		Profile:     c.store.LoadProfile(),
		Plan:        []models.Meal{},
		GroceryList: []string{},
		Servings:    1,
		Favorites:   c.store.LoadFavorites(),
		Badges:      c.store.LoadBadges(),
		Photos:      c.store.LoadPhotos(),
		Stores:      []models.StoreResult{},
	}
	return c
}

// Snapshot returns a copy of the current state.
func (c *Controller) Snapshot() State {
	c.mu.Lock()
	defer c.mu.Unlock()

	s := c.state.clone()
	s.Loading = c.inFlight > 0
	return s
}

func (c *Controller) begin() {
	c.inFlight++
}

func (c *Controller) end() {
	if c.inFlight > 0 {
		c.inFlight--
	}
}

// StartPlan saves the profile entered on the welcome screen and generates
// the first plan.
func (c *Controller) StartPlan(ctx context.Context, profile models.UserProfile) error {
	if strings.TrimSpace(profile.Name) == "" {
		return alert(msgNameRequired, nil)
	}
	if profile.Allergens == nil {
		profile.Allergens = []string{}
	}

	c.mu.Lock()
	c.state.Profile = profile
	if err := c.store.SaveProfile(profile); err != nil {
		c.logger.Error("failed to persist profile", "error", err)
	}
	c.mu.Unlock()

	return c.generatePlan(ctx, true)
}

// RegeneratePlan replaces the entire plan with new meals.
func (c *Controller) RegeneratePlan(ctx context.Context) error {
	return c.generatePlan(ctx, false)
}

// generatePlan applies only the newest request's plan. A pending StartPlan
// opens the plan screen with whichever plan lands first, even when a later
// RegeneratePlan superseded it.
func (c *Controller) generatePlan(ctx context.Context, navigate bool) error {
	c.mu.Lock()
	c.planSeq++
	seq := c.planSeq
	if navigate {
		c.startPending = true
	}
	profile := c.state.Profile
	c.begin()
	c.mu.Unlock()

	meals, err := c.ai.GenerateMealPlan(context.WithoutCancel(ctx), profile)

	c.mu.Lock()
	defer c.mu.Unlock()
	c.end()
	if err != nil {
		if c.planApplied > seq {
			c.logger.Info("ignoring failed superseded plan", "seq", seq, "applied", c.planApplied, "error", err)
			return nil
		}
		if seq == c.planSeq {
			c.startPending = false
		}
		return alert(msgPlanFailed, err)
	}
	if seq != c.planSeq {
		c.logger.Info("discarding superseded plan", "seq", seq, "latest", c.planSeq)
		return nil
	}
	c.state.Plan = meals
	c.planVersion++
	c.planApplied = seq
	if c.startPending {
		c.startPending = false
		c.state.Screen = models.MealPlanScreen
	}
	return nil
}

// SwapMeal replaces one plan meal by identity. A swap that completes after
// the plan was regenerated, or after the same meal was already swapped, is
// dropped.
func (c *Controller) SwapMeal(ctx context.Context, mealID string) error {
	c.mu.Lock()
	if len(c.state.Plan) == 0 {
		c.mu.Unlock()
		return alert(msgNoPlan, ErrNoPlan)
	}
	idx := models.IndexOf(c.state.Plan, mealID)
	if idx == -1 {
		c.mu.Unlock()
		return alert(msgMealNotFound, ErrMealNotFound)
	}
	current := c.state.Plan[idx]
	profile := c.state.Profile
	version := c.planVersion
	c.begin()
	c.mu.Unlock()

	meal, err := c.ai.SwapMeal(context.WithoutCancel(ctx), current, profile)

	c.mu.Lock()
	defer c.mu.Unlock()
	c.end()
	if err != nil {
		return alert(msgSwapFailed, err)
	}
	idx = models.IndexOf(c.state.Plan, mealID)
	if version != c.planVersion || idx == -1 {
		c.logger.Info("discarding stale swap", "meal", mealID)
		return nil
	}
	c.state.Plan[idx] = meal
	return nil
}

// BuildGroceryList consolidates the current plan and opens the list screen.
func (c *Controller) BuildGroceryList(ctx context.Context) error {
	return c.buildGroceryList(ctx, 0)
}

// buildGroceryList scales the list for servings, or for the current count
// when servings is zero. The count is committed together with the list, so
// a rejected or failed rebuild leaves both unchanged.
func (c *Controller) buildGroceryList(ctx context.Context, servings int) error {
	c.mu.Lock()
	if len(c.state.Plan) == 0 {
		c.mu.Unlock()
		return alert(msgNoPlan, ErrNoPlan)
	}
	c.grocerySeq++
	seq := c.grocerySeq
	meals := cloneMeals(c.state.Plan)
	if servings == 0 {
		servings = c.state.Servings
	}
	c.begin()
	c.mu.Unlock()

	list := c.ai.GenerateGroceryList(context.WithoutCancel(ctx), meals, servings)

	c.mu.Lock()
	defer c.mu.Unlock()
	c.end()
	if list == nil {
		return alert(msgListFailed, nil)
	}
	if seq != c.grocerySeq {
		c.logger.Info("discarding superseded grocery list", "seq", seq, "latest", c.grocerySeq)
		return nil
	}
	c.state.GroceryList = list
	c.state.Servings = servings
	c.state.Screen = models.GroceryListScreen
	return nil
}

const (
	MinServings = 1
	MaxServings = 10
)

// SetServings regenerates the list for a new serving count.
func (c *Controller) SetServings(ctx context.Context, servings int) error {
	if servings < MinServings || servings > MaxServings {
		return alert(msgInvalidServings, nil)
	}
	return c.buildGroceryList(ctx, servings)
}

// BuildNutritionReport analyzes the current plan and opens the report screen.
func (c *Controller) BuildNutritionReport(ctx context.Context) error {
	c.mu.Lock()
	if len(c.state.Plan) == 0 {
		c.mu.Unlock()
		return alert(msgNoPlan, ErrNoPlan)
	}
	c.reportSeq++
	seq := c.reportSeq
	meals := cloneMeals(c.state.Plan)
	profile := c.state.Profile
	c.begin()
	c.mu.Unlock()

	report, err := c.ai.GenerateNutritionReport(context.WithoutCancel(ctx), meals, profile)

	c.mu.Lock()
	defer c.mu.Unlock()
	c.end()
	if err != nil {
		return alert(msgReportFailed, err)
	}
	if seq != c.reportSeq {
		c.logger.Info("discarding superseded report", "seq", seq, "latest", c.reportSeq)
		return nil
	}
	c.state.Report = report
	c.state.Screen = models.NutritionReportScreen
	return nil
}

// SaveSettings persists the edited profile and returns to the welcome screen.
func (c *Controller) SaveSettings(profile models.UserProfile) error {
	if profile.Allergens == nil {
		profile.Allergens = []string{}
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	c.state.Profile = profile
	c.state.Screen = models.WelcomeScreen
	if err := c.store.SaveProfile(profile); err != nil {
		return alert(msgSaveFailed, err)
	}
	return nil
}

// Navigate switches screens without touching any other slice.
func (c *Controller) Navigate(screen models.Screen) error {
	if !screen.Valid() {
		return alert(msgInvalidScreen, nil)
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	c.state.Screen = screen
	return nil
}
