// internal/server/tools.go
package server

import (
	"bytes"
	"context"
	"encoding/base64"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/ThinkInAIXYZ/go-mcp/protocol"

	"mealmate/internal/app"
	"mealmate/internal/location"
	"mealmate/internal/models"
)

var errInvalidParams = errors.New("invalid parameters")

type ProfileParams struct {
	Profile models.UserProfile `json:"profile" description:"User profile; omitted fields keep their current values"`
}

type MealParams struct {
	MealID string `json:"meal_id" description:"Identity of a meal in the plan or favorites"`
}

type ServingsParams struct {
	Servings int `json:"servings" description:"Number of people to shop for (1-10)"`
}

type CustomMealParams struct {
	Name string `json:"name" description:"Name of the custom meal"`
}

type CheckInParams struct {
	Weight float64 `json:"weight" description:"Current weight"`
	Energy float64 `json:"energy" description:"Energy level from 1 to 10"`
	Mood   float64 `json:"mood" description:"Mood from 1 to 10"`
}

type PhotoParams struct {
	Image    string `json:"image,omitempty" description:"Encoded data URL of the photo"`
	Data     string `json:"data,omitempty" description:"Raw base64 image bytes, used with mime_type"`
	MimeType string `json:"mime_type,omitempty" description:"MIME type of data"`
}

type LocateParams struct {
	Latitude  *float64 `json:"latitude,omitempty" description:"Latitude; omit both to use the configured position"`
	Longitude *float64 `json:"longitude,omitempty" description:"Longitude"`
}

type NavigateParams struct {
	Screen models.Screen `json:"screen" description:"Target screen name"`
}

type SpeakParams struct {
	Text string `json:"text" description:"Text to read aloud"`
}

// extractParams safely extracts parameters from the request arguments
func extractParams(req *protocol.CallToolRequest, target interface{}) error {
	jsonBytes, err := json.Marshal(req.Arguments)
	if err != nil {
		return fmt.Errorf("%w: failed to marshal arguments: %v", errInvalidParams, err)
	}

	if err := json.Unmarshal(jsonBytes, target); err != nil {
		return fmt.Errorf("%w: %v", errInvalidParams, err)
	}

	return nil
}

func (s *MealMateServer) stateResponse() (*protocol.CallToolResult, error) {
	return s.createJSONResponse(s.controller.Snapshot())
}

// profileFromRequest overlays the provided fields on the current profile.
func (s *MealMateServer) profileFromRequest(req *protocol.CallToolRequest) (models.UserProfile, error) {
	params := ProfileParams{Profile: s.controller.Snapshot().Profile}
	if err := extractParams(req, &params); err != nil {
		return models.UserProfile{}, err
	}
	return params.Profile, nil
}

func (s *MealMateServer) handleStartPlan(ctx context.Context, req *protocol.CallToolRequest) (*protocol.CallToolResult, error) {
	profile, err := s.profileFromRequest(req)
	if err != nil {
		return nil, err
	}
	if err := s.controller.StartPlan(ctx, profile); err != nil {
		return nil, err
	}
	return s.stateResponse()
}

func (s *MealMateServer) handleRegeneratePlan(ctx context.Context, req *protocol.CallToolRequest) (*protocol.CallToolResult, error) {
	if err := s.controller.RegeneratePlan(ctx); err != nil {
		return nil, err
	}
	return s.stateResponse()
}

func (s *MealMateServer) handleSwapMeal(ctx context.Context, req *protocol.CallToolRequest) (*protocol.CallToolResult, error) {
	var params MealParams
	if err := extractParams(req, &params); err != nil {
		return nil, err
	}
	if params.MealID == "" {
		return nil, fmt.Errorf("%w: meal_id is required", errInvalidParams)
	}
	if err := s.controller.SwapMeal(ctx, params.MealID); err != nil {
		return nil, err
	}
	return s.stateResponse()
}

func (s *MealMateServer) handleBuildGroceryList(ctx context.Context, req *protocol.CallToolRequest) (*protocol.CallToolResult, error) {
	if err := s.controller.BuildGroceryList(ctx); err != nil {
		return nil, err
	}
	return s.stateResponse()
}

func (s *MealMateServer) handleSetServings(ctx context.Context, req *protocol.CallToolRequest) (*protocol.CallToolResult, error) {
	var params ServingsParams
	if err := extractParams(req, &params); err != nil {
		return nil, err
	}
	if err := s.controller.SetServings(ctx, params.Servings); err != nil {
		return nil, err
	}
	return s.stateResponse()
}

func (s *MealMateServer) handleBuildNutritionReport(ctx context.Context, req *protocol.CallToolRequest) (*protocol.CallToolResult, error) {
	if err := s.controller.BuildNutritionReport(ctx); err != nil {
		return nil, err
	}
	return s.stateResponse()
}

func (s *MealMateServer) handleToggleFavorite(ctx context.Context, req *protocol.CallToolRequest) (*protocol.CallToolResult, error) {
	var params MealParams
	if err := extractParams(req, &params); err != nil {
		return nil, err
	}
	added, err := s.controller.ToggleFavorite(params.MealID)
	if err != nil {
		return nil, err
	}
	return s.createJSONResponse(map[string]interface{}{
		"added":     added,
		"favorites": s.controller.Snapshot().Favorites,
	})
}

func (s *MealMateServer) handleAddCustomMeal(ctx context.Context, req *protocol.CallToolRequest) (*protocol.CallToolResult, error) {
	var params CustomMealParams
	if err := extractParams(req, &params); err != nil {
		return nil, err
	}
	meal, err := s.controller.AddCustomMeal(params.Name)
	if err != nil {
		return nil, err
	}
	return s.createJSONResponse(meal)
}

func (s *MealMateServer) handleSubmitCheckIn(ctx context.Context, req *protocol.CallToolRequest) (*protocol.CallToolResult, error) {
	var params CheckInParams
	if err := extractParams(req, &params); err != nil {
		return nil, err
	}
	result, err := s.controller.SubmitCheckIn(ctx, models.CheckIn{
		Weight: params.Weight,
		Energy: params.Energy,
		Mood:   params.Mood,
	})
	if err != nil {
		return nil, err
	}
	return s.createJSONResponse(map[string]interface{}{
		"result": result,
		"badges": s.controller.Snapshot().Badges,
	})
}

func (s *MealMateServer) handleUploadPhoto(ctx context.Context, req *protocol.CallToolRequest) (*protocol.CallToolResult, error) {
	var params PhotoParams
	if err := extractParams(req, &params); err != nil {
		return nil, err
	}
	image := params.Image
	if image == "" && params.Data != "" {
		raw, err := base64.StdEncoding.DecodeString(params.Data)
		if err != nil {
			return nil, fmt.Errorf("%w: data is not base64: %v", errInvalidParams, err)
		}
		image = app.EncodeImage(params.MimeType, raw)
	}
	if err := s.controller.UploadPhoto(image); err != nil {
		return nil, err
	}
	return s.createJSONResponse(map[string]interface{}{
		"photos": s.controller.Snapshot().Photos,
	})
}

func (s *MealMateServer) handleLocateStores(ctx context.Context, req *protocol.CallToolRequest) (*protocol.CallToolResult, error) {
	var params LocateParams
	if err := extractParams(req, &params); err != nil {
		return nil, err
	}
	var at *location.Coordinates
	switch {
	case params.Latitude != nil && params.Longitude != nil:
		at = &location.Coordinates{Latitude: *params.Latitude, Longitude: *params.Longitude}
	case params.Latitude != nil || params.Longitude != nil:
		return nil, fmt.Errorf("%w: latitude and longitude must be given together", errInvalidParams)
	}
	lookup, err := s.controller.LocateStores(ctx, at)
	if err != nil {
		return nil, err
	}
	return s.createJSONResponse(lookup)
}

func (s *MealMateServer) handleSaveSettings(ctx context.Context, req *protocol.CallToolRequest) (*protocol.CallToolResult, error) {
	profile, err := s.profileFromRequest(req)
	if err != nil {
		return nil, err
	}
	if err := s.controller.SaveSettings(profile); err != nil {
		return nil, err
	}
	return s.stateResponse()
}

func (s *MealMateServer) handleNavigate(ctx context.Context, req *protocol.CallToolRequest) (*protocol.CallToolResult, error) {
	var params NavigateParams
	if err := extractParams(req, &params); err != nil {
		return nil, err
	}
	if err := s.controller.Navigate(params.Screen); err != nil {
		return nil, err
	}
	return s.stateResponse()
}

func (s *MealMateServer) handleGetState(ctx context.Context, req *protocol.CallToolRequest) (*protocol.CallToolResult, error) {
	return s.stateResponse()
}

func (s *MealMateServer) handleReadRecipeAloud(ctx context.Context, req *protocol.CallToolRequest) (*protocol.CallToolResult, error) {
	var params MealParams
	if err := extractParams(req, &params); err != nil {
		return nil, err
	}
	if err := s.controller.ReadRecipeAloud(params.MealID); err != nil {
		return nil, err
	}
	return s.createJSONResponse(map[string]bool{"speaking": true})
}

func (s *MealMateServer) handleSpeak(ctx context.Context, req *protocol.CallToolRequest) (*protocol.CallToolResult, error) {
	var params SpeakParams
	if err := extractParams(req, &params); err != nil {
		return nil, err
	}
	if strings.TrimSpace(params.Text) == "" {
		return nil, fmt.Errorf("%w: text is required", errInvalidParams)
	}
	if err := s.controller.Speak(params.Text); err != nil {
		return nil, err
	}
	return s.createJSONResponse(map[string]bool{"speaking": true})
}

// handleExportGroceryList renders the list as a PDF into the export directory.
func (s *MealMateServer) handleExportGroceryList(ctx context.Context, req *protocol.CallToolRequest) (*protocol.CallToolResult, error) {
	var buf bytes.Buffer
	name, err := s.controller.ExportGroceryList(&buf)
	if err != nil {
		return nil, err
	}

	dir := s.config.ExportDir
	if dir == "" {
		dir = "."
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create export directory: %w", err)
	}
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, buf.Bytes(), 0o644); err != nil {
		return nil, fmt.Errorf("failed to write %s: %w", path, err)
	}
	s.logger.Info("exported grocery list", "path", path, "bytes", buf.Len())

	return s.createJSONResponse(map[string]interface{}{
		"file":  name,
		"path":  path,
		"bytes": buf.Len(),
	})
}

func (s *MealMateServer) registerTools() {
	s.tools = map[string]toolHandler{
		"start_plan":             s.handleStartPlan,
		"regenerate_plan":        s.handleRegeneratePlan,
		"swap_meal":              s.handleSwapMeal,
		"build_grocery_list":     s.handleBuildGroceryList,
		"set_servings":           s.handleSetServings,
		"build_nutrition_report": s.handleBuildNutritionReport,
		"toggle_favorite":        s.handleToggleFavorite,
		"add_custom_meal":        s.handleAddCustomMeal,
		"submit_check_in":        s.handleSubmitCheckIn,
		"upload_photo":           s.handleUploadPhoto,
		"locate_stores":          s.handleLocateStores,
		"save_settings":          s.handleSaveSettings,
		"navigate":               s.handleNavigate,
		"get_state":              s.handleGetState,
		"read_recipe_aloud":      s.handleReadRecipeAloud,
		"speak":                  s.handleSpeak,
		"export_grocery_list":    s.handleExportGroceryList,
	}

	for _, name := range s.ToolNames() {
		s.logger.Debug("registered tool", "tool", name)
	}
}

func (s *MealMateServer) ToolNames() []string {
	names := make([]string, 0, len(s.tools))
	for name := range s.tools {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
