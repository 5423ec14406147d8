// internal/genai/schema.go
package genai

import "mealmate/internal/models"

type SchemaType string

const (
	TypeObject SchemaType = "OBJECT"
	TypeString SchemaType = "STRING"
	TypeArray  SchemaType = "ARRAY"
	TypeNumber SchemaType = "NUMBER"
)

// Schema is the declared JSON output shape sent with a request.
type Schema struct {
	Type        SchemaType         `json:"type"`
	Description string             `json:"description,omitempty"`
	Properties  map[string]*Schema `json:"properties,omitempty"`
	Items       *Schema            `json:"items,omitempty"`
	Enum        []string           `json:"enum,omitempty"`
	Required    []string           `json:"required,omitempty"`
}

func stringSchema(description string) *Schema {
	return &Schema{Type: TypeString, Description: description}
}

func numberSchema(description string) *Schema {
	return &Schema{Type: TypeNumber, Description: description}
}

func stringListSchema(description string) *Schema {
	return &Schema{Type: TypeArray, Items: &Schema{Type: TypeString}, Description: description}
}

func mealSchema() *Schema {
	difficulties := make([]string, len(models.Difficulties))
	for i, d := range models.Difficulties {
		difficulties[i] = string(d)
	}
	return &Schema{
		Type: TypeObject,
		Properties: map[string]*Schema{
			"name":         stringSchema(""),
			"description":  stringSchema("Short appetizing description"),
			"ingredients":  stringListSchema(""),
			"instructions": stringListSchema("Step-by-step cooking instructions"),
			"cookingTime":  numberSchema("Cooking time in minutes"),
			"difficulty":   {Type: TypeString, Enum: difficulties},
			"calories":     numberSchema(""),
			"protein":      numberSchema("in grams"),
			"carbs":        numberSchema("in grams"),
			"fats":         numberSchema("in grams"),
		},
		Required: []string{"name", "description", "ingredients", "instructions", "cookingTime", "difficulty", "calories", "protein", "carbs", "fats"},
	}
}

func mealPlanSchema() *Schema {
	return &Schema{
		Type: TypeObject,
		Properties: map[string]*Schema{
			"breakfast": mealSchema(),
			"lunch":     mealSchema(),
			"dinner":    mealSchema(),
		},
		Required: []string{"breakfast", "lunch", "dinner"},
	}
}

func groceryListSchema() *Schema {
	return &Schema{
		Type: TypeObject,
		Properties: map[string]*Schema{
			"items": stringListSchema(""),
		},
	}
}

func nutritionReportSchema() *Schema {
	return &Schema{
		Type: TypeObject,
		Properties: map[string]*Schema{
			"summary":     stringSchema(""),
			"suggestions": stringListSchema(""),
			"score":       numberSchema(""),
			"healthRisks": stringListSchema(""),
			"supplements": stringListSchema(""),
		},
		Required: []string{"summary", "suggestions", "score", "healthRisks", "supplements"},
	}
}

func motivationSchema() *Schema {
	return &Schema{
		Type: TypeObject,
		Properties: map[string]*Schema{
			"quote":  stringSchema(""),
			"advice": stringSchema(""),
			"badges": stringListSchema(""),
		},
	}
}
