package components

// FieldDescriptor describes a component field for UI display.
type FieldDescriptor struct {
	ID        string  // Unique identifier
	Label     string  // Display name
	Format    string  // Printf format (e.g., "%.0f")
	WarnBelow float64 // Bar turns to warning colour below this fraction (0 = never)
}

// VitalFieldDescriptors returns metadata for the vital bars shown above agents.
// Field IDs must match cases in VitalFraction().
func VitalFieldDescriptors() []FieldDescriptor {
	return []FieldDescriptor{
		{ID: "life", Label: "Life", Format: "%.0f"},
		{ID: "hunger", Label: "Hunger", Format: "%.0f", WarnBelow: 0.4},
		{ID: "thirst", Label: "Thirst", Format: "%.0f", WarnBelow: 0.7},
		{ID: "reproduction", Label: "Repro", Format: "%.0f"},
	}
}

// VitalFraction extracts a vital as a fraction of its capacity by field ID.
func VitalFraction(v Vitals, l Limits, fieldID string) float64 {
	switch fieldID {
	case "life":
		return frac(v.Life, l.MaxLife)
	case "hunger":
		return frac(v.Hunger, l.MaxHunger)
	case "thirst":
		return frac(v.Thirst, l.MaxThirst)
	case "reproduction":
		return frac(v.Reproduction, l.MaxReproduction)
	default:
		return 0
	}
}

// VitalValue extracts a raw vital value by field ID.
func VitalValue(v Vitals, fieldID string) float64 {
	switch fieldID {
	case "life":
		return v.Life
	case "hunger":
		return v.Hunger
	case "thirst":
		return v.Thirst
	case "reproduction":
		return v.Reproduction
	default:
		return 0
	}
}
