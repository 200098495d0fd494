package config

// GetDefaults returns the default configuration values.
func GetDefaults() map[string]interface{} {
	return map[string]interface{}{
		"specs_dir":      "./specs",
		"output":         "text",
		"strict":         false,
		"show_progress":  true,
		"color":          true,
		"sanitize_depth": 10,
		"default_role":   "",
		"log_level":      "warn",
	}
}
