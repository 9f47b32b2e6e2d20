package game

import (
	"os"
	"testing"
)

// TestLoadResourceConfig_Project loads the project's resource table from disk
func TestLoadResourceConfig_Project(t *testing.T) {
	configPath := "../../assets/config/resources.yaml"
	if _, err := os.Stat(configPath); os.IsNotExist(err) {
		t.Skip("Skipping test - resource config file not found:", configPath)
	}

	rm := NewResourceManager()
	if err := rm.LoadResourceConfig(configPath); err != nil {
		t.Fatalf("LoadResourceConfig failed: %v", err)
	}

	if rm.config.BasePath != "assets" {
		t.Errorf("Expected base_path 'assets', got '%s'", rm.config.BasePath)
	}
	if _, exists := rm.config.Groups["effects"]; !exists {
		t.Error("Expected group 'effects' not found in config")
	}
	if got := rm.resourceMap["IMAGE_SNOWFLAKE"]; got != "assets/images/snowflake.png" {
		t.Errorf("IMAGE_SNOWFLAKE -> %q, want assets/images/snowflake.png", got)
	}
}

// TestBuildFullPath tests the buildFullPath helper function
func TestBuildFullPath(t *testing.T) {
	tests := []struct {
		basePath     string
		relativePath string
		expected     string
	}{
		{"assets", "images/snowflake.png", "assets/images/snowflake.png"},
		{"assets", "/images/snowflake.png", "assets/images/snowflake.png"},
		{"", "images/snowflake.png", "images/snowflake.png"},
		{"assets", "images/snowflake", "assets/images/snowflake"},
		{"assets/", "/images/snowflake.png", "assets/images/snowflake.png"},
	}

	for _, test := range tests {
		result := buildFullPath(test.basePath, test.relativePath)
		if result != test.expected {
			t.Errorf("buildFullPath(%q, %q) = %q, expected %q",
				test.basePath, test.relativePath, result, test.expected)
		}
	}
}
