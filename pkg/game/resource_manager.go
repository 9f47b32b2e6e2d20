package game

import (
	"fmt"
	"image"
	_ "image/jpeg" // Register JPEG decoder
	_ "image/png"  // Register PNG decoder
	"io"
	"log"
	"os"
	"path/filepath"
	"sort"

	"github.com/gonewx/backdrop/internal/effect"
	"github.com/gonewx/backdrop/pkg/embedded"
	"gopkg.in/yaml.v3"
)

// DefaultResourceConfigPath is the embedded resource table.
const DefaultResourceConfigPath = "assets/config/resources.yaml"

// ResourceManager is responsible for centralized management of particle images.
// It resolves resource IDs through the YAML resource table, decodes images
// and caches them, ensuring that every image is decoded only once.
//
// Files are read from the embedded resources when present, otherwise from disk.
//
// Images are kept as image.Image; conversion to GPU textures is left to the
// renderer so that resources can be loaded before the game loop starts.
//
// Thread Safety Note:
// This implementation is NOT thread-safe. Load resources from the main goroutine.
//
// Usage:
//
//	rm := NewResourceManager()
//	if err := rm.LoadResourceConfig(DefaultResourceConfigPath); err != nil {
//	    log.Printf("Failed to load resource config: %v", err)
//	}
//	img, err := rm.LoadImageByID("IMAGE_SNOWFLAKE")
type ResourceManager struct {
	imageCache map[string]image.Image // Cache for decoded images: path -> Image

	// YAML resource configuration
	config      *ResourceConfig   // Parsed YAML configuration
	resourceMap map[string]string // Resource ID -> file path mapping for quick lookup
}

var _ effect.AssetSource = (*ResourceManager)(nil)

// NewResourceManager creates and initializes a new ResourceManager instance
// with empty caches.
func NewResourceManager() *ResourceManager {
	return &ResourceManager{
		imageCache:  make(map[string]image.Image),
		resourceMap: make(map[string]string),
	}
}

// openResource opens path from the embedded resources, falling back to disk.
func openResource(path string) (io.ReadCloser, error) {
	if embedded.Exists(path) {
		return embedded.Open(path)
	}
	return os.Open(path)
}

// readResource reads path from the embedded resources, falling back to disk.
func readResource(path string) ([]byte, error) {
	if embedded.Exists(path) {
		return embedded.ReadFile(path)
	}
	return os.ReadFile(path)
}

// LoadImage loads an image file from the specified path and caches it for future use.
// If the image has already been loaded, it returns the cached version.
// Supported formats: PNG and JPEG.
//
// Error handling:
//   - Returns an error if the file does not exist or cannot be opened.
//   - Returns an error if the image format is not supported or the file is corrupted.
//   - Does not panic - all errors are returned to the caller for handling.
func (rm *ResourceManager) LoadImage(path string) (image.Image, error) {
	// Check if the image is already cached
	if cachedImage, exists := rm.imageCache[path]; exists {
		return cachedImage, nil
	}

	file, err := openResource(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open image file %s: %w", path, err)
	}
	defer file.Close()

	img, _, err := image.Decode(file)
	if err != nil {
		return nil, fmt.Errorf("failed to decode image %s: %w", path, err)
	}

	rm.imageCache[path] = img
	return img, nil
}

// GetImage retrieves a previously loaded image from the cache.
// If the image has not been loaded yet, it returns nil.
func (rm *ResourceManager) GetImage(path string) image.Image {
	return rm.imageCache[path]
}

// LoadResourceConfig loads the resource configuration from a YAML file.
// This method should be called once during initialization, before loading any resources.
//
// Parameters:
//   - configPath: Path to the YAML configuration file (e.g., "assets/config/resources.yaml")
func (rm *ResourceManager) LoadResourceConfig(configPath string) error {
	data, err := readResource(configPath)
	if err != nil {
		return fmt.Errorf("failed to read resource config %s: %w", configPath, err)
	}

	var config ResourceConfig
	if err := yaml.Unmarshal(data, &config); err != nil {
		return fmt.Errorf("failed to parse resource config %s: %w", configPath, err)
	}

	rm.config = &config
	rm.buildResourceMap()

	log.Printf("[ResourceManager] 加载资源配置 %s: %d 个资源", configPath, len(rm.resourceMap))
	return nil
}

// buildResourceMap constructs a mapping from resource IDs to full file paths.
//
// The mapping combines the base path with each resource's relative path.
// For example:
//
//	IMAGE_SNOWFLAKE -> assets/images/snowflake.png
func (rm *ResourceManager) buildResourceMap() {
	if rm.config == nil {
		return
	}

	// Clear existing mapping
	rm.resourceMap = make(map[string]string)

	for _, group := range rm.config.Groups {
		for _, img := range group.Images {
			fullPath := buildFullPath(rm.config.BasePath, img.Path)

			// Add file extension if not present
			if filepath.Ext(fullPath) == "" {
				fullPath += ".png" // Default to PNG for images
			}

			rm.resourceMap[img.ID] = fullPath
		}
	}
}

// ResourceIDs returns every configured resource ID in sorted order.
func (rm *ResourceManager) ResourceIDs() []string {
	ids := make([]string, 0, len(rm.resourceMap))
	for id := range rm.resourceMap {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}

// LoadImageByID loads an image resource using its resource ID.
// The resource ID must be defined in the YAML configuration file.
func (rm *ResourceManager) LoadImageByID(resourceID string) (image.Image, error) {
	if rm.config == nil {
		return nil, fmt.Errorf("resource config not loaded - call LoadResourceConfig first")
	}

	filePath, exists := rm.resourceMap[resourceID]
	if !exists {
		return nil, fmt.Errorf("resource ID not found: %s", resourceID)
	}

	return rm.LoadImage(filePath)
}

// GetImageByID retrieves a previously loaded image using its resource ID.
// If the image has not been loaded yet, it returns nil.
func (rm *ResourceManager) GetImageByID(resourceID string) image.Image {
	filePath, exists := rm.resourceMap[resourceID]
	if !exists {
		return nil
	}
	return rm.GetImage(filePath)
}

// LoadResourceGroup loads all images in a specified group.
// Resource groups are defined in the YAML configuration file.
func (rm *ResourceManager) LoadResourceGroup(groupName string) error {
	if rm.config == nil {
		return fmt.Errorf("resource config not loaded - call LoadResourceConfig first")
	}

	group, exists := rm.config.Groups[groupName]
	if !exists {
		return fmt.Errorf("resource group not found: %s", groupName)
	}

	for _, img := range group.Images {
		if _, err := rm.LoadImageByID(img.ID); err != nil {
			return fmt.Errorf("failed to load image %s in group %s: %w", img.ID, groupName, err)
		}
	}
	return nil
}

// Image implements effect.AssetSource. Failures are logged and reported as a
// nil image, which renders the particles transparent.
func (rm *ResourceManager) Image(id string) image.Image {
	img, err := rm.LoadImageByID(id)
	if err != nil {
		log.Printf("[ResourceManager] 警告：无法加载图片 %s: %v", id, err)
		return nil
	}
	return img
}
