package game

import (
	"bytes"
	"fmt"
	"image"
	"image/color"
	"image/png"
	"os"
	"path/filepath"
	"testing"
	"testing/fstest"

	"github.com/gonewx/backdrop/internal/effect"
	"github.com/gonewx/backdrop/pkg/embedded"
)

// createTestImage creates a simple 10x10 blue PNG for testing purposes.
func createTestImage(path string) error {
	img := image.NewRGBA(image.Rect(0, 0, 10, 10))
	blue := color.RGBA{R: 0, G: 0, B: 255, A: 255}
	for y := 0; y < 10; y++ {
		for x := 0; x < 10; x++ {
			img.Set(x, y, blue)
		}
	}

	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return err
	}
	file, err := os.Create(path)
	if err != nil {
		return err
	}
	defer file.Close()

	return png.Encode(file, img)
}

// writeResourceConfig writes a resource table rooted at baseDir
func writeResourceConfig(t *testing.T, baseDir string) string {
	t.Helper()
	configPath := filepath.Join(baseDir, "resources.yaml")
	content := fmt.Sprintf(`version: "1.0"
base_path: %s
groups:
  effects:
    images:
      - id: IMAGE_SNOWFLAKE
        path: images/snowflake
  broken:
    images:
      - id: IMAGE_MISSING
        path: images/missing.png
`, filepath.ToSlash(baseDir))
	if err := os.WriteFile(configPath, []byte(content), 0644); err != nil {
		t.Fatalf("Failed to write resource config: %v", err)
	}
	return configPath
}

func TestNewResourceManager(t *testing.T) {
	rm := NewResourceManager()
	if rm.imageCache == nil || rm.resourceMap == nil {
		t.Fatal("caches should be initialized")
	}
	if len(rm.ResourceIDs()) != 0 {
		t.Error("a new manager should have no resources")
	}
}

func TestLoadImage_Success(t *testing.T) {
	testImagePath := filepath.Join(t.TempDir(), "test.png")
	if err := createTestImage(testImagePath); err != nil {
		t.Fatalf("Failed to create test image: %v", err)
	}

	rm := NewResourceManager()
	img, err := rm.LoadImage(testImagePath)
	if err != nil {
		t.Fatalf("LoadImage failed: %v", err)
	}
	if b := img.Bounds(); b.Dx() != 10 || b.Dy() != 10 {
		t.Errorf("Expected image size 10x10, got %dx%d", b.Dx(), b.Dy())
	}

	// 第二次加载返回缓存
	again, err := rm.LoadImage(testImagePath)
	if err != nil || again != img {
		t.Error("second LoadImage should return the cached image")
	}
	if rm.GetImage(testImagePath) != img {
		t.Error("GetImage should return the cached image")
	}
}

func TestLoadImage_Errors(t *testing.T) {
	dir := t.TempDir()
	invalidPath := filepath.Join(dir, "invalid.png")
	if err := os.WriteFile(invalidPath, []byte("not an image"), 0644); err != nil {
		t.Fatalf("Failed to create invalid file: %v", err)
	}

	rm := NewResourceManager()
	tests := []struct {
		name string
		path string
	}{
		{"文件不存在", filepath.Join(dir, "missing.png")},
		{"格式错误", invalidPath},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := rm.LoadImage(tt.path); err == nil {
				t.Errorf("LoadImage(%s) should fail", tt.path)
			}
			if rm.GetImage(tt.path) != nil {
				t.Error("failed loads must not be cached")
			}
		})
	}
}

func TestLoadImageByID(t *testing.T) {
	dir := t.TempDir()
	if err := createTestImage(filepath.Join(dir, "images", "snowflake.png")); err != nil {
		t.Fatalf("Failed to create test image: %v", err)
	}

	rm := NewResourceManager()
	if _, err := rm.LoadImageByID("IMAGE_SNOWFLAKE"); err == nil {
		t.Error("LoadImageByID should fail before LoadResourceConfig")
	}

	if err := rm.LoadResourceConfig(writeResourceConfig(t, dir)); err != nil {
		t.Fatalf("LoadResourceConfig failed: %v", err)
	}
	if got := rm.ResourceIDs(); len(got) != 2 || got[0] != "IMAGE_MISSING" || got[1] != "IMAGE_SNOWFLAKE" {
		t.Errorf("ResourceIDs() = %v", got)
	}

	if rm.GetImageByID("IMAGE_SNOWFLAKE") != nil {
		t.Error("GetImageByID should be nil before loading")
	}
	img, err := rm.LoadImageByID("IMAGE_SNOWFLAKE")
	if err != nil {
		t.Fatalf("LoadImageByID failed: %v", err)
	}
	if rm.GetImageByID("IMAGE_SNOWFLAKE") != img {
		t.Error("GetImageByID should return the loaded image")
	}

	if _, err := rm.LoadImageByID("NON_EXISTENT_ID"); err == nil {
		t.Error("Expected error when loading non-existent resource ID")
	}
}

func TestLoadResourceGroup(t *testing.T) {
	dir := t.TempDir()
	if err := createTestImage(filepath.Join(dir, "images", "snowflake.png")); err != nil {
		t.Fatalf("Failed to create test image: %v", err)
	}
	rm := NewResourceManager()
	if err := rm.LoadResourceConfig(writeResourceConfig(t, dir)); err != nil {
		t.Fatalf("LoadResourceConfig failed: %v", err)
	}

	if err := rm.LoadResourceGroup("effects"); err != nil {
		t.Errorf("LoadResourceGroup(effects) error: %v", err)
	}
	if err := rm.LoadResourceGroup("broken"); err == nil {
		t.Error("LoadResourceGroup(broken) should report the missing image")
	}
	if err := rm.LoadResourceGroup("nope"); err == nil {
		t.Error("unknown group should fail")
	}
}

// TestImage_AssetSource 验证 ResourceManager 作为效果的贴图来源
func TestImage_AssetSource(t *testing.T) {
	dir := t.TempDir()
	if err := createTestImage(filepath.Join(dir, "images", "snowflake.png")); err != nil {
		t.Fatalf("Failed to create test image: %v", err)
	}
	rm := NewResourceManager()
	if err := rm.LoadResourceConfig(writeResourceConfig(t, dir)); err != nil {
		t.Fatalf("LoadResourceConfig failed: %v", err)
	}

	d := effect.Build(effect.Snow, effect.Rect{Width: 320, Height: 480}, rm)
	if d.Cells()[0].Contents == nil {
		t.Error("snow cell should carry the snowflake image")
	}

	// 缺失的贴图降级为 nil
	if rm.Image("IMAGE_MISSING") != nil {
		t.Error("missing file should yield a nil image")
	}
	if rm.Image(effect.BubbleAssetID) != nil {
		t.Error("unconfigured ID should yield a nil image")
	}
}

func TestLoadResourceConfig_Embedded(t *testing.T) {
	var pngData bytes.Buffer
	if err := png.Encode(&pngData, image.NewRGBA(image.Rect(0, 0, 4, 4))); err != nil {
		t.Fatalf("png.Encode: %v", err)
	}
	assets := fstest.MapFS{
		"assets/config/resources.yaml": {Data: []byte(`base_path: assets
groups:
  effects:
    images:
      - id: IMAGE_SNOWFLAKE
        path: images/snowflake
`)},
		"assets/images/snowflake.png": {Data: pngData.Bytes()},
	}
	embedded.Init(assets, fstest.MapFS{})

	rm := NewResourceManager()
	if err := rm.LoadResourceConfig(DefaultResourceConfigPath); err != nil {
		t.Fatalf("LoadResourceConfig(embedded) failed: %v", err)
	}
	img, err := rm.LoadImageByID("IMAGE_SNOWFLAKE")
	if err != nil {
		t.Fatalf("LoadImageByID(embedded) failed: %v", err)
	}
	if img.Bounds().Dx() != 4 {
		t.Errorf("width = %d, want 4", img.Bounds().Dx())
	}
}

func TestLoadResourceConfig_Errors(t *testing.T) {
	dir := t.TempDir()
	badYAML := filepath.Join(dir, "bad.yaml")
	if err := os.WriteFile(badYAML, []byte("groups: [\n"), 0644); err != nil {
		t.Fatalf("Failed to write file: %v", err)
	}

	rm := NewResourceManager()
	if err := rm.LoadResourceConfig(filepath.Join(dir, "missing.yaml")); err == nil {
		t.Error("missing config should fail")
	}
	if err := rm.LoadResourceConfig(badYAML); err == nil {
		t.Error("malformed config should fail")
	}
}
