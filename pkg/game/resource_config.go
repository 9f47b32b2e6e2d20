package game

import "strings"

// ResourceConfig 是 assets/config/resources.yaml 的顶层结构：
// 资源 ID 到图片文件的映射表，按分组组织。
//
//	version: "1.0"
//	base_path: assets
//	groups:
//	  effects:
//	    images:
//	      - id: IMAGE_SNOWFLAKE
//	        path: images/snowflake
type ResourceConfig struct {
	Version  string                   `yaml:"version"`
	BasePath string                   `yaml:"base_path"` // 所有 path 的公共前缀，可为空
	Groups   map[string]ResourceGroup `yaml:"groups"`
}

// ResourceGroup 一组一起预加载的图片（应用启动时预加载 "effects" 组）
type ResourceGroup struct {
	Images []ImageResource `yaml:"images"`
}

// ImageResource 单个图片资源；Path 相对 BasePath，省略扩展名时按 .png 处理
type ImageResource struct {
	ID   string `yaml:"id"`
	Path string `yaml:"path"`
}

// buildFullPath 拼接 base_path 与资源相对路径，避免出现重复的 '/'
func buildFullPath(basePath, relativePath string) string {
	if basePath == "" {
		return relativePath
	}
	return strings.TrimSuffix(basePath, "/") + "/" + strings.TrimPrefix(relativePath, "/")
}
