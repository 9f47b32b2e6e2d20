package config

import (
	"fmt"
	"image/color"
	"os"
	"strconv"
	"strings"

	"github.com/gonewx/backdrop/internal/effect"
	"github.com/gonewx/backdrop/pkg/embedded"
	"gopkg.in/yaml.v3"
)

// DefaultConfigPath 内置配置文件路径（embedded data/ 前缀）
const DefaultConfigPath = "data/backdrop.yaml"

// EffectNone 表示启动时不运行任何效果
const EffectNone = "none"

// WindowConfig 窗口配置
type WindowConfig struct {
	Width      int    `yaml:"width"`      // 窗口宽度（逻辑像素）
	Height     int    `yaml:"height"`     // 窗口高度（逻辑像素）
	Title      string `yaml:"title"`      // 窗口标题
	Fullscreen bool   `yaml:"fullscreen"` // 启动时全屏
}

// AppConfig 应用配置
//
// 示例（data/backdrop.yaml）：
//
//	window:
//	  width: 800
//	  height: 600
//	  title: Backdrop
//	background: "#1b2436"
//	initialEffect: snow
//	autoDispose: true
//	tps: 60
//	profiles:
//	  bubble:
//	    birthRate: 8
type AppConfig struct {
	Window        WindowConfig `yaml:"window"`
	Background    string       `yaml:"background"`    // 背景色，#RRGGBB 或 #RRGGBBAA
	InitialEffect string       `yaml:"initialEffect"` // snow / bubble / none
	AutoDispose   bool         `yaml:"autoDispose"`   // 停止的效果在粒子耗尽后自动移除
	TPS           int          `yaml:"tps"`           // 每秒逻辑帧数
	Seed          int64        `yaml:"seed"`          // 粒子随机种子，0 表示按时间

	// Profiles 按效果名称覆盖粒子参数
	Profiles map[string]effect.Tuning `yaml:"profiles"`
}

// DefaultAppConfig 返回内置默认配置
func DefaultAppConfig() *AppConfig {
	return &AppConfig{
		Window: WindowConfig{
			Width:  800,
			Height: 600,
			Title:  "Backdrop",
		},
		Background:    "#1b2436",
		InitialEffect: effect.Snow.String(),
		AutoDispose:   true,
		TPS:           60,
	}
}

// LoadAppConfig 加载应用配置
//
// path 为空时读取内置的 DefaultConfigPath；以 "assets/" 或 "data/" 开头且存在于
// 嵌入资源中的路径从嵌入资源读取，其余路径从磁盘读取。
// 配置文件中缺失的字段保留默认值。
func LoadAppConfig(path string) (*AppConfig, error) {
	if path == "" {
		path = DefaultConfigPath
	}

	var (
		data []byte
		err  error
	)
	if embedded.Exists(path) {
		data, err = embedded.ReadFile(path)
	} else {
		data, err = os.ReadFile(path)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read app config %s: %w", path, err)
	}

	cfg, err := ParseAppConfig(data)
	if err != nil {
		return nil, fmt.Errorf("invalid app config in %s: %w", path, err)
	}
	return cfg, nil
}

// ParseAppConfig 解析 YAML 配置并验证
func ParseAppConfig(data []byte) (*AppConfig, error) {
	cfg := DefaultAppConfig()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse app config YAML: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate 验证配置的合法性
func (c *AppConfig) Validate() error {
	if c.Window.Width <= 0 || c.Window.Height <= 0 {
		return fmt.Errorf("window size must be positive, got %dx%d", c.Window.Width, c.Window.Height)
	}
	if c.TPS <= 0 {
		return fmt.Errorf("tps must be positive, got %d", c.TPS)
	}
	if _, err := ParseHexColor(c.Background); err != nil {
		return fmt.Errorf("background: %w", err)
	}
	if _, _, err := c.InitialVariant(); err != nil {
		return fmt.Errorf("initialEffect: %w", err)
	}
	for name, tuning := range c.Profiles {
		v, err := effect.ParseVariant(name)
		if err != nil {
			return fmt.Errorf("profiles: %w", err)
		}
		// 覆盖后的参数必须仍然合法
		cell, _, _ := effect.Profile(v)
		if err := tuning.Apply(cell).Validate(); err != nil {
			return fmt.Errorf("profiles.%s: %w", name, err)
		}
	}
	return nil
}

// InitialVariant 返回启动效果；ok 为 false 表示不启动任何效果
func (c *AppConfig) InitialVariant() (v effect.Variant, ok bool, err error) {
	name := strings.TrimSpace(c.InitialEffect)
	if name == "" || strings.EqualFold(name, EffectNone) {
		return 0, false, nil
	}
	v, err = effect.ParseVariant(name)
	if err != nil {
		return 0, false, err
	}
	return v, true, nil
}

// TuningFor 返回指定效果的参数覆盖，未配置时返回零值
func (c *AppConfig) TuningFor(v effect.Variant) effect.Tuning {
	for name, tuning := range c.Profiles {
		if parsed, err := effect.ParseVariant(name); err == nil && parsed == v {
			return tuning
		}
	}
	return effect.Tuning{}
}

// BackgroundColor 返回解析后的背景色，非法值返回黑色
func (c *AppConfig) BackgroundColor() color.RGBA {
	col, err := ParseHexColor(c.Background)
	if err != nil {
		return color.RGBA{A: 0xff}
	}
	return col
}

// ParseHexColor 解析 "#RRGGBB" 或 "#RRGGBBAA"（'#' 可省略）
func ParseHexColor(s string) (color.RGBA, error) {
	hex := strings.TrimPrefix(strings.TrimSpace(s), "#")
	if len(hex) != 6 && len(hex) != 8 {
		return color.RGBA{}, fmt.Errorf("invalid hex color %q", s)
	}
	n, err := strconv.ParseUint(hex, 16, 32)
	if err != nil {
		return color.RGBA{}, fmt.Errorf("invalid hex color %q: %w", s, err)
	}
	if len(hex) == 6 {
		n = n<<8 | 0xff
	}
	return color.RGBA{
		R: uint8(n >> 24),
		G: uint8(n >> 16),
		B: uint8(n >> 8),
		A: uint8(n),
	}, nil
}
