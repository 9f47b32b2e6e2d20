package game

import (
	"fmt"
	"log"

	"github.com/gonewx/backdrop/internal/effect"
	"github.com/quasilyte/gdata/v2"
	"gopkg.in/yaml.v3"
)

// BackdropSettings 持久化的用户设置
type BackdropSettings struct {
	LastEffect     string `yaml:"lastEffect"`     // 上次运行的效果（snow / bubble），空表示未记录
	EffectsEnabled bool   `yaml:"effectsEnabled"` // 启动时是否运行效果
	Fullscreen     bool   `yaml:"fullscreen"`     // 启动时是否全屏
}

// DefaultSettings 返回默认设置
func DefaultSettings() *BackdropSettings {
	return &BackdropSettings{
		EffectsEnabled: true,
	}
}

// SettingsManager 设置管理器
// 负责设置的加载、保存和内存管理
type SettingsManager struct {
	gdataManager *gdata.Manager    // gdata 跨平台存储管理器，可为 nil（降级模式）
	settings     *BackdropSettings // 当前设置
}

// 存储路径常量
const (
	settingsObject   = "settings"
	settingsProperty = "backdrop"
)

// NewSettingsManager 创建新的设置管理器实例
//
// 参数：
//   - gdataManager: gdata 跨平台存储管理器，可为 nil（降级模式，仅内存设置）
//
// 加载失败不影响创建，使用默认设置。
func NewSettingsManager(gdataManager *gdata.Manager) *SettingsManager {
	sm := &SettingsManager{
		gdataManager: gdataManager,
		settings:     DefaultSettings(),
	}

	if err := sm.Load(); err != nil {
		log.Printf("[SettingsManager] Warning: Failed to load settings: %v (using defaults)", err)
	}
	return sm
}

// Load 从 gdata 加载设置
//
// 如果 gdataManager 为 nil 或文件不存在，使用默认设置
func (sm *SettingsManager) Load() error {
	// 降级模式：无法持久化，使用默认设置
	if sm.gdataManager == nil {
		sm.settings = DefaultSettings()
		return nil
	}

	if !sm.gdataManager.ObjectPropExists(settingsObject, settingsProperty) {
		sm.settings = DefaultSettings()
		return nil
	}

	data, err := sm.gdataManager.LoadObjectProp(settingsObject, settingsProperty)
	if err != nil {
		sm.settings = DefaultSettings()
		return fmt.Errorf("failed to load settings: %w", err)
	}

	// 缺失字段保留默认值
	loaded := DefaultSettings()
	if err := yaml.Unmarshal(data, loaded); err != nil {
		sm.settings = DefaultSettings()
		return fmt.Errorf("failed to unmarshal settings: %w", err)
	}

	sm.settings = loaded
	log.Printf("[SettingsManager] Settings loaded successfully (lastEffect=%q)", loaded.LastEffect)
	return nil
}

// Save 保存设置到 gdata
//
// 如果 gdataManager 为 nil，返回 nil（降级模式，不报错）
func (sm *SettingsManager) Save() error {
	if sm.gdataManager == nil {
		return nil
	}

	data, err := yaml.Marshal(sm.settings)
	if err != nil {
		return fmt.Errorf("failed to marshal settings: %w", err)
	}

	if err := sm.gdataManager.SaveObjectProp(settingsObject, settingsProperty, data); err != nil {
		return fmt.Errorf("failed to save settings: %w", err)
	}

	log.Printf("[SettingsManager] Settings saved successfully")
	return nil
}

// GetSettings 获取当前设置
func (sm *SettingsManager) GetSettings() *BackdropSettings {
	return sm.settings
}

// LastVariant 返回上次运行的效果；未记录或记录无法识别时 ok 为 false
func (sm *SettingsManager) LastVariant() (v effect.Variant, ok bool) {
	if sm.settings.LastEffect == "" {
		return 0, false
	}
	v, err := effect.ParseVariant(sm.settings.LastEffect)
	if err != nil {
		log.Printf("[SettingsManager] Warning: ignoring saved effect: %v", err)
		return 0, false
	}
	return v, true
}

// SetLastEffect 记录最近运行的效果
// 注意：仅修改内存中的设置，需调用 Save() 方法持久化
func (sm *SettingsManager) SetLastEffect(v effect.Variant) {
	sm.settings.LastEffect = v.String()
}

// SetEffectsEnabled 设置启动时是否运行效果
// 注意：仅修改内存中的设置，需调用 Save() 方法持久化
func (sm *SettingsManager) SetEffectsEnabled(enabled bool) {
	sm.settings.EffectsEnabled = enabled
}

// SetFullscreen 设置全屏模式
// 注意：仅修改内存中的设置，需调用 Save() 方法持久化
func (sm *SettingsManager) SetFullscreen(enabled bool) {
	sm.settings.Fullscreen = enabled
}
