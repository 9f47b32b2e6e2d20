// Package app 提供背景效果应用的核心包装器
//
// 该包将初始化逻辑从 main 包提取出来，使其可以被桌面端和移动端共用。
// 桌面端通过 main.go 调用 NewApp()，移动端通过 mobile/mobile.go 调用。
//
// Controls:
//
//	S        - 切换到雪花
//	B        - 切换到气泡
//	Space    - 停止当前效果（已发射的粒子自然消失）
//	D        - 立即移除所有效果
//	R        - 重新运行当前效果
//	H        - 显示/隐藏状态栏
//	F11      - 切换全屏
//	Q/Escape - 退出
package app

import (
	"fmt"
	"image/color"
	"io"
	"log"

	"github.com/gonewx/backdrop/internal/asset"
	"github.com/gonewx/backdrop/internal/effect"
	"github.com/gonewx/backdrop/pkg/compositor"
	"github.com/gonewx/backdrop/pkg/config"
	"github.com/gonewx/backdrop/pkg/game"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/quasilyte/gdata/v2"
)

// AppName gdata 存储使用的应用名
const AppName = "backdrop"

// Config 定义应用启动配置
type Config struct {
	// Verbose 启用详细日志输出
	Verbose bool
	// ConfigPath 配置文件路径，为空则使用内置 data/backdrop.yaml
	ConfigPath string
	// Effect 指定启动效果（snow / bubble / none），为空则使用上次的选择或配置文件
	Effect string
}

// App 是应用的核心包装器，实现 ebiten.Game 接口
type App struct {
	cfg      *config.AppConfig
	tree     *compositor.LayerTree
	assets   effect.AssetSource
	settings *game.SettingsManager

	current        *effect.Handle   // 正在发射的效果
	currentVariant effect.Variant   // 最近一次运行的效果（R 键重启用）
	draining       []*effect.Handle // 已停止、等待粒子耗尽的效果

	background color.RGBA
	showHUD    bool
	verbose    bool

	pendingWindowSizeReset   bool // 延迟设置窗口大小标志
	windowSizeResetCountdown int  // 延迟帧数
}

// ErrQuit 用户请求退出
var ErrQuit = ebiten.Termination

// NewApp 创建并初始化应用
//
// 调用此函数前，必须先调用 embedded.Init() 初始化嵌入资源。
func NewApp(cfg Config) (*App, error) {
	// 配置日志输出
	if !cfg.Verbose {
		log.SetOutput(io.Discard)
		log.SetFlags(0)
	}

	appConfig, err := config.LoadAppConfig(cfg.ConfigPath)
	if err != nil {
		return nil, fmt.Errorf("配置加载失败: %w", err)
	}
	log.Printf("[Config] 窗口 %dx%d, tps=%d, 初始效果=%s",
		appConfig.Window.Width, appConfig.Window.Height, appConfig.TPS, appConfig.InitialEffect)

	// 贴图缺失不是致命错误，粒子会透明渲染
	resourceManager := game.NewResourceManager()
	if err := resourceManager.LoadResourceConfig(game.DefaultResourceConfigPath); err != nil {
		log.Printf("[App] Warning: %v (particles will render without textures)", err)
	} else if err := resourceManager.LoadResourceGroup("effects"); err != nil {
		log.Printf("[App] Warning: Failed to preload effects group: %v", err)
	}

	// 设置存储失败时降级为仅内存
	var gdataManager *gdata.Manager
	if m, err := gdata.Open(gdata.Config{AppName: AppName}); err != nil {
		log.Printf("[App] Warning: gdata unavailable: %v (settings will not persist)", err)
	} else {
		gdataManager = m
	}

	a := newApp(appConfig, asset.NewBubbleSource(resourceManager), game.NewSettingsManager(gdataManager))
	a.verbose = cfg.Verbose
	ebiten.SetTPS(appConfig.TPS)

	v, ok, err := a.initialVariant(cfg.Effect)
	if err != nil {
		return nil, err
	}
	if ok {
		if err := a.Start(v); err != nil {
			return nil, err
		}
	}
	return a, nil
}

// newApp 组装应用，不读取任何外部资源
func newApp(cfg *config.AppConfig, assets effect.AssetSource, settings *game.SettingsManager) *App {
	bounds := effect.Rect{Width: float64(cfg.Window.Width), Height: float64(cfg.Window.Height)}
	return &App{
		cfg:        cfg,
		tree:       compositor.NewLayerTree(bounds, compositor.Options{Seed: cfg.Seed}),
		assets:     assets,
		settings:   settings,
		background: cfg.BackgroundColor(),
		showHUD:    true,
	}
}

// initialVariant 决定启动效果
// 优先级：命令行参数 > 上次保存的选择 > 配置文件
func (a *App) initialVariant(override string) (effect.Variant, bool, error) {
	if override != "" {
		c := *a.cfg
		c.InitialEffect = override
		v, ok, err := c.InitialVariant()
		if err != nil {
			return 0, false, fmt.Errorf("--effect: %w", err)
		}
		return v, ok, nil
	}

	if a.settings != nil {
		if !a.settings.GetSettings().EffectsEnabled {
			log.Printf("[App] 上次退出时效果已停止，不运行初始效果")
			return 0, false, nil
		}
		if v, ok := a.settings.LastVariant(); ok {
			log.Printf("[App] 恢复上次的效果: %s", v)
			return v, true, nil
		}
	}
	return a.cfg.InitialVariant()
}

// Start 切换到效果 v：当前效果先停止（粒子自然消失），再运行新的效果
func (a *App) Start(v effect.Variant) error {
	a.stopCurrent()

	h, err := effect.Select(v).
		WithTuning(a.cfg.TuningFor(v)).
		WithAssets(a.assets).
		ReadyFor(a.tree).
		Run()
	if err != nil {
		return fmt.Errorf("运行效果 %s 失败: %w", v, err)
	}

	a.current = h
	a.currentVariant = v
	if a.settings != nil {
		a.settings.SetLastEffect(v)
		a.settings.SetEffectsEnabled(true)
		a.saveSettings()
	}
	return nil
}

// Stop 停止当前效果
func (a *App) Stop() {
	if a.current == nil {
		return
	}
	a.stopCurrent()
	if a.settings != nil {
		a.settings.SetEffectsEnabled(false)
		a.saveSettings()
	}
}

// stopCurrent 停止当前效果并放入等待队列
func (a *App) stopCurrent() {
	if a.current == nil {
		return
	}
	if err := a.current.Stop(); err != nil {
		log.Printf("[App] Warning: %v", err)
	}
	a.draining = append(a.draining, a.current)
	a.current = nil
}

// DisposeAll 立即移除所有效果（包括正在消失的）
func (a *App) DisposeAll() {
	a.stopCurrent()
	for _, h := range a.draining {
		if err := h.Dispose(); err != nil {
			log.Printf("[App] Warning: %v", err)
		}
	}
	a.draining = nil
}

// Restart 重新运行最近一次的效果
func (a *App) Restart() error {
	if a.currentVariant == 0 {
		return nil
	}
	return a.Start(a.currentVariant)
}

// Step 推进 dt 秒：更新图层树，并在 autoDispose 开启时移除粒子已耗尽的效果
func (a *App) Step(dt float64) {
	a.tree.Update(dt)

	if !a.cfg.AutoDispose {
		return
	}
	now := a.tree.RenderTime()
	alive := a.draining[:0]
	for _, h := range a.draining {
		if deadline, ok := h.DrainDeadline(); ok && now < deadline {
			alive = append(alive, h)
			continue
		}
		if err := h.Dispose(); err != nil {
			// 移除失败时保留，下一帧重试
			log.Printf("[App] Warning: %v", err)
			alive = append(alive, h)
			continue
		}
		log.Printf("[App] 自动移除已耗尽的效果 %s (t=%.2f)", h.Descriptor().Variant(), now)
	}
	// 清掉尾部残留的指针
	for i := len(alive); i < len(a.draining); i++ {
		a.draining[i] = nil
	}
	a.draining = alive
}

// Update 更新逻辑
// 每个 tick 调用一次（默认每秒 60 次）
func (a *App) Update() error {
	// 延迟设置窗口大小（退出全屏后需要等待几帧才能正确设置）
	if a.pendingWindowSizeReset {
		a.windowSizeResetCountdown--
		if a.windowSizeResetCountdown <= 0 {
			ebiten.SetWindowSize(a.cfg.Window.Width, a.cfg.Window.Height)
			log.Printf("[App] Delayed SetWindowSize(%d, %d)", a.cfg.Window.Width, a.cfg.Window.Height)
			a.pendingWindowSizeReset = false
		}
	}

	if err := a.handleInput(); err != nil {
		return err
	}

	a.Step(1.0 / float64(a.cfg.TPS))
	return nil
}

// handleInput 处理键盘输入
func (a *App) handleInput() error {
	switch {
	case inpututil.IsKeyJustPressed(ebiten.KeyQ), inpututil.IsKeyJustPressed(ebiten.KeyEscape):
		return ErrQuit
	case inpututil.IsKeyJustPressed(ebiten.KeyS):
		if err := a.Start(effect.Snow); err != nil {
			log.Printf("[App] %v", err)
		}
	case inpututil.IsKeyJustPressed(ebiten.KeyB):
		if err := a.Start(effect.Bubble); err != nil {
			log.Printf("[App] %v", err)
		}
	case inpututil.IsKeyJustPressed(ebiten.KeySpace):
		a.Stop()
	case inpututil.IsKeyJustPressed(ebiten.KeyD):
		a.DisposeAll()
	case inpututil.IsKeyJustPressed(ebiten.KeyR):
		if err := a.Restart(); err != nil {
			log.Printf("[App] %v", err)
		}
	case inpututil.IsKeyJustPressed(ebiten.KeyH):
		a.showHUD = !a.showHUD
	case inpututil.IsKeyJustPressed(ebiten.KeyF11):
		a.toggleFullscreen()
	}
	return nil
}

// toggleFullscreen F11 切换全屏
func (a *App) toggleFullscreen() {
	fullscreen := !ebiten.IsFullscreen()
	if !fullscreen {
		// 退出全屏
		ebiten.SetFullscreen(false)
		if ebiten.IsWindowMaximized() || ebiten.IsWindowMinimized() {
			ebiten.RestoreWindow()
		}
		// 延迟几帧后设置窗口大小，让窗口管理器有时间处理
		a.pendingWindowSizeReset = true
		a.windowSizeResetCountdown = 3
		log.Printf("[App] Exit fullscreen, will reset window size in 3 frames")
	} else {
		ebiten.SetFullscreen(true)
	}
	if a.settings != nil {
		a.settings.SetFullscreen(fullscreen)
		a.saveSettings()
	}
}

// Draw 绘制画面
// 每帧调用一次
func (a *App) Draw(screen *ebiten.Image) {
	screen.Fill(a.background)
	a.tree.Draw(screen)

	if a.showHUD {
		ebitenutil.DebugPrintAt(screen, a.status(), 10, 10)
		ebitenutil.DebugPrintAt(screen, "[S]now [B]ubble [Space]stop [D]ispose [R]estart [H]ud [Q]uit", 10, 30)
	}
}

// status 状态栏文本
func (a *App) status() string {
	name := "none"
	if a.current != nil {
		name = a.current.Descriptor().Variant().String()
	}
	return fmt.Sprintf("Effect: %s  Layers: %d  Particles: %d  FPS: %.0f",
		name, len(a.tree.Sublayers()), a.tree.TotalParticles(), ebiten.ActualFPS())
}

// DrawFinalScreen 实现 FinalScreenDrawer 接口
// 用于控制全屏时的缩放和 letterbox 颜色
func (a *App) DrawFinalScreen(screen ebiten.FinalScreen, offscreen *ebiten.Image, geoM ebiten.GeoM) {
	// 先填充黑色背景（全屏时左右两边为黑色）
	screen.Fill(color.Black)
	op := &ebiten.DrawImageOptions{}
	op.GeoM = geoM
	op.Filter = ebiten.FilterLinear
	screen.DrawImage(offscreen, op)
}

// Layout 返回逻辑屏幕尺寸
// 此尺寸独立于实际窗口大小，Ebitengine 会自动处理缩放
func (a *App) Layout(outsideWidth, outsideHeight int) (int, int) {
	return a.cfg.Window.Width, a.cfg.Window.Height
}

// AppConfig 返回已加载的配置
func (a *App) AppConfig() *config.AppConfig {
	return a.cfg
}

// Settings 返回设置管理器
func (a *App) Settings() *game.SettingsManager {
	return a.settings
}

// Close 关闭应用：移除所有效果并销毁图层树，保存设置
func (a *App) Close() {
	a.DisposeAll()
	a.tree.Close()
	a.saveSettings()
}

// IsVerbose 返回是否启用了详细日志
func (a *App) IsVerbose() bool {
	return a.verbose
}

func (a *App) saveSettings() {
	if a.settings == nil {
		return
	}
	if err := a.settings.Save(); err != nil {
		log.Printf("[App] Warning: %v", err)
	}
}
