package app

import (
	"fmt"
	"runtime"
	"sync"
	"time"

	"github.com/go-gl/glfw/v3.3/glfw"
	"github.com/rajveermalviya/go-webgpu/wgpu"

	"spriteview/internal/assets"
	"spriteview/internal/camera"
	"spriteview/internal/config"
	"spriteview/internal/renderer"
	"spriteview/internal/scene"
	"spriteview/pkg/atlas"
)

const KeyPanSpeed = 10.0

type App struct {
	window   *glfw.Window
	instance *wgpu.Instance
	surface  *wgpu.Surface
	adapter  *wgpu.Adapter
	device   *wgpu.Device
	queue    *wgpu.Queue

	renderer *renderer.Renderer
	camera   *camera.Camera
	scene    *scene.Scene
	cache    *assets.Cache

	keys   map[glfw.Key]bool
	keysMu sync.RWMutex

	width, height int
}

func New() (*App, error) {
	runtime.LockOSThread()

	cfg := config.Get()

	if err := glfw.Init(); err != nil {
		return nil, fmt.Errorf("GLFW init failed: %w", err)
	}

	glfw.WindowHint(glfw.ClientAPI, glfw.NoAPI)
	glfw.WindowHint(glfw.Resizable, glfw.True)
	glfw.WindowHint(glfw.CocoaRetinaFramebuffer, glfw.True)

	window, err := glfw.CreateWindow(cfg.Window.Width, cfg.Window.Height, cfg.Window.Title, nil, nil)
	if err != nil {
		glfw.Terminate()
		return nil, fmt.Errorf("window creation failed: %w", err)
	}

	app := &App{
		window: window,
		width:  cfg.Window.Width,
		height: cfg.Window.Height,
		keys:   make(map[glfw.Key]bool),
	}

	if err := app.initWebGPU(); err != nil {
		window.Destroy()
		glfw.Terminate()
		return nil, err
	}

	cache, err := assets.NewCache(cfg.Assets.CacheDir, 2)
	if err != nil {
		return nil, fmt.Errorf("asset cache creation failed: %w", err)
	}
	app.cache = cache

	// Start remote downloads while the GPU pipelines come up; loadTextures
	// then reads from disk or joins the in-flight fetch.
	cache.Prefetch(cfg.Assets.Atlas, cfg.Assets.Background)

	app.camera = camera.NewCamera(0, 0, cfg.World.Width, cfg.World.Height, cfg.Window.Width, cfg.Window.Height)

	app.renderer, err = renderer.NewRenderer(app.adapter, app.device, app.queue, app.surface, uint32(cfg.Window.Width), uint32(cfg.Window.Height))
	if err != nil {
		return nil, fmt.Errorf("renderer creation failed: %w", err)
	}

	app.loadTextures(cfg)
	app.scene = buildScene(cfg)

	app.setupCallbacks()

	return app, nil
}

// loadTextures binds the configured atlas and background images. Failures
// leave the renderer's placeholders in place.
func (app *App) loadTextures(cfg *config.Config) {
	if data, err := app.cache.Load(cfg.Assets.Atlas); err != nil {
		fmt.Printf("Atlas load error (%s): %v\n", cfg.Assets.Atlas, err)
	} else if err := app.renderer.LoadAtlas(data); err != nil {
		fmt.Printf("Atlas upload error: %v\n", err)
	}

	if data, err := app.cache.Load(cfg.Assets.Background); err != nil {
		fmt.Printf("Background load error (%s): %v\n", cfg.Assets.Background, err)
	} else if err := app.renderer.LoadBackground(data); err != nil {
		fmt.Printf("Background upload error: %v\n", err)
	}
}

// buildScene spawns the configured number of falling animated actors,
// spread across the top of the world, each animating over the top row of
// the atlas grid.
func buildScene(cfg *config.Config) *scene.Scene {
	s := scene.New()

	grid := atlas.Grid{Cols: cfg.Assets.AtlasCols, Rows: cfg.Assets.AtlasRows}
	fmt.Printf("Building scene: %d actors over %s atlas\n", cfg.Scene.ActorCount, grid)
	frames := grid.Row(0)
	size := float32(cfg.Scene.SpriteSize)
	worldW := float32(cfg.World.Width)
	worldH := float32(cfg.World.Height)

	for i := 0; i < cfg.Scene.ActorCount; i++ {
		x := worldW * float32(i) / float32(cfg.Scene.ActorCount)
		region := [4]float32{x, worldH, size, size}
		anim := scene.NewAnimation(frames, cfg.Scene.AnimationRate)
		actor := scene.NewActor(region, anim, float32(cfg.Scene.ActorSpeed), worldW, worldH)
		actor.ResetY()
		s.AddActor(actor)
	}

	return s
}

func (app *App) initWebGPU() error {
	app.instance = wgpu.CreateInstance(&wgpu.InstanceDescriptor{
		Backends: wgpu.InstanceBackend_Metal,
	})
	if app.instance == nil {
		return fmt.Errorf("failed to create WebGPU instance")
	}

	app.surface = CreateSurface(app.instance, app.window)
	if app.surface == nil {
		return fmt.Errorf("surface creation failed")
	}

	var err error
	app.adapter, err = app.instance.RequestAdapter(&wgpu.RequestAdapterOptions{
		CompatibleSurface:    app.surface,
		PowerPreference:      wgpu.PowerPreference_HighPerformance,
		ForceFallbackAdapter: false,
	})
	if err != nil {
		// Try without surface constraint
		fmt.Println("Trying adapter without surface constraint...")
		app.adapter, err = app.instance.RequestAdapter(&wgpu.RequestAdapterOptions{
			PowerPreference: wgpu.PowerPreference_HighPerformance,
		})
		if err != nil {
			return fmt.Errorf("adapter request failed: %w", err)
		}
	}

	props := app.adapter.GetProperties()
	fmt.Printf("GPU: %s (%s)\n", props.Name, props.DriverDescription)

	app.device, err = app.adapter.RequestDevice(&wgpu.DeviceDescriptor{
		Label: "SpriteViewDevice",
	})
	if err != nil {
		return fmt.Errorf("device request failed: %w", err)
	}

	app.queue = app.device.GetQueue()
	return nil
}

func (app *App) setupCallbacks() {
	app.window.SetFramebufferSizeCallback(func(w *glfw.Window, width, height int) {
		app.width = width
		app.height = height
		app.camera.SetViewport(width, height)
		app.renderer.Resize(uint32(width), uint32(height))
	})

	app.window.SetMouseButtonCallback(func(w *glfw.Window, button glfw.MouseButton, action glfw.Action, mods glfw.ModifierKey) {
		if button == glfw.MouseButtonLeft {
			x, y := w.GetCursorPos()
			if action == glfw.Press {
				app.camera.StartDrag(x, y)
			} else {
				app.camera.EndDrag()
			}
		}
	})

	app.window.SetCursorPosCallback(func(w *glfw.Window, x, y float64) {
		if app.camera.IsDragging() {
			app.camera.Drag(x, y)
		}
	})

	app.window.SetScrollCallback(func(w *glfw.Window, xoff, yoff float64) {
		x, y := w.GetCursorPos()
		if yoff > 0 {
			app.camera.ZoomAtPoint(1, x, y)
		} else if yoff < 0 {
			app.camera.ZoomAtPoint(-1, x, y)
		}
	})

	app.window.SetKeyCallback(func(w *glfw.Window, key glfw.Key, scancode int, action glfw.Action, mods glfw.ModifierKey) {
		app.keysMu.Lock()
		if action == glfw.Press {
			app.keys[key] = true
		} else if action == glfw.Release {
			app.keys[key] = false
		}
		app.keysMu.Unlock()

		// Handle single-press actions (not held)
		if action == glfw.Press {
			switch key {
			case glfw.KeyEscape:
				w.SetShouldClose(true)
			case glfw.KeySpace:
				app.camera.ZoomOut()
			case glfw.KeyLeftShift, glfw.KeyRightShift:
				app.camera.ZoomIn()
			case glfw.KeyEqual:
				config.AdjustActorSpeed(0.5)
			case glfw.KeyMinus:
				config.AdjustActorSpeed(-0.5)
			case glfw.Key0:
				config.SetActorSpeed(config.DefaultConfig().Scene.ActorSpeed)
			}
		}
	})
}

func (app *App) processInput() {
	app.keysMu.RLock()
	defer app.keysMu.RUnlock()

	panX, panY := 0.0, 0.0

	if app.keys[glfw.KeyW] || app.keys[glfw.KeyUp] {
		panY += KeyPanSpeed
	}
	if app.keys[glfw.KeyS] || app.keys[glfw.KeyDown] {
		panY -= KeyPanSpeed
	}
	if app.keys[glfw.KeyA] || app.keys[glfw.KeyLeft] {
		panX += KeyPanSpeed
	}
	if app.keys[glfw.KeyD] || app.keys[glfw.KeyRight] {
		panX -= KeyPanSpeed
	}

	if panX != 0 || panY != 0 {
		app.camera.Pan(panX, panY)
	}
}

func (app *App) Run() error {
	cfg := config.Get()
	lastTime := time.Now()
	frames := 0

	for !app.window.ShouldClose() {
		glfw.PollEvents()
		app.processInput()

		speed := float32(cfg.Scene.ActorSpeed)
		for _, actor := range app.scene.Actors() {
			actor.Speed = speed
		}
		app.scene.Tick()

		var err error
		if config.CullingEnabled() {
			err = app.renderer.Render(app.camera.GPU(), app.scene.Sprites(app.camera.VisibleBound()))
		} else {
			err = app.renderer.Render(app.camera.GPU(), app.scene.SpritesAll())
		}
		if err != nil {
			fmt.Printf("Render error: %v\n", err)
		}

		frames++
		if cfg.Features.ShowFPSTitle && time.Since(lastTime) >= time.Second {
			app.window.SetTitle(fmt.Sprintf("%s | Sprites: %d | FPS: %d", cfg.Window.Title, app.scene.Count(), frames))
			frames = 0
			lastTime = time.Now()
		}
	}

	return nil
}

func (app *App) Cleanup() {
	if app.renderer != nil {
		app.renderer.Release()
	}
	if app.cache != nil {
		app.cache.Close()
	}
	if app.queue != nil {
		app.queue.Release()
	}
	if app.device != nil {
		app.device.Release()
	}
	if app.adapter != nil {
		app.adapter.Release()
	}
	if app.surface != nil {
		app.surface.Release()
	}
	if app.instance != nil {
		app.instance.Release()
	}
	if app.window != nil {
		app.window.Destroy()
	}
	glfw.Terminate()
}
