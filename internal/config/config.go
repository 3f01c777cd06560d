package config

import (
	"encoding/json"
	"os"
	"sync"
)

// Config holds application configuration and feature flags
type Config struct {
	Window Window `json:"window"`

	// World is the extent of the sprite world in world units.
	World World `json:"world"`

	// Assets locates the images bound to the two passes.
	Assets Assets `json:"assets"`

	// Scene controls the demo scene contents.
	Scene Scene `json:"scene"`

	Features Features `json:"features"`
}

// Window contains the initial window parameters
type Window struct {
	Width  int    `json:"width"`
	Height int    `json:"height"`
	Title  string `json:"title"`
}

// World contains the world-space extent
type World struct {
	Width  float64 `json:"width"`
	Height float64 `json:"height"`
}

// Assets contains image locations (local paths or http(s) URLs)
type Assets struct {
	Atlas      string `json:"atlas"`
	AtlasCols  int    `json:"atlas_cols"`
	AtlasRows  int    `json:"atlas_rows"`
	Background string `json:"background"`
	CacheDir   string `json:"cache_dir"`
}

// Scene contains demo scene parameters
type Scene struct {
	// ActorCount is how many falling animated actors to spawn
	ActorCount int `json:"actor_count"`

	// ActorSpeed is the per-tick fall speed in world units
	ActorSpeed float64 `json:"actor_speed"`

	// AnimationRate is how many ticks each animation frame holds
	AnimationRate int `json:"animation_rate"`

	// SpriteSize is the actor world extent per axis
	SpriteSize float64 `json:"sprite_size"`
}

// Features contains feature flags for development
type Features struct {
	// ShowFPSTitle updates the window title with the frame rate
	ShowFPSTitle bool `json:"show_fps_title"`

	// EnableCulling drops off-window sprites before upload
	EnableCulling bool `json:"enable_culling"`
}

var (
	instance *Config
	once     sync.Once
	mu       sync.RWMutex
)

// DefaultConfig returns the default configuration
func DefaultConfig() *Config {
	return &Config{
		Window: Window{
			Width:  1280,
			Height: 720,
			Title:  "Sprite Viewer",
		},
		World: World{
			Width:  1024,
			Height: 768,
		},
		Assets: Assets{
			Atlas:      "assets/atlas.png",
			AtlasCols:  2,
			AtlasRows:  2,
			Background: "assets/background.png",
			CacheDir:   ".asset_cache",
		},
		Scene: Scene{
			ActorCount:    8,
			ActorSpeed:    2.0,
			AnimationRate: 6,
			SpriteSize:    64.0,
		},
		Features: Features{
			ShowFPSTitle:  true,
			EnableCulling: true,
		},
	}
}

// clamp forces file-supplied values back into usable ranges. Grid
// dimensions and the window extent are divisors downstream and must stay
// positive.
func (c *Config) clamp() {
	if c.Window.Width < 1 {
		c.Window.Width = 1
	}
	if c.Window.Height < 1 {
		c.Window.Height = 1
	}
	if c.Assets.AtlasCols < 1 {
		c.Assets.AtlasCols = 1
	}
	if c.Assets.AtlasRows < 1 {
		c.Assets.AtlasRows = 1
	}
	if c.Scene.ActorCount < 0 {
		c.Scene.ActorCount = 0
	}
	if c.Scene.ActorSpeed < 0 {
		c.Scene.ActorSpeed = 0
	}
	if c.Scene.AnimationRate < 0 {
		c.Scene.AnimationRate = 0
	}
	if c.Scene.SpriteSize <= 0 {
		c.Scene.SpriteSize = 1
	}
}

// Get returns the global configuration instance
func Get() *Config {
	once.Do(func() {
		instance = DefaultConfig()
		// Try to load from file
		if data, err := os.ReadFile("config.json"); err == nil {
			json.Unmarshal(data, instance)
		}
		instance.clamp()
	})
	return instance
}

// Load loads configuration from a file
func Load(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return err
	}

	mu.Lock()
	defer mu.Unlock()

	if instance == nil {
		instance = DefaultConfig()
	}

	if err := json.Unmarshal(data, instance); err != nil {
		return err
	}
	instance.clamp()
	return nil
}

// Save saves configuration to a file
func Save(path string) error {
	mu.RLock()
	defer mu.RUnlock()

	if instance == nil {
		instance = DefaultConfig()
	}

	data, err := json.MarshalIndent(instance, "", "  ")
	if err != nil {
		return err
	}

	return os.WriteFile(path, data, 0644)
}

// SetActorSpeed sets the fall speed of demo actors
func SetActorSpeed(speed float64) {
	mu.Lock()
	defer mu.Unlock()

	if instance == nil {
		instance = DefaultConfig()
	}

	if speed < 0 {
		speed = 0
	}
	instance.Scene.ActorSpeed = speed
}

// AdjustActorSpeed adjusts the actor fall speed by a delta
func AdjustActorSpeed(delta float64) float64 {
	mu.Lock()
	defer mu.Unlock()

	if instance == nil {
		instance = DefaultConfig()
	}

	instance.Scene.ActorSpeed += delta
	if instance.Scene.ActorSpeed < 0 {
		instance.Scene.ActorSpeed = 0
	}

	return instance.Scene.ActorSpeed
}

// CullingEnabled reports whether view culling is on
func CullingEnabled() bool {
	mu.RLock()
	defer mu.RUnlock()

	if instance == nil {
		return true
	}
	return instance.Features.EnableCulling
}
