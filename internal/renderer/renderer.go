package renderer

import (
	"bytes"
	"fmt"
	"image"
	"image/color"
	"image/draw"
	_ "image/png"
	"unsafe"

	"github.com/rajveermalviya/go-webgpu/wgpu"

	"spriteview/internal/shading"
)

const initialSpriteCapacity = 64

// Texture holds GPU resources for a single bound image.
type Texture struct {
	Texture *wgpu.Texture
	View    *wgpu.TextureView
}

// Renderer owns the two render pipelines of the sprite program and the
// resources bound to them: the camera uniform and sprite storage buffer for
// the sprite pass, and a texture/sampler pair per pass.
//
// Binding contract:
//
//	sprite pass      group 0: camera uniform (0), sprite storage (1)
//	                 group 1: atlas texture (0), atlas sampler (1)
//	background pass  group 0: background texture (0), background sampler (1)
type Renderer struct {
	device          *wgpu.Device
	queue           *wgpu.Queue
	surface         *wgpu.Surface
	adapter         *wgpu.Adapter
	swapChain       *wgpu.SwapChain
	swapChainFormat wgpu.TextureFormat

	spritePipeline     *wgpu.RenderPipeline
	backgroundPipeline *wgpu.RenderPipeline
	spriteDataLayout   *wgpu.BindGroupLayout
	textureLayout      *wgpu.BindGroupLayout
	sampler            *wgpu.Sampler

	cameraBuffer        *wgpu.Buffer
	spriteBuffer        *wgpu.Buffer
	spriteCapacity      int
	spriteDataBindGroup *wgpu.BindGroup

	atlas               *Texture
	atlasBindGroup      *wgpu.BindGroup
	background          *Texture
	backgroundBindGroup *wgpu.BindGroup

	width  uint32
	height uint32
}

// NewRenderer creates a renderer on an already-initialized device/surface
// pair. Both passes start with placeholder textures; call LoadAtlas and
// LoadBackground to bind real images.
func NewRenderer(adapter *wgpu.Adapter, device *wgpu.Device, queue *wgpu.Queue, surface *wgpu.Surface, width, height uint32) (*Renderer, error) {
	r := &Renderer{
		adapter: adapter,
		device:  device,
		queue:   queue,
		surface: surface,
		width:   width,
		height:  height,
	}

	if err := r.init(); err != nil {
		return nil, err
	}

	return r, nil
}

func (r *Renderer) init() error {
	r.swapChainFormat = r.surface.GetPreferredFormat(r.adapter)

	var err error
	r.swapChain, err = r.device.CreateSwapChain(r.surface, &wgpu.SwapChainDescriptor{
		Usage:       wgpu.TextureUsage_RenderAttachment,
		Format:      r.swapChainFormat,
		Width:       r.width,
		Height:      r.height,
		PresentMode: wgpu.PresentMode_Fifo,
	})
	if err != nil {
		return fmt.Errorf("swap chain creation failed: %w", err)
	}

	shader, err := r.device.CreateShaderModule(&wgpu.ShaderModuleDescriptor{
		Label:          "sprite_shader",
		WGSLDescriptor: &wgpu.ShaderModuleWGSLDescriptor{Code: SpriteShader},
	})
	if err != nil {
		return fmt.Errorf("shader creation failed: %w", err)
	}
	defer shader.Release()

	r.sampler, err = r.device.CreateSampler(&wgpu.SamplerDescriptor{
		AddressModeU:   wgpu.AddressMode_ClampToEdge,
		AddressModeV:   wgpu.AddressMode_ClampToEdge,
		AddressModeW:   wgpu.AddressMode_ClampToEdge,
		MagFilter:      wgpu.FilterMode_Linear,
		MinFilter:      wgpu.FilterMode_Linear,
		MipmapFilter:   wgpu.MipmapFilterMode_Nearest,
		MaxAnisotrophy: 1,
	})
	if err != nil {
		return fmt.Errorf("sampler creation failed: %w", err)
	}

	// Camera uniform + sprite storage, vertex stage only.
	r.spriteDataLayout, err = r.device.CreateBindGroupLayout(&wgpu.BindGroupLayoutDescriptor{
		Label: "sprite_data_bind_group_layout",
		Entries: []wgpu.BindGroupLayoutEntry{
			{
				Binding:    0,
				Visibility: wgpu.ShaderStage_Vertex,
				Buffer:     wgpu.BufferBindingLayout{Type: wgpu.BufferBindingType_Uniform},
			},
			{
				Binding:    1,
				Visibility: wgpu.ShaderStage_Vertex,
				Buffer:     wgpu.BufferBindingLayout{Type: wgpu.BufferBindingType_ReadOnlyStorage},
			},
		},
	})
	if err != nil {
		return fmt.Errorf("sprite data bind group layout creation failed: %w", err)
	}

	// Texture + sampler, fragment stage only. Shared by both passes: it is
	// group 1 of the sprite pipeline and group 0 of the background pipeline.
	r.textureLayout, err = r.device.CreateBindGroupLayout(&wgpu.BindGroupLayoutDescriptor{
		Label: "texture_bind_group_layout",
		Entries: []wgpu.BindGroupLayoutEntry{
			{
				Binding:    0,
				Visibility: wgpu.ShaderStage_Fragment,
				Texture: wgpu.TextureBindingLayout{
					SampleType:    wgpu.TextureSampleType_Float,
					ViewDimension: wgpu.TextureViewDimension_2D,
				},
			},
			{
				Binding:    1,
				Visibility: wgpu.ShaderStage_Fragment,
				Sampler:    wgpu.SamplerBindingLayout{Type: wgpu.SamplerBindingType_Filtering},
			},
		},
	})
	if err != nil {
		return fmt.Errorf("texture bind group layout creation failed: %w", err)
	}

	spriteLayout, err := r.device.CreatePipelineLayout(&wgpu.PipelineLayoutDescriptor{
		Label:            "sprite_pipeline_layout",
		BindGroupLayouts: []*wgpu.BindGroupLayout{r.spriteDataLayout, r.textureLayout},
	})
	if err != nil {
		return fmt.Errorf("sprite pipeline layout creation failed: %w", err)
	}
	defer spriteLayout.Release()

	backgroundLayout, err := r.device.CreatePipelineLayout(&wgpu.PipelineLayoutDescriptor{
		Label:            "background_pipeline_layout",
		BindGroupLayouts: []*wgpu.BindGroupLayout{r.textureLayout},
	})
	if err != nil {
		return fmt.Errorf("background pipeline layout creation failed: %w", err)
	}
	defer backgroundLayout.Release()

	r.spritePipeline, err = r.createPipeline("sprite_pipeline", shader, spriteLayout, "vs_sprite", "fs_sprite")
	if err != nil {
		return err
	}
	r.backgroundPipeline, err = r.createPipeline("background_pipeline", shader, backgroundLayout, "vs_background", "fs_background")
	if err != nil {
		return err
	}

	r.cameraBuffer, err = r.device.CreateBuffer(&wgpu.BufferDescriptor{
		Label: "camera_uniform",
		Size:  uint64(unsafe.Sizeof(shading.Camera{})),
		Usage: wgpu.BufferUsage_Uniform | wgpu.BufferUsage_CopyDst,
	})
	if err != nil {
		return fmt.Errorf("camera buffer creation failed: %w", err)
	}

	if err := r.growSpriteBuffer(initialSpriteCapacity); err != nil {
		return err
	}

	if err := r.setAtlasImage(placeholderImage(color.RGBA{R: 255, G: 255, B: 255, A: 255})); err != nil {
		return fmt.Errorf("atlas placeholder creation failed: %w", err)
	}
	if err := r.setBackgroundImage(placeholderImage(color.RGBA{R: 24, G: 28, B: 38, A: 255})); err != nil {
		return fmt.Errorf("background placeholder creation failed: %w", err)
	}

	return nil
}

func (r *Renderer) createPipeline(label string, shader *wgpu.ShaderModule, layout *wgpu.PipelineLayout, vertexEntry, fragmentEntry string) (*wgpu.RenderPipeline, error) {
	// No vertex buffers: both passes pull geometry from constant tables
	// indexed by the builtin vertex index.
	pipeline, err := r.device.CreateRenderPipeline(&wgpu.RenderPipelineDescriptor{
		Label:  label,
		Layout: layout,
		Vertex: wgpu.VertexState{
			Module:     shader,
			EntryPoint: vertexEntry,
		},
		Fragment: &wgpu.FragmentState{
			Module:     shader,
			EntryPoint: fragmentEntry,
			Targets: []wgpu.ColorTargetState{{
				Format:    r.swapChainFormat,
				Blend:     &wgpu.BlendState_Replace,
				WriteMask: wgpu.ColorWriteMask_All,
			}},
		},
		Primitive: wgpu.PrimitiveState{
			Topology: wgpu.PrimitiveTopology_TriangleList,
		},
		Multisample: wgpu.MultisampleState{
			Count: 1,
			Mask:  0xFFFFFFFF,
		},
	})
	if err != nil {
		return nil, fmt.Errorf("%s creation failed: %w", label, err)
	}
	return pipeline, nil
}

// growSpriteBuffer replaces the sprite storage buffer (and the bind group
// that references it) with one holding at least n records.
func (r *Renderer) growSpriteBuffer(n int) error {
	capacity := r.spriteCapacity
	if capacity == 0 {
		capacity = initialSpriteCapacity
	}
	for capacity < n {
		capacity *= 2
	}

	if r.spriteBuffer != nil {
		r.spriteBuffer.Release()
	}
	if r.spriteDataBindGroup != nil {
		r.spriteDataBindGroup.Release()
	}

	var err error
	r.spriteBuffer, err = r.device.CreateBuffer(&wgpu.BufferDescriptor{
		Label: "sprite_storage",
		Size:  uint64(capacity) * uint64(unsafe.Sizeof(shading.Sprite{})),
		Usage: wgpu.BufferUsage_Storage | wgpu.BufferUsage_CopyDst,
	})
	if err != nil {
		return fmt.Errorf("sprite buffer creation failed: %w", err)
	}

	r.spriteDataBindGroup, err = r.device.CreateBindGroup(&wgpu.BindGroupDescriptor{
		Label:  "sprite_data_bind_group",
		Layout: r.spriteDataLayout,
		Entries: []wgpu.BindGroupEntry{
			{Binding: 0, Buffer: r.cameraBuffer, Size: uint64(unsafe.Sizeof(shading.Camera{}))},
			{Binding: 1, Buffer: r.spriteBuffer, Size: uint64(capacity) * uint64(unsafe.Sizeof(shading.Sprite{}))},
		},
	})
	if err != nil {
		return fmt.Errorf("sprite data bind group creation failed: %w", err)
	}

	r.spriteCapacity = capacity
	return nil
}

func placeholderImage(c color.RGBA) *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, 2, 2))
	draw.Draw(img, img.Bounds(), &image.Uniform{c}, image.Point{}, draw.Src)
	return img
}

func (r *Renderer) createTexture(label string, img *image.RGBA) (*Texture, error) {
	texture, err := r.device.CreateTexture(&wgpu.TextureDescriptor{
		Label: label,
		Size: wgpu.Extent3D{
			Width:              uint32(img.Bounds().Dx()),
			Height:             uint32(img.Bounds().Dy()),
			DepthOrArrayLayers: 1,
		},
		MipLevelCount: 1,
		SampleCount:   1,
		Dimension:     wgpu.TextureDimension_2D,
		Format:        wgpu.TextureFormat_RGBA8UnormSrgb,
		Usage:         wgpu.TextureUsage_TextureBinding | wgpu.TextureUsage_CopyDst,
	})
	if err != nil {
		return nil, err
	}

	r.queue.WriteTexture(
		&wgpu.ImageCopyTexture{Texture: texture, MipLevel: 0, Origin: wgpu.Origin3D{}, Aspect: wgpu.TextureAspect_All},
		img.Pix,
		&wgpu.TextureDataLayout{Offset: 0, BytesPerRow: uint32(img.Stride), RowsPerImage: uint32(img.Bounds().Dy())},
		&wgpu.Extent3D{Width: uint32(img.Bounds().Dx()), Height: uint32(img.Bounds().Dy()), DepthOrArrayLayers: 1},
	)

	view, err := texture.CreateView(&wgpu.TextureViewDescriptor{
		Format:          wgpu.TextureFormat_RGBA8UnormSrgb,
		Dimension:       wgpu.TextureViewDimension_2D,
		BaseMipLevel:    0,
		MipLevelCount:   1,
		BaseArrayLayer:  0,
		ArrayLayerCount: 1,
		Aspect:          wgpu.TextureAspect_All,
	})
	if err != nil {
		texture.Release()
		return nil, err
	}

	return &Texture{Texture: texture, View: view}, nil
}

func (r *Renderer) createTextureBindGroup(label string, tex *Texture) (*wgpu.BindGroup, error) {
	return r.device.CreateBindGroup(&wgpu.BindGroupDescriptor{
		Label:  label,
		Layout: r.textureLayout,
		Entries: []wgpu.BindGroupEntry{
			{Binding: 0, TextureView: tex.View},
			{Binding: 1, Sampler: r.sampler},
		},
	})
}

func (r *Renderer) setAtlasImage(img *image.RGBA) error {
	tex, err := r.createTexture("atlas_texture", img)
	if err != nil {
		return err
	}
	group, err := r.createTextureBindGroup("atlas_bind_group", tex)
	if err != nil {
		tex.View.Release()
		tex.Texture.Release()
		return err
	}
	if r.atlasBindGroup != nil {
		r.atlasBindGroup.Release()
	}
	if r.atlas != nil {
		r.atlas.View.Release()
		r.atlas.Texture.Release()
	}
	r.atlas, r.atlasBindGroup = tex, group
	return nil
}

func (r *Renderer) setBackgroundImage(img *image.RGBA) error {
	tex, err := r.createTexture("background_texture", img)
	if err != nil {
		return err
	}
	group, err := r.createTextureBindGroup("background_bind_group", tex)
	if err != nil {
		tex.View.Release()
		tex.Texture.Release()
		return err
	}
	if r.backgroundBindGroup != nil {
		r.backgroundBindGroup.Release()
	}
	if r.background != nil {
		r.background.View.Release()
		r.background.Texture.Release()
	}
	r.background, r.backgroundBindGroup = tex, group
	return nil
}

// LoadAtlas decodes an encoded image and binds it as the sprite atlas.
func (r *Renderer) LoadAtlas(data []byte) error {
	img, err := decodeRGBA(data)
	if err != nil {
		return fmt.Errorf("atlas decode failed: %w", err)
	}
	return r.setAtlasImage(img)
}

// LoadBackground decodes an encoded image and binds it as the background.
func (r *Renderer) LoadBackground(data []byte) error {
	img, err := decodeRGBA(data)
	if err != nil {
		return fmt.Errorf("background decode failed: %w", err)
	}
	return r.setBackgroundImage(img)
}

func decodeRGBA(data []byte) (*image.RGBA, error) {
	img, _, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, err
	}
	rgba := image.NewRGBA(img.Bounds())
	draw.Draw(rgba, rgba.Bounds(), img, img.Bounds().Min, draw.Src)
	return rgba, nil
}

// Render draws one frame: the background pass (6 vertices, 1 instance)
// followed by the sprite pass (6 vertices, one instance per sprite). A
// zero-length sprite list skips the sprite draw entirely.
func (r *Renderer) Render(cam shading.Camera, sprites []shading.Sprite) error {
	view, err := r.swapChain.GetCurrentTextureView()
	if err != nil {
		return err
	}
	defer view.Release()

	r.queue.WriteBuffer(r.cameraBuffer, 0, wgpu.ToBytes([]shading.Camera{cam}))
	if len(sprites) > 0 {
		if len(sprites) > r.spriteCapacity {
			if err := r.growSpriteBuffer(len(sprites)); err != nil {
				return err
			}
		}
		r.queue.WriteBuffer(r.spriteBuffer, 0, wgpu.ToBytes(sprites))
	}

	encoder, err := r.device.CreateCommandEncoder(&wgpu.CommandEncoderDescriptor{})
	if err != nil {
		return err
	}
	defer encoder.Release()

	pass := encoder.BeginRenderPass(&wgpu.RenderPassDescriptor{
		ColorAttachments: []wgpu.RenderPassColorAttachment{{
			View:       view,
			LoadOp:     wgpu.LoadOp_Clear,
			StoreOp:    wgpu.StoreOp_Store,
			ClearValue: wgpu.Color{R: 0, G: 0, B: 0, A: 1},
		}},
	})

	pass.SetPipeline(r.backgroundPipeline)
	pass.SetBindGroup(0, r.backgroundBindGroup, nil)
	pass.Draw(shading.QuadVertexCount, 1, 0, 0)

	if len(sprites) > 0 {
		pass.SetPipeline(r.spritePipeline)
		pass.SetBindGroup(0, r.spriteDataBindGroup, nil)
		pass.SetBindGroup(1, r.atlasBindGroup, nil)
		pass.Draw(shading.QuadVertexCount, uint32(len(sprites)), 0, 0)
	}

	pass.End()

	cmdBuffer, err := encoder.Finish(&wgpu.CommandBufferDescriptor{})
	if err != nil {
		return err
	}
	defer cmdBuffer.Release()

	r.queue.Submit(cmdBuffer)
	r.swapChain.Present()

	return nil
}

// Resize handles window resize.
func (r *Renderer) Resize(width, height uint32) {
	if width == 0 || height == 0 {
		return
	}
	r.width = width
	r.height = height

	if r.swapChain != nil {
		r.swapChain.Release()
	}

	var err error
	r.swapChain, err = r.device.CreateSwapChain(r.surface, &wgpu.SwapChainDescriptor{
		Usage:       wgpu.TextureUsage_RenderAttachment,
		Format:      r.swapChainFormat,
		Width:       width,
		Height:      height,
		PresentMode: wgpu.PresentMode_Fifo,
	})
	if err != nil {
		fmt.Printf("Failed to recreate swap chain: %v\n", err)
	}
}

// Release frees all GPU resources.
func (r *Renderer) Release() {
	for _, tex := range []*Texture{r.atlas, r.background} {
		if tex != nil {
			tex.View.Release()
			tex.Texture.Release()
		}
	}
	if r.atlasBindGroup != nil {
		r.atlasBindGroup.Release()
	}
	if r.backgroundBindGroup != nil {
		r.backgroundBindGroup.Release()
	}
	if r.spriteDataBindGroup != nil {
		r.spriteDataBindGroup.Release()
	}
	if r.spriteBuffer != nil {
		r.spriteBuffer.Release()
	}
	if r.cameraBuffer != nil {
		r.cameraBuffer.Release()
	}
	r.spriteDataLayout.Release()
	r.textureLayout.Release()
	r.spritePipeline.Release()
	r.backgroundPipeline.Release()
	r.sampler.Release()
	if r.swapChain != nil {
		r.swapChain.Release()
	}
}
