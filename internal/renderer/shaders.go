package renderer

// SpriteShader is the WGSL module for both passes: a full-screen background
// quad and instanced atlas sprites with cutout transparency. The sprite and
// background passes run under different pipeline layouts, so the background
// texture/sampler reuse group 0 without colliding with the camera/sprite
// bindings (no entry point statically uses both sets).
//
// The arithmetic mirrors internal/shading; change them together.
const SpriteShader = `
struct Camera {
    screen_pos: vec2<f32>,
    screen_size: vec2<f32>,
}

struct Sprite {
    to_rect: vec4<f32>,
    from_rect: vec4<f32>,
}

struct VertexOutput {
    @builtin(position) position: vec4<f32>,
    @location(0) tex_coord: vec2<f32>,
}

@group(0) @binding(0) var<uniform> camera: Camera;
@group(0) @binding(1) var<storage, read> sprites: array<Sprite>;
@group(1) @binding(0) var atlas_texture: texture_2d<f32>;
@group(1) @binding(1) var atlas_sampler: sampler;

@group(0) @binding(0) var background_texture: texture_2d<f32>;
@group(0) @binding(1) var background_sampler: sampler;

@vertex
fn vs_background(@builtin(vertex_index) in_vertex_index: u32) -> VertexOutput {
    // Full-viewport quad, two triangles, positions already in clip space.
    var positions = array<vec2<f32>, 6>(
        vec2<f32>(-1.0, -1.0), vec2<f32>(1.0, -1.0), vec2<f32>(1.0, 1.0),
        vec2<f32>(-1.0, -1.0), vec2<f32>(1.0, 1.0), vec2<f32>(-1.0, 1.0),
    );
    var tex_coords = array<vec2<f32>, 6>(
        vec2<f32>(0.0, 1.0), vec2<f32>(1.0, 1.0), vec2<f32>(1.0, 0.0),
        vec2<f32>(0.0, 1.0), vec2<f32>(1.0, 0.0), vec2<f32>(0.0, 0.0),
    );
    var out: VertexOutput;
    out.position = vec4<f32>(positions[in_vertex_index], 0.0, 1.0);
    out.tex_coord = tex_coords[in_vertex_index];
    return out;
}

@fragment
fn fs_background(in: VertexOutput) -> @location(0) vec4<f32> {
    return textureSample(background_texture, background_sampler, in.tex_coord);
}

@vertex
fn vs_sprite(
    @builtin(vertex_index) in_vertex_index: u32,
    @builtin(instance_index) sprite_index: u32,
) -> VertexOutput {
    var corners = array<vec2<f32>, 6>(
        vec2<f32>(0.0, 0.0), vec2<f32>(1.0, 0.0), vec2<f32>(1.0, 1.0),
        vec2<f32>(0.0, 0.0), vec2<f32>(1.0, 1.0), vec2<f32>(0.0, 1.0),
    );
    let sprite = sprites[sprite_index];
    let corner = vec4<f32>(sprite.to_rect.xy, 0.0, 1.0);
    let size = vec4<f32>(sprite.to_rect.zw, 0.0, 0.0);
    let tex_corner = sprite.from_rect.xy;
    let tex_size = sprite.from_rect.zw;

    let which_vtx = corners[in_vertex_index];
    // Position Y grows upward, texture V grows downward.
    let which_uv = vec2<f32>(which_vtx.x, 1.0 - which_vtx.y);

    var out: VertexOutput;
    // The visible world window [screen_pos, screen_pos+screen_size] maps
    // onto [-1,1]: screen_pos anchors the window's bottom-left corner.
    out.position = ((corner + vec4<f32>(which_vtx, 0.0, 0.0) * size)
        - vec4<f32>(camera.screen_pos, 0.0, 0.0))
        / vec4<f32>(camera.screen_size / 2.0, 1.0, 1.0)
        - vec4<f32>(1.0, 1.0, 0.0, 0.0);
    out.tex_coord = tex_corner + which_uv * tex_size;
    return out;
}

@fragment
fn fs_sprite(in: VertexOutput) -> @location(0) vec4<f32> {
    let color = textureSample(atlas_texture, atlas_sampler, in.tex_coord);
    // Cutout transparency: strict less-than, alpha == 0.2 is kept.
    if (color.a < 0.2) {
        discard;
    }
    return color;
}
`
