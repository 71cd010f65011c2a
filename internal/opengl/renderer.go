package opengl

import (
	"fmt"
	"log/slog"
	"unsafe"

	gl "github.com/go-gl/gl/v4.1-core/gl"

	"haunted-house/core"
	"haunted-house/math"
	"haunted-house/scene"
)

const (
	maxDirLights   = 4
	maxPointLights = 8
)

// Texture units, one per material channel.
const (
	unitMap = iota
	unitAlpha
	unitAO
	unitNormal
	unitMetalness
	unitRoughness
	unitDisplacement
)

// GPUMesh holds the OpenGL buffer objects for an uploaded geometry.
type GPUMesh struct {
	VAO        uint32
	VBO        uint32
	EBO        uint32
	IndexCount int32
}

// FrameState is everything a frame needs besides the meshes themselves.
type FrameState struct {
	Background core.Color
	Lights     scene.LightSet
	Fog        *scene.Fog
	CameraPos  math.Vec3
}

// Renderer is the OpenGL backend for standard-material meshes.
type Renderer struct {
	program uint32
	log     *slog.Logger

	mvpLoc       int32
	modelLoc     int32
	modelViewLoc int32
	cameraPosLoc int32
	ambientLoc   int32

	dirCountLoc int32
	dirDirLoc   [maxDirLights]int32
	dirColorLoc [maxDirLights]int32

	pointCountLoc    int32
	pointPosLoc      [maxPointLights]int32
	pointColorLoc    [maxPointLights]int32
	pointDistanceLoc [maxPointLights]int32
	pointDecayLoc    [maxPointLights]int32

	matColorLoc       int32
	matMetalnessLoc   int32
	matRoughnessLoc   int32
	aoIntensityLoc    int32
	normalScaleLoc    int32
	dispScaleLoc      int32
	dispBiasLoc       int32
	transparentLoc    int32
	doubleSidedLoc    int32
	hasMapLoc         int32
	hasAlphaMapLoc    int32
	hasAOMapLoc       int32
	hasNormalMapLoc   int32
	hasMetalMapLoc    int32
	hasRoughMapLoc    int32
	hasDisplaceMapLoc int32

	fogEnabledLoc int32
	fogColorLoc   int32
	fogNearLoc    int32
	fogFarLoc     int32

	gpuMeshes map[*scene.Geometry]*GPUMesh
}

// NewRenderer loads the GL entry points for the current context and builds
// the standard material program.
func NewRenderer(logger *slog.Logger) (*Renderer, error) {
	if err := gl.Init(); err != nil {
		return nil, fmt.Errorf("failed to initialize OpenGL: %w", err)
	}
	if logger == nil {
		logger = slog.Default()
	}
	logger.Info("opengl ready",
		"version", gl.GoStr(gl.GetString(gl.VERSION)),
		"renderer", gl.GoStr(gl.GetString(gl.RENDERER)))

	prog, err := newProgram(vertSrc, fragSrc)
	if err != nil {
		return nil, fmt.Errorf("standard shader: %w", err)
	}

	r := &Renderer{
		program:   prog,
		log:       logger,
		gpuMeshes: make(map[*scene.Geometry]*GPUMesh),

		mvpLoc:       uniform(prog, "mvp"),
		modelLoc:     uniform(prog, "model"),
		modelViewLoc: uniform(prog, "modelView"),
		cameraPosLoc: uniform(prog, "cameraPos"),
		ambientLoc:   uniform(prog, "ambientColor"),

		dirCountLoc:   uniform(prog, "dirLightCount"),
		pointCountLoc: uniform(prog, "pointLightCount"),

		matColorLoc:       uniform(prog, "matColor"),
		matMetalnessLoc:   uniform(prog, "matMetalness"),
		matRoughnessLoc:   uniform(prog, "matRoughness"),
		aoIntensityLoc:    uniform(prog, "aoMapIntensity"),
		normalScaleLoc:    uniform(prog, "normalScale"),
		dispScaleLoc:      uniform(prog, "displacementScale"),
		dispBiasLoc:       uniform(prog, "displacementBias"),
		transparentLoc:    uniform(prog, "transparent"),
		doubleSidedLoc:    uniform(prog, "doubleSided"),
		hasMapLoc:         uniform(prog, "hasMap"),
		hasAlphaMapLoc:    uniform(prog, "hasAlphaMap"),
		hasAOMapLoc:       uniform(prog, "hasAOMap"),
		hasNormalMapLoc:   uniform(prog, "hasNormalMap"),
		hasMetalMapLoc:    uniform(prog, "hasMetalnessMap"),
		hasRoughMapLoc:    uniform(prog, "hasRoughnessMap"),
		hasDisplaceMapLoc: uniform(prog, "hasDisplacementMap"),

		fogEnabledLoc: uniform(prog, "fogEnabled"),
		fogColorLoc:   uniform(prog, "fogColor"),
		fogNearLoc:    uniform(prog, "fogNear"),
		fogFarLoc:     uniform(prog, "fogFar"),
	}
	for i := 0; i < maxDirLights; i++ {
		r.dirDirLoc[i] = uniform(prog, fmt.Sprintf("dirLightDir[%d]", i))
		r.dirColorLoc[i] = uniform(prog, fmt.Sprintf("dirLightColor[%d]", i))
	}
	for i := 0; i < maxPointLights; i++ {
		r.pointPosLoc[i] = uniform(prog, fmt.Sprintf("pointLightPos[%d]", i))
		r.pointColorLoc[i] = uniform(prog, fmt.Sprintf("pointLightColor[%d]", i))
		r.pointDistanceLoc[i] = uniform(prog, fmt.Sprintf("pointLightDistance[%d]", i))
		r.pointDecayLoc[i] = uniform(prog, fmt.Sprintf("pointLightDecay[%d]", i))
	}

	gl.UseProgram(prog)
	for name, unit := range map[string]int32{
		"map":             unitMap,
		"alphaMap":        unitAlpha,
		"aoMap":           unitAO,
		"normalMap":       unitNormal,
		"metalnessMap":    unitMetalness,
		"roughnessMap":    unitRoughness,
		"displacementMap": unitDisplacement,
	} {
		gl.Uniform1i(uniform(prog, name), unit)
	}

	gl.Enable(gl.DEPTH_TEST)
	gl.DepthFunc(gl.LESS)
	gl.BlendFunc(gl.SRC_ALPHA, gl.ONE_MINUS_SRC_ALPHA)

	return r, nil
}

// BeginFrame clears the bound framebuffer and uploads per-frame uniforms.
func (r *Renderer) BeginFrame(f FrameState) {
	bg := f.Background
	gl.ClearColor(bg.R, bg.G, bg.B, 1)
	gl.Clear(gl.COLOR_BUFFER_BIT | gl.DEPTH_BUFFER_BIT)

	gl.UseProgram(r.program)
	gl.Uniform3f(r.cameraPosLoc, f.CameraPos.X, f.CameraPos.Y, f.CameraPos.Z)

	amb := f.Lights.Ambient
	gl.Uniform3f(r.ambientLoc, amb.R, amb.G, amb.B)

	dirCount := min(len(f.Lights.Directional), maxDirLights)
	for i := 0; i < dirCount; i++ {
		l := f.Lights.Directional[i]
		gl.Uniform3f(r.dirDirLoc[i], l.Direction.X, l.Direction.Y, l.Direction.Z)
		gl.Uniform3f(r.dirColorLoc[i], l.Radiance.R, l.Radiance.G, l.Radiance.B)
	}
	gl.Uniform1i(r.dirCountLoc, int32(dirCount))

	pointCount := min(len(f.Lights.Point), maxPointLights)
	for i := 0; i < pointCount; i++ {
		l := f.Lights.Point[i]
		gl.Uniform3f(r.pointPosLoc[i], l.Position.X, l.Position.Y, l.Position.Z)
		gl.Uniform3f(r.pointColorLoc[i], l.Radiance.R, l.Radiance.G, l.Radiance.B)
		gl.Uniform1f(r.pointDistanceLoc[i], l.Distance)
		gl.Uniform1f(r.pointDecayLoc[i], l.Decay)
	}
	gl.Uniform1i(r.pointCountLoc, int32(pointCount))

	if f.Fog != nil {
		gl.Uniform1i(r.fogEnabledLoc, 1)
		gl.Uniform3f(r.fogColorLoc, f.Fog.Color.R, f.Fog.Color.G, f.Fog.Color.B)
		gl.Uniform1f(r.fogNearLoc, f.Fog.Near)
		gl.Uniform1f(r.fogFarLoc, f.Fog.Far)
	} else {
		gl.Uniform1i(r.fogEnabledLoc, 0)
	}
}

// DrawMesh draws one geometry with its material. Matrices are row-major
// for row vectors, which GLSL reads as the column-vector transpose.
func (r *Renderer) DrawMesh(geo *scene.Geometry, mat *scene.Material, mvp, model, modelView math.Mat4) {
	gpu := r.ensureUploaded(geo)
	if gpu == nil {
		return
	}

	gl.UniformMatrix4fv(r.mvpLoc, 1, false, &mvp[0][0])
	gl.UniformMatrix4fv(r.modelLoc, 1, false, &model[0][0])
	gl.UniformMatrix4fv(r.modelViewLoc, 1, false, &modelView[0][0])
	r.applyMaterial(mat)

	gl.BindVertexArray(gpu.VAO)
	gl.DrawElements(gl.TRIANGLES, gpu.IndexCount, gl.UNSIGNED_INT, nil)
	gl.BindVertexArray(0)
}

func (r *Renderer) applyMaterial(mat *scene.Material) {
	c := mat.Color
	gl.Uniform4f(r.matColorLoc, c.R, c.G, c.B, c.A)
	gl.Uniform1f(r.matMetalnessLoc, mat.Metalness)
	gl.Uniform1f(r.matRoughnessLoc, mat.Roughness)
	gl.Uniform1f(r.aoIntensityLoc, mat.AOMapIntensity)
	gl.Uniform1f(r.normalScaleLoc, mat.NormalScale)
	gl.Uniform1f(r.dispScaleLoc, mat.DisplacementScale)
	gl.Uniform1f(r.dispBiasLoc, mat.DisplacementBias)

	bindTexture(unitMap, r.hasMapLoc, mat.Map)
	bindTexture(unitAlpha, r.hasAlphaMapLoc, mat.AlphaMap)
	bindTexture(unitAO, r.hasAOMapLoc, mat.AOMap)
	bindTexture(unitNormal, r.hasNormalMapLoc, mat.NormalMap)
	bindTexture(unitMetalness, r.hasMetalMapLoc, mat.MetalnessMap)
	bindTexture(unitRoughness, r.hasRoughMapLoc, mat.RoughnessMap)
	bindTexture(unitDisplacement, r.hasDisplaceMapLoc, mat.DisplacementMap)

	if mat.Transparent {
		gl.Enable(gl.BLEND)
		gl.Uniform1i(r.transparentLoc, 1)
	} else {
		gl.Disable(gl.BLEND)
		gl.Uniform1i(r.transparentLoc, 0)
	}
	if mat.Side == scene.DoubleSide {
		gl.Disable(gl.CULL_FACE)
		gl.Uniform1i(r.doubleSidedLoc, 1)
	} else {
		gl.Enable(gl.CULL_FACE)
		gl.CullFace(gl.BACK)
		gl.Uniform1i(r.doubleSidedLoc, 0)
	}
}

// bindTexture binds tex to unit when it has reached the GPU. Pending and
// failed textures leave the channel disabled.
func bindTexture(unit uint32, hasLoc int32, tex *scene.Texture) {
	if tex == nil || tex.GLID == 0 {
		gl.Uniform1i(hasLoc, 0)
		return
	}
	gl.ActiveTexture(gl.TEXTURE0 + unit)
	gl.BindTexture(gl.TEXTURE_2D, tex.GLID)
	gl.Uniform1i(hasLoc, 1)
}

func (r *Renderer) ensureUploaded(geo *scene.Geometry) *GPUMesh {
	if gpu, ok := r.gpuMeshes[geo]; ok {
		return gpu
	}
	if len(geo.Vertices) == 0 || len(geo.Indices) == 0 {
		return nil
	}

	stride := int32(unsafe.Sizeof(core.Vertex{}))
	gpu := &GPUMesh{IndexCount: int32(len(geo.Indices))}

	gl.GenVertexArrays(1, &gpu.VAO)
	gl.GenBuffers(1, &gpu.VBO)
	gl.BindVertexArray(gpu.VAO)

	gl.BindBuffer(gl.ARRAY_BUFFER, gpu.VBO)
	gl.BufferData(gl.ARRAY_BUFFER, len(geo.Vertices)*int(stride), gl.Ptr(geo.Vertices), gl.STATIC_DRAW)

	var v core.Vertex
	attribs := []struct {
		size   int32
		offset uintptr
	}{
		{3, unsafe.Offsetof(v.Position)},
		{3, unsafe.Offsetof(v.Normal)},
		{2, unsafe.Offsetof(v.UV)},
		{2, unsafe.Offsetof(v.UV2)},
		{3, unsafe.Offsetof(v.Tangent)},
		{3, unsafe.Offsetof(v.Bitangent)},
	}
	for i, a := range attribs {
		gl.EnableVertexAttribArray(uint32(i))
		gl.VertexAttribPointerWithOffset(uint32(i), a.size, gl.FLOAT, false, stride, a.offset)
	}

	gl.GenBuffers(1, &gpu.EBO)
	gl.BindBuffer(gl.ELEMENT_ARRAY_BUFFER, gpu.EBO)
	gl.BufferData(gl.ELEMENT_ARRAY_BUFFER, len(geo.Indices)*4, gl.Ptr(geo.Indices), gl.STATIC_DRAW)

	gl.BindVertexArray(0)

	r.gpuMeshes[geo] = gpu
	r.log.Debug("geometry uploaded", "kind", geo.Kind, "vertices", len(geo.Vertices), "triangles", geo.TriangleCount())
	return gpu
}

// Destroy frees every GPU object the renderer created.
func (r *Renderer) Destroy() {
	for geo, gpu := range r.gpuMeshes {
		gl.DeleteVertexArrays(1, &gpu.VAO)
		gl.DeleteBuffers(1, &gpu.VBO)
		gl.DeleteBuffers(1, &gpu.EBO)
		delete(r.gpuMeshes, geo)
	}
	if r.program != 0 {
		gl.DeleteProgram(r.program)
		r.program = 0
	}
}
