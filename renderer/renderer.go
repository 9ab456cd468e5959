package renderer

import (
	"fmt"
	"strings"
	"sync"

	"github.com/go-gl/gl/v4.1-core/gl"
	mgl "github.com/go-gl/mathgl/mgl32"
	gst "github.com/richinsley/goshadertranslator"

	"github.com/richinsley/ezview/graphics"
	"github.com/richinsley/ezview/logging"
	"github.com/richinsley/ezview/pixmap"
	"github.com/richinsley/ezview/shader"
	xlate "github.com/richinsley/ezview/translator"
)

var glInitOnce sync.Once

// Renderer draws one textured quad into the current window.
type Renderer struct {
	context    graphics.Context
	program    uint32
	quadVAO    uint32
	quadVBO    uint32
	texture    uint32
	mvpLoc     int32
	textureLoc int32
	background [4]float32
}

// NewRenderer makes ctx current, loads the GL entry points and builds the
// quad geometry and shader program.
func NewRenderer(ctx graphics.Context) (*Renderer, error) {
	r := &Renderer{
		context:    ctx,
		mvpLoc:     -1,
		textureLoc: -1,
		background: [4]float32{0, 0, 0, 1},
	}

	ctx.MakeCurrent()

	var initErr error
	glInitOnce.Do(func() {
		initErr = gl.Init()
	})
	if initErr != nil {
		return nil, fmt.Errorf("failed to initialize OpenGL: %w", initErr)
	}
	logging.L().Debug("OpenGL initialized", "version", gl.GoStr(gl.GetString(gl.VERSION)))

	if err := r.initProgram(); err != nil {
		return nil, err
	}
	r.initQuad()

	return r, nil
}

func (r *Renderer) initProgram() error {
	translator, err := xlate.GetTranslator()
	if err != nil {
		return fmt.Errorf("failed to create shader translator: %w", err)
	}

	vsShader, err := translator.TranslateShader(shader.GetVertexShader(), "vertex", gst.ShaderSpecWebGL2, gst.OutputFormatGLSL410)
	if err != nil {
		return fmt.Errorf("vertex shader translation failed: %w", err)
	}
	fsShader, err := translator.TranslateShader(shader.GetFragmentShader(), "fragment", gst.ShaderSpecWebGL2, gst.OutputFormatGLSL410)
	if err != nil {
		return fmt.Errorf("fragment shader translation failed: %w", err)
	}

	attribs := map[uint32]string{
		shader.PositionLocation: mappedName(vsShader.Variables, shader.PositionAttrib),
		shader.TexCoordLocation: mappedName(vsShader.Variables, shader.TexCoordAttrib),
	}
	r.program, err = newProgram(vsShader.Code, fsShader.Code, attribs)
	if err != nil {
		return fmt.Errorf("failed to create shader program: %w", err)
	}

	gl.UseProgram(r.program)
	r.mvpLoc = uniformLocation(r.program, mappedName(vsShader.Variables, shader.MVPUniform))
	r.textureLoc = uniformLocation(r.program, mappedName(fsShader.Variables, shader.TextureUniform))
	if r.mvpLoc < 0 {
		return fmt.Errorf("shader program has no %s uniform", shader.MVPUniform)
	}
	if r.textureLoc >= 0 {
		gl.Uniform1i(r.textureLoc, 0)
	}
	gl.UseProgram(0)
	return nil
}

func (r *Renderer) initQuad() {
	gl.GenVertexArrays(1, &r.quadVAO)
	gl.GenBuffers(1, &r.quadVBO)
	gl.BindVertexArray(r.quadVAO)
	gl.BindBuffer(gl.ARRAY_BUFFER, r.quadVBO)
	gl.BufferData(gl.ARRAY_BUFFER, len(quadVertices)*4, gl.Ptr(quadVertices), gl.STATIC_DRAW)

	stride := int32(quadStride * 4)
	gl.EnableVertexAttribArray(shader.PositionLocation)
	gl.VertexAttribPointer(shader.PositionLocation, 2, gl.FLOAT, false, stride, gl.PtrOffset(0))
	gl.EnableVertexAttribArray(shader.TexCoordLocation)
	gl.VertexAttribPointer(shader.TexCoordLocation, 2, gl.FLOAT, false, stride, gl.PtrOffset(2*4))

	gl.BindBuffer(gl.ARRAY_BUFFER, 0)
	gl.BindVertexArray(0)
}

// UploadImage replaces the quad's texture with the pixels of img.
// Samples are uploaded as 8-bit RGB with no rescaling by maxval.
func (r *Renderer) UploadImage(img *pixmap.PixelBuffer) {
	if r.texture == 0 {
		gl.GenTextures(1, &r.texture)
	}
	gl.BindTexture(gl.TEXTURE_2D, r.texture)

	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_WRAP_S, gl.CLAMP_TO_EDGE)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_WRAP_T, gl.CLAMP_TO_EDGE)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_MIN_FILTER, gl.NEAREST)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_MAG_FILTER, gl.NEAREST)

	// Rows are tightly packed at 3 bytes per pixel.
	gl.PixelStorei(gl.UNPACK_ALIGNMENT, 1)
	gl.TexImage2D(
		gl.TEXTURE_2D,
		0,
		gl.RGB8,
		int32(img.Width()),
		int32(img.Height()),
		0,
		gl.RGB,
		gl.UNSIGNED_BYTE,
		gl.Ptr(img.Pix()),
	)
	gl.PixelStorei(gl.UNPACK_ALIGNMENT, 4)

	gl.BindTexture(gl.TEXTURE_2D, 0)
	logging.L().Debug("uploaded image", "width", img.Width(), "height", img.Height(), "variant", img.Variant().String())
}

// Draw clears the framebuffer and renders the quad under mvp.
func (r *Renderer) Draw(mvp mgl.Mat4, width, height int) {
	gl.Viewport(0, 0, int32(width), int32(height))
	gl.ClearColor(r.background[0], r.background[1], r.background[2], r.background[3])
	gl.Clear(gl.COLOR_BUFFER_BIT)

	gl.UseProgram(r.program)
	gl.UniformMatrix4fv(r.mvpLoc, 1, false, &mvp[0])

	gl.ActiveTexture(gl.TEXTURE0)
	gl.BindTexture(gl.TEXTURE_2D, r.texture)
	gl.BindVertexArray(r.quadVAO)
	gl.DrawArrays(gl.TRIANGLES, 0, quadVertexCount)
	gl.BindVertexArray(0)
	gl.BindTexture(gl.TEXTURE_2D, 0)
}

// Shutdown releases the GL objects. The window belongs to the caller.
func (r *Renderer) Shutdown() {
	if r.texture != 0 {
		gl.DeleteTextures(1, &r.texture)
	}
	gl.DeleteBuffers(1, &r.quadVBO)
	gl.DeleteVertexArrays(1, &r.quadVAO)
	gl.DeleteProgram(r.program)
}

func mappedName(vars map[string]gst.ShaderVariable, name string) string {
	if v, ok := vars[name]; ok && v.MappedName != "" {
		return v.MappedName
	}
	return name
}

func uniformLocation(program uint32, name string) int32 {
	return gl.GetUniformLocation(program, gl.Str(name+"\x00"))
}

// newProgram links the two stages, binding attribs to their locations first
// in case the translated source dropped the layout qualifiers.
func newProgram(vertexShaderSource, fragmentShaderSource string, attribs map[uint32]string) (uint32, error) {
	vertexShader, err := compileShader(vertexShaderSource, gl.VERTEX_SHADER)
	if err != nil {
		return 0, err
	}
	fragmentShader, err := compileShader(fragmentShaderSource, gl.FRAGMENT_SHADER)
	if err != nil {
		gl.DeleteShader(vertexShader)
		return 0, err
	}

	program := gl.CreateProgram()
	gl.AttachShader(program, vertexShader)
	gl.AttachShader(program, fragmentShader)
	for loc, name := range attribs {
		gl.BindAttribLocation(program, loc, gl.Str(name+"\x00"))
	}
	gl.LinkProgram(program)

	gl.DeleteShader(vertexShader)
	gl.DeleteShader(fragmentShader)

	var status int32
	gl.GetProgramiv(program, gl.LINK_STATUS, &status)
	if status == gl.FALSE {
		var logLength int32
		gl.GetProgramiv(program, gl.INFO_LOG_LENGTH, &logLength)
		log := strings.Repeat("\x00", int(logLength+1))
		gl.GetProgramInfoLog(program, logLength, nil, gl.Str(log))
		gl.DeleteProgram(program)
		return 0, fmt.Errorf("failed to link program: %v", log)
	}

	return program, nil
}

func compileShader(source string, shaderType uint32) (uint32, error) {
	shader := gl.CreateShader(shaderType)
	csources, free := gl.Strs(source + "\x00")
	gl.ShaderSource(shader, 1, csources, nil)
	free()
	gl.CompileShader(shader)

	var status int32
	gl.GetShaderiv(shader, gl.COMPILE_STATUS, &status)
	if status == gl.FALSE {
		var logLength int32
		gl.GetShaderiv(shader, gl.INFO_LOG_LENGTH, &logLength)
		logText := strings.Repeat("\x00", int(logLength+1))
		gl.GetShaderInfoLog(shader, logLength, nil, gl.Str(logText))
		gl.DeleteShader(shader)
		return 0, fmt.Errorf("failed to compile shader: %v", logText)
	}
	return shader, nil
}
