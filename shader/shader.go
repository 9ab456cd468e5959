package shader

// Attribute locations shared by the quad vertex layout and the vertex shader.
const (
	PositionLocation = 0
	TexCoordLocation = 1
)

// Names of the shader interface the renderer looks up after translation.
const (
	PositionAttrib = "vPos"
	TexCoordAttrib = "TexCoordIn"
	MVPUniform     = "MVP"
	TextureUniform = "Texture"
)

// Both stages are written against WebGL2 and translated for the host GL, so
// the varying shared between them is renamed consistently.

const vertexShaderSource = `#version 300 es
precision highp float;

layout (location = 0) in vec2 vPos;
layout (location = 1) in vec2 TexCoordIn;

uniform mat4 MVP;

out vec2 TexCoordOut;

void main() {
    gl_Position = MVP * vec4(vPos, 0.0, 1.0);
    TexCoordOut = TexCoordIn;
}
`

const fragmentShaderSource = `#version 300 es
precision mediump float;

in vec2 TexCoordOut;
out vec4 fragColor;

uniform sampler2D Texture;

void main() {
    fragColor = texture(Texture, TexCoordOut);
}
`

func GetVertexShader() string {
	return vertexShaderSource
}

func GetFragmentShader() string {
	return fragmentShaderSource
}
