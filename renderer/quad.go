package renderer

// quadStride is the number of floats per vertex: x, y, u, v.
const quadStride = 4

const quadVertexCount = 6

// quadVertices covers clip space with two triangles. Texture v runs top to
// bottom so row 0 of the image lands at the top of the window.
var quadVertices = []float32{
	// position   texcoord
	1.0, -1.0, 1.0, 1.0,
	1.0, 1.0, 1.0, 0.0,
	-1.0, 1.0, 0.0, 0.0,

	-1.0, 1.0, 0.0, 0.0,
	-1.0, -1.0, 0.0, 1.0,
	1.0, -1.0, 1.0, 1.0,
}
