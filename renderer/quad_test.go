package renderer

import "testing"

func TestQuadLayout(t *testing.T) {
	if len(quadVertices) != quadVertexCount*quadStride {
		t.Fatalf("quad has %d floats, want %d", len(quadVertices), quadVertexCount*quadStride)
	}
}

func TestQuadTexCoordsFollowPosition(t *testing.T) {
	for i := 0; i < quadVertexCount; i++ {
		v := quadVertices[i*quadStride : (i+1)*quadStride]
		x, y, u, tv := v[0], v[1], v[2], v[3]
		if wantU := (x + 1) / 2; u != wantU {
			t.Errorf("vertex %d: u = %v, want %v", i, u, wantU)
		}
		// Image row 0 sits at the top edge.
		if wantV := (1 - y) / 2; tv != wantV {
			t.Errorf("vertex %d: v = %v, want %v", i, tv, wantV)
		}
	}
}
