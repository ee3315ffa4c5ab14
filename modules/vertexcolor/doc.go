// Package vertexcolor provides the pmVertexColorComponents node type.
//
// The node reads a mesh on its `mesh` input and publishes seven sparse float
// arrays, one element per vertex: redMulti, greenMulti, blueMulti,
// alphaMulti, hueMulti, saturationMulti and valueMulti. Uncolored vertices
// contribute zeros. Hue is in turns, [0,1).
//
// All seven outputs form one recompute group. Reading any of them while the
// mesh is dirty walks the mesh once and republishes every channel, replacing
// whatever the previous mesh left behind.
package vertexcolor
