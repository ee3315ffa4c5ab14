// Package colorspace holds the color value types shared by meshes and the
// vertex color node, and the RGB <-> HSV conversion they rely on.
//
// Hue is expressed in normalized turns, [0,1). When two channels tie for the
// maximum the sector is chosen in red, green, blue order.
package colorspace
