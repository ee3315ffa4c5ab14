/*
Package plugaddr parses and formats plug addresses of the form
`node.attribute` or `node.attribute[index]`.

Addresses are how scenes and the command line name the outputs they want
pulled, e.g. `split.hueMulti` or `split.hm[2]`.
*/
package plugaddr
