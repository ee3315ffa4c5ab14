package app

import (
	"github.com/vk/colorgrid/internal/registry"
	"github.com/vk/colorgrid/modules/vertexcolor"
)

// coreModules is the definitive list of all node modules that are compiled
// into the colorgrid binary.
var coreModules = []registry.Module{
	&vertexcolor.Module{},
}
