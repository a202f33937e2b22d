package app

import (
	"github.com/specialistvlad/conduit/internal/exporter"
	"github.com/specialistvlad/conduit/modules/command"
	"github.com/specialistvlad/conduit/modules/dryrun"
	"github.com/specialistvlad/conduit/modules/manifest"
)

// coreModules is the definitive list of all exporter backends compiled into
// the conduit binary.
var coreModules = []exporter.Module{
	&command.Module{},
	&dryrun.Module{},
	&manifest.Module{},
}
