package modkit

import "tripmaker/internal/modkit/module"

// Module is the surface api.Mount composes, see module.Module
type Module = module.Module

// Builder constructs a Module from shared deps and options
type Builder func(Deps, ...Option) Module
