package service

import (
	"github.com/rs/zerolog"
	"github.com/viant/afs"
)

type Option func(*Service)

// WithFS sets the storage service used for sources and outputs
func WithFS(fs afs.Service) Option {
	return func(s *Service) {
		s.fs = fs
	}
}

// WithRenderer replaces the external PlantUML renderer
func WithRenderer(renderer Renderer) Option {
	return func(s *Service) {
		s.renderer = renderer
	}
}

// WithLogger sets the service logger
func WithLogger(logger zerolog.Logger) Option {
	return func(s *Service) {
		s.logger = logger
	}
}
