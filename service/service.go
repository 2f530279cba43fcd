package service

import (
	"bytes"
	"context"
	"errors"
	"io"
	"os"
	"path"
	"sort"
	"strings"

	"github.com/rs/zerolog"
	"github.com/viant/afs"
	"github.com/viant/afs/file"
	"github.com/viant/afs/storage"
	"github.com/viant/afs/url"
	"github.com/viant/phpuml/analyzer"
	"github.com/viant/phpuml/config"
	"github.com/viant/phpuml/emitter/plantuml"
	"github.com/viant/phpuml/inspector/php"
	"github.com/viant/phpuml/logging"
	"golang.org/x/sync/errgroup"
	"golang.org/x/xerrors"
)

const (
	sourceExt  = ".php"
	diagramExt = ".uml"
	imageExt   = ".png"
)

// Service runs the parse, build, render pipeline over PHP sources
type Service struct {
	config    *config.Config
	fs        afs.Service
	inspector *php.Inspector
	emitter   *plantuml.Emitter
	renderer  Renderer
	logger    zerolog.Logger
}

// Output describes one processed source
type Output struct {
	SourceURL  string
	DiagramURL string
	ImageURL   string // Empty when no image was produced
	Result     *analyzer.Result
	Diagram    []byte
	Unchanged  bool  // Diagram matched the existing file, nothing was written
	Err        error // Per file failure in directory mode
}

// New creates a service
func New(cfg *config.Config, options ...Option) *Service {
	if cfg == nil {
		cfg = config.DefaultConfig()
	}
	s := &Service{
		config:   cfg,
		fs:       afs.New(),
		emitter:  plantuml.New(),
		renderer: &PlantUML{Java: cfg.Java, Jar: cfg.PlantUMLJar},
		logger:   logging.RootLogger.With().Str("component", "service").Logger(),
	}
	for _, option := range options {
		option(s)
	}
	s.inspector = php.NewInspector(php.WithFS(s.fs))
	return s
}

// Analyze parses and builds URL and renders its diagram without writing anything
func (s *Service) Analyze(ctx context.Context, URL string) (*analyzer.Result, []byte, error) {
	aFile, err := s.inspector.InspectFile(ctx, URL)
	if err != nil {
		return nil, nil, err
	}
	s.logger.Debug().Str("source", URL).Uint64("hash", aFile.Hash).Int("statements", len(aFile.Statements)).Msg("source parsed")
	builder := analyzer.NewBuilder(append(s.config.BuilderOptions(), analyzer.WithLogger(s.logger))...)
	result, err := builder.Build(aFile)
	if err != nil {
		return nil, nil, xerrors.Errorf("analysis of %s aborted: %w", URL, err)
	}
	return result, s.emitter.Emit(result.Forest), nil
}

// Run analyses URL, writes <outputDir>/<base>.uml and renders the image when enabled
func (s *Service) Run(ctx context.Context, URL string) (*Output, error) {
	return s.run(ctx, URL, path.Base(URL))
}

// run analyses URL and writes its diagram to <outputDir>/<name> with the diagram extension
func (s *Service) run(ctx context.Context, URL, name string) (*Output, error) {
	result, diagram, err := s.Analyze(ctx, URL)
	if err != nil {
		return nil, err
	}
	name = strings.TrimSuffix(name, path.Ext(name))
	output := &Output{
		SourceURL:  URL,
		DiagramURL: url.Join(s.config.OutputDir, name+diagramExt),
		Result:     result,
		Diagram:    diagram,
	}
	if output.Unchanged, err = s.sameContent(ctx, output.DiagramURL, diagram); err != nil {
		return nil, err
	}
	if !output.Unchanged {
		if err = s.fs.Upload(ctx, output.DiagramURL, file.DefaultFileOsMode, bytes.NewReader(diagram)); err != nil {
			return nil, xerrors.Errorf("failed to write %s: %w", output.DiagramURL, err)
		}
		s.logger.Info().Str("diagram", output.DiagramURL).Msg("plantuml code saved")
	}
	if s.config.Render {
		if output.ImageURL, err = s.render(ctx, output); err != nil {
			return nil, err
		}
	}
	return output, nil
}

// RunDir runs every .php file found under URL, files are processed concurrently up to the configured limit.
// Diagrams keep the source path relative to URL so equally named files do not collide.
func (s *Service) RunDir(ctx context.Context, URL string) ([]*Output, error) {
	type source struct {
		URL      string
		relative string
	}
	var sources []source
	var visitor storage.OnVisit = func(ctx context.Context, baseURL, parent string, info os.FileInfo, reader io.Reader) (bool, error) {
		if info.IsDir() {
			return true, nil
		}
		if strings.EqualFold(path.Ext(info.Name()), sourceExt) {
			sourceURL := url.Join(baseURL, info.Name())
			if parent != "" {
				sourceURL = url.Join(baseURL, parent, info.Name())
			}
			sources = append(sources, source{URL: sourceURL, relative: path.Join(parent, info.Name())})
		}
		return true, nil
	}
	if err := s.fs.Walk(ctx, URL, visitor); err != nil {
		return nil, xerrors.Errorf("failed to walk %s: %w", URL, err)
	}
	sort.Slice(sources, func(i, j int) bool { return sources[i].URL < sources[j].URL })

	outputs := make([]*Output, len(sources))
	group, groupCtx := errgroup.WithContext(ctx)
	group.SetLimit(s.config.Concurrency)
	for i, src := range sources {
		i, src := i, src
		group.Go(func() error {
			output, err := s.run(groupCtx, src.URL, src.relative)
			if err != nil {
				s.logger.Error().Err(err).Str("source", src.URL).Msg("analysis failed")
				output = &Output{SourceURL: src.URL, Err: err}
			}
			outputs[i] = output
			return nil
		})
	}
	if err := group.Wait(); err != nil {
		return nil, err
	}
	return outputs, nil
}

// sameContent reports whether URL already holds data
func (s *Service) sameContent(ctx context.Context, URL string, data []byte) (bool, error) {
	exists, err := s.fs.Exists(ctx, URL)
	if err != nil || !exists {
		return false, nil
	}
	existing, err := s.fs.DownloadWithURL(ctx, URL)
	if err != nil {
		return false, xerrors.Errorf("failed to read %s: %w", URL, err)
	}
	return bytes.Equal(existing, data), nil
}

// render produces the image for a written diagram, a missing renderer is not an error
func (s *Service) render(ctx context.Context, output *Output) (string, error) {
	if url.Scheme(output.DiagramURL, file.Scheme) != file.Scheme {
		s.logger.Info().Str("diagram", output.DiagramURL).Msg("diagram is not on local storage, skipping image generation")
		return "", nil
	}
	imageURL := strings.TrimSuffix(output.DiagramURL, diagramExt) + imageExt
	if output.Unchanged {
		if exists, _ := s.fs.Exists(ctx, imageURL); exists {
			s.logger.Debug().Str("image", imageURL).Msg("diagram unchanged, image is up to date")
			return imageURL, nil
		}
	}
	err := s.renderer.Render(ctx, url.Path(output.DiagramURL))
	if errors.Is(err, ErrRendererUnavailable) {
		s.logger.Warn().Err(err).Msg("PlantUML not found, skipping image generation")
		return "", nil
	}
	if err != nil {
		return "", xerrors.Errorf("failed to render %s: %w", output.DiagramURL, err)
	}
	s.logger.Info().Str("image", imageURL).Msg("diagram created")
	return imageURL, nil
}
