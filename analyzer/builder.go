package analyzer

import (
	"strings"

	"github.com/rs/xid"
	"github.com/rs/zerolog"
	"github.com/viant/phpuml/analyzer/activity"
	"github.com/viant/phpuml/inspector/graph"
	"github.com/viant/phpuml/logging"
)

// Builder builds a semantically checked activity forest from a parsed file.
// A Builder holds configuration only, every Build call runs on fresh state.
type Builder struct {
	builtins     map[string]bool
	hoist        bool
	maxCallDepth int
	logger       zerolog.Logger
}

// Result is the outcome of a successful build
type Result struct {
	Forest    activity.Forest
	Functions FunctionTable
	Symbols   SymbolTable // Top-level symbols after the walk
	Warnings  []*activity.Warning
}

// NewBuilder creates a builder
func NewBuilder(options ...Option) *Builder {
	b := &Builder{
		builtins:     map[string]bool{},
		hoist:        true,
		maxCallDepth: DefaultMaxCallDepth,
		logger:       logging.RootLogger,
	}
	for _, name := range DefaultBuiltins {
		b.builtins[name] = true
	}
	for _, option := range options {
		option(b)
	}
	return b
}

// Build walks file and returns its activity forest, the first semantic error aborts the walk
func (b *Builder) Build(file *graph.File) (*Result, error) {
	s := &state{
		builder:   b,
		symbols:   SymbolTable{},
		functions: FunctionTable{},
		logger: b.logger.With().
			Str("run", xid.New().String()).
			Str("file", file.Path).
			Logger(),
	}
	if err := s.run(file); err != nil {
		s.logger.Error().Err(err).Msg("analysis aborted")
		return nil, err
	}
	s.logger.Debug().Int("activities", s.forest.Count()).Int("warnings", len(s.warnings)).Msg("analysis completed")
	return &Result{
		Forest:    s.forest,
		Functions: s.functions,
		Symbols:   s.symbols,
		Warnings:  s.warnings,
	}, nil
}

// state is owned by a single Build run
type state struct {
	builder   *Builder
	forest    activity.Forest
	stack     []*activity.Activity // open composite activities
	symbols   SymbolTable
	functions FunctionTable
	chain     []string // names of functions being inlined, outermost first
	warnings  []*activity.Warning
	logger    zerolog.Logger
}

func (s *state) run(file *graph.File) error {
	if s.builder.hoist {
		for _, fn := range file.Functions {
			if err := s.declare(fn); err != nil {
				return err
			}
		}
	}
	return s.visitAll(file.Statements)
}

// add attaches a to the innermost open activity or to the forest
func (s *state) add(a *activity.Activity) {
	if n := len(s.stack); n > 0 {
		s.stack[n-1].Append(a)
		return
	}
	s.forest = append(s.forest, a)
}

// open adds a and makes it the innermost open activity until the returned close is called
func (s *state) open(a *activity.Activity) func() {
	s.add(a)
	saved := s.stack
	s.stack = append(saved[:len(saved):len(saved)], a)
	return func() {
		s.stack = saved
	}
}

// enterCall opens a call activity with a fresh symbol scope, the returned func restores stack, scope and chain
func (s *state) enterCall(a *activity.Activity, fn *graph.Function) func() {
	closeActivity := s.open(a)
	savedSymbols := s.symbols
	savedChain := s.chain
	s.symbols = savedSymbols.Clone()
	for _, param := range fn.Params {
		s.symbols.Bind(param, TypeUnknown)
	}
	s.chain = append(savedChain[:len(savedChain):len(savedChain)], fn.Name)
	return func() {
		s.chain = savedChain
		s.symbols = savedSymbols
		closeActivity()
	}
}

// declare registers fn, reaching the same declaration again is a no-op while a second declaration of the name is fatal
func (s *state) declare(fn *graph.Function) error {
	if fn == nil || fn.Name == "" {
		return nil
	}
	if existing := s.functions.Lookup(fn.Name); existing != nil {
		if existing == fn {
			return nil
		}
		if existing.Location != nil {
			return newError(FunctionRedeclared, fn.Location, "cannot redeclare function '%s()', previously declared at line %d", fn.Name, existing.Location.StartLine)
		}
		return newError(FunctionRedeclared, fn.Location, "cannot redeclare function '%s()'", fn.Name)
	}
	s.functions.Declare(fn)
	s.logger.Debug().Str("function", fn.Name).Int("params", fn.ParamCount()).Msg("function declared")
	return nil
}

func (s *state) bind(name string, typ Type) {
	s.symbols.Bind(name, typ)
	s.logger.Debug().Str("variable", "$"+name).Str("type", string(typ)).Msg("variable declared")
}

func (s *state) warn(kind activity.WarningKind, location *graph.Location, message string) {
	w := &activity.Warning{Kind: kind, Message: message, Location: location}
	s.warnings = append(s.warnings, w)
	s.logger.Warn().Str("kind", string(kind)).Msg(w.String())
}

func (s *state) isBuiltin(name string) bool {
	return s.builder.builtins[name] || s.builder.builtins[strings.ToLower(name)]
}

func (s *state) onChain(name string) bool {
	for _, active := range s.chain {
		if active == name {
			return true
		}
	}
	return false
}
