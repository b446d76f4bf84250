package mapper

import (
	"errors"
	"fmt"
	"log/slog"
	"reflect"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/trace"

	"graph-mapper/internal/mapping"
	"graph-mapper/internal/plan"
	"graph-mapper/node"
)

const tracerName = "graph-mapper/mapper"

// Builder collects configuration and registrations. Build compiles them into
// an immutable Mapper. A Builder is not safe for concurrent use.
type Builder struct {
	cfg    *plan.Config
	logger *slog.Logger
	tracer trace.Tracer
	// files are merged at Build, once every type is known
	files []*mapping.MappingFile
	errs  []error
}

// NewBuilder creates a Builder with the default global configuration.
func NewBuilder(opts ...BuilderOption) *Builder {
	b := &Builder{
		cfg:    plan.NewConfig(),
		logger: slog.New(slog.DiscardHandler),
		tracer: otel.Tracer(tracerName),
	}

	for _, opt := range opts {
		opt(b)
	}

	return b
}

// GlobalConfigurator edits the global configuration layer.
type GlobalConfigurator struct {
	b *Builder
}

// Configure starts editing the global layer.
func (b *Builder) Configure() *GlobalConfigurator {
	return &GlobalConfigurator{b: b}
}

func (g *GlobalConfigurator) SetIdentityPropertyName(name string) *GlobalConfigurator {
	g.b.cfg.Global.IdentityName = name
	return g
}

func (g *GlobalConfigurator) SetConcurrencyTokenPropertyName(name string) *GlobalConfigurator {
	g.b.cfg.Global.TokenName = name
	return g
}

// ExcludeProperties excludes the names from every pair.
func (g *GlobalConfigurator) ExcludeProperties(names ...string) *GlobalConfigurator {
	g.b.cfg.Global.Exclude = append(g.b.cfg.Global.Exclude, names...)
	return g
}

// SetKeepEntityOnMappingRemoved sets the default removal policy: true keeps
// children the source no longer mentions and only unlinks them.
func (g *GlobalConfigurator) SetKeepEntityOnMappingRemoved(keep bool) *GlobalConfigurator {
	g.b.cfg.Global.KeepOnRemoved = keep
	return g
}

func (g *GlobalConfigurator) SetMapToStorageMode(mode Mode) *GlobalConfigurator {
	g.b.cfg.Global.Mode = mode
	return g
}

// SetThrowOnRedundantConfiguration turns useless exclusions and redundant
// property settings into build errors (the default) or warnings.
func (g *GlobalConfigurator) SetThrowOnRedundantConfiguration(throw bool) *GlobalConfigurator {
	g.b.cfg.Global.ThrowOnRedundant = throw
	return g
}

func (g *GlobalConfigurator) Finish() *Builder {
	return g.b
}

// TypeConfigurator edits the layer of one type. It applies to every pair the
// type takes part in.
type TypeConfigurator[T any] struct {
	b  *Builder
	tc *plan.TypeConfig
}

// ConfigureType starts editing the layer of T.
func ConfigureType[T any](b *Builder) *TypeConfigurator[T] {
	return &TypeConfigurator[T]{b: b, tc: b.cfg.Type(typeOf[T]())}
}

func (c *TypeConfigurator[T]) SetIdentityPropertyName(name string) *TypeConfigurator[T] {
	c.tc.IdentityName = name
	return c
}

func (c *TypeConfigurator[T]) SetConcurrencyTokenPropertyName(name string) *TypeConfigurator[T] {
	c.tc.TokenName = name
	return c
}

func (c *TypeConfigurator[T]) ExcludeProperties(names ...string) *TypeConfigurator[T] {
	c.tc.Exclude = append(c.tc.Exclude, names...)
	return c
}

// SetKeepEntityOnMappingRemoved sets the removal policy of navigations whose
// children are T.
func (c *TypeConfigurator[T]) SetKeepEntityOnMappingRemoved(keep bool) *TypeConfigurator[T] {
	c.tc.KeepOnRemoved = &keep
	return c
}

// SetMapToStorageMode sets the mode of pairs targeting T.
func (c *TypeConfigurator[T]) SetMapToStorageMode(mode Mode) *TypeConfigurator[T] {
	c.tc.Mode = mode
	return c
}

func (c *TypeConfigurator[T]) Finish() *Builder {
	return c.b
}

// PairConfigurator edits the layer of the (S, T) pair.
type PairConfigurator[S, T any] struct {
	b  *Builder
	pc *plan.PairConfig
}

// ConfigureTypePair starts editing the layer of the (S, T) pair.
func ConfigureTypePair[S, T any](b *Builder) *PairConfigurator[S, T] {
	return &PairConfigurator[S, T]{b: b, pc: b.cfg.Pair(typeOf[S](), typeOf[T]())}
}

// MapProperty registers fn for the target property name. It runs after the
// default scalar copy, and replaces the default copy of that property.
func (c *PairConfigurator[S, T]) MapProperty(name string, fn func(src *S, dst *T)) *PairConfigurator[S, T] {
	c.pc.Custom = append(c.pc.Custom, plan.CustomMapping{
		Property: name,
		Apply: func(src, dst any) {
			fn(src.(*S), dst.(*T))
		},
	})

	return c
}

func (c *PairConfigurator[S, T]) ExcludePropertiesByName(names ...string) *PairConfigurator[S, T] {
	c.pc.Exclude = append(c.pc.Exclude, names...)
	return c
}

// SetMappingKeepOnRemoved sets the removal policy of every navigation of the
// pair.
func (c *PairConfigurator[S, T]) SetMappingKeepOnRemoved(keep bool) *PairConfigurator[S, T] {
	c.pc.KeepOnRemoved = &keep
	return c
}

// SetPropertyKeepOnRemoved sets the removal policy of one navigation.
func (c *PairConfigurator[S, T]) SetPropertyKeepOnRemoved(name string, keep bool) *PairConfigurator[S, T] {
	c.pc.PropertyKeep[name] = keep
	return c
}

func (c *PairConfigurator[S, T]) SetMapToStorageMode(mode Mode) *PairConfigurator[S, T] {
	c.pc.Mode = mode
	return c
}

func (c *PairConfigurator[S, T]) Finish() *Builder {
	return c.b
}

// RegisterScalarConverter registers fn for every S property paired with a T
// property. It takes precedence over direct assignment and automatic
// conversions.
func RegisterScalarConverter[S, T any](b *Builder, fn func(S) T) *Builder {
	key := node.StructPair{Src: reflect.TypeFor[S](), Dst: reflect.TypeFor[T]()}

	b.cfg.Converters[key] = func(v reflect.Value) (reflect.Value, error) {
		// a nil interface value asserts to the zero S
		in, _ := v.Interface().(S)

		out := reflect.New(key.Dst).Elem()
		if r := reflect.ValueOf(fn(in)); r.IsValid() {
			out.Set(r)
		}

		return out, nil
	}

	return b
}

// RegisterConverter registers a converter function of one of the shapes
// accepted by node.ParseCaster. An invalid function fails Build.
func (b *Builder) RegisterConverter(fn any) *Builder {
	caster, err := node.ParseCaster(fn)
	if err != nil {
		b.errs = append(b.errs, fmt.Errorf("%w: converter: %w", ErrInvalidConfiguration, err))
		return b
	}

	b.cfg.Converters[node.StructPair{Src: caster.Src, Dst: caster.Dst}] = caster.Call

	return b
}

// Register registers the (S, T) pair. S and T are struct types.
func Register[S, T any](b *Builder) *Builder {
	b.cfg.Register(typeOf[S](), typeOf[T](), false)
	return b
}

// RegisterTwoWay registers (S, T) and (T, S).
func RegisterTwoWay[S, T any](b *Builder) *Builder {
	b.cfg.Register(typeOf[S](), typeOf[T](), false)
	b.cfg.Register(typeOf[T](), typeOf[S](), false)

	return b
}

// RegisterGraph registers (S, T) and every pair reachable through
// navigations, matched property by property.
func RegisterGraph[S, T any](b *Builder) *Builder {
	b.cfg.Register(typeOf[S](), typeOf[T](), true)
	return b
}

// LoadConfigFile reads a YAML configuration file. Its structure is checked
// now, type names are resolved by Build.
func (b *Builder) LoadConfigFile(path string) error {
	mf, err := mapping.LoadFile(path)
	if err != nil {
		return err
	}

	return b.addFile(mf)
}

// ApplyConfig is LoadConfigFile for in-memory YAML.
func (b *Builder) ApplyConfig(data []byte) error {
	mf, err := mapping.Parse(data)
	if err != nil {
		return err
	}

	return b.addFile(mf)
}

func (b *Builder) addFile(mf *mapping.MappingFile) error {
	diags := mapping.Validate(mf)
	if err := diags.Error(); err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidConfiguration, err)
	}

	for _, w := range diags.Warnings {
		b.logger.Warn("mapping file", "diagnostic", w.String())
	}

	b.files = append(b.files, mf)

	return nil
}

// Build resolves and validates the configuration and compiles every
// registered pair. The returned error joins every problem found.
func (b *Builder) Build() (*Mapper, error) {
	if len(b.errs) > 0 {
		return nil, errors.Join(b.errs...)
	}

	if len(b.files) > 0 {
		known := mapping.CollectTypes(b.knownRoots()...)

		var errs []error
		for _, mf := range b.files {
			errs = append(errs, mapping.Apply(mf, b.cfg, known))
		}

		// merged into cfg, a second Build must not append their lists again
		b.files = nil

		if err := errors.Join(errs...); err != nil {
			return nil, err
		}
	}

	p, err := plan.NewResolver(b.cfg).Resolve()
	if err != nil {
		return nil, err
	}

	for _, w := range p.Diagnostics.Warnings {
		b.logger.Warn("tolerated configuration", "code", w.Code, "pair", w.TypePair, "property", w.FieldPath, "diagnostic", w.String())
	}

	m := &Mapper{
		pairs:    compile(p),
		logger:   b.logger,
		tracer:   b.tracer,
		warnings: make([]string, 0, len(p.Diagnostics.Warnings)),
	}

	for _, w := range p.Diagnostics.Warnings {
		m.warnings = append(m.warnings, w.String())
	}

	b.logger.Debug("mapper built", "pairs", len(m.pairs))

	return m, nil
}

func (b *Builder) knownRoots() []reflect.Type {
	roots := make([]reflect.Type, 0, 2*len(b.cfg.Registrations)+len(b.cfg.Types))

	for _, reg := range b.cfg.Registrations {
		roots = append(roots, reg.Pair.Src, reg.Pair.Dst)
	}

	for t := range b.cfg.Types {
		roots = append(roots, t)
	}

	for pair := range b.cfg.Pairs {
		roots = append(roots, pair.Src, pair.Dst)
	}

	return roots
}

func typeOf[T any]() reflect.Type {
	return node.Base(reflect.TypeFor[T]())
}
