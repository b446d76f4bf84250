package mapper

import (
	"log/slog"

	"go.opentelemetry.io/otel/trace"

	"graph-mapper/primitive"
)

// BuilderOption configures a Builder.
type BuilderOption func(*Builder)

// WithLogger sets the logger of the built Mapper. The default discards.
func WithLogger(logger *slog.Logger) BuilderOption {
	return func(b *Builder) {
		if logger != nil {
			b.logger = logger
		}
	}
}

// WithTracer sets the tracer used for storage mappings. The default comes
// from the global otel TracerProvider.
func WithTracer(tracer trace.Tracer) BuilderOption {
	return func(b *Builder) {
		if tracer != nil {
			b.tracer = tracer
		}
	}
}

// WithAutoConversions selects the automatic scalar conversion categories.
// The default is primitive.CategoryDefault.
func WithAutoConversions(categories primitive.CategoryEnum) BuilderOption {
	return func(b *Builder) {
		b.cfg.AutoConversions = categories
	}
}

// MapOption adjusts a single mapping call.
type MapOption func(*callOptions)

type callOptions struct {
	query         Query
	keepUnmatched bool
}

func newCallOptions(opts []MapOption) callOptions {
	var co callOptions
	for _, opt := range opts {
		opt(&co)
	}

	return co
}

// WithQuery replaces the query used to fetch the root entity.
func WithQuery(q Query) MapOption {
	return func(co *callOptions) {
		co.query = q
	}
}

// WithInclude adds navigation paths to load with the root entity.
func WithInclude(paths ...string) MapOption {
	return func(co *callOptions) {
		co.query.Includes = append(co.query.Includes, paths...)
	}
}

// WithKeepUnmatched leaves target children the source does not mention
// untouched, for sources that carry a partial view of a collection.
func WithKeepUnmatched() MapOption {
	return func(co *callOptions) {
		co.keepUnmatched = true
	}
}
