package router

import "context"

// Resolver resolves navigation paths on behalf of a transport.
type Resolver interface {
	Resolve(ctx context.Context, path string) (*MatchResult, error)
}

// ResolverFunc is a function adapter for Resolver.
type ResolverFunc func(ctx context.Context, path string) (*MatchResult, error)

// Resolve implements Resolver.
func (f ResolverFunc) Resolve(ctx context.Context, path string) (*MatchResult, error) {
	return f(ctx, path)
}

// Middleware wraps a Resolver with cross-cutting behaviour such as metrics
// or tracing.
type Middleware func(next Resolver) Resolver

// Resolver adapts the table to the Resolver interface.
// The context is not consulted; resolution never blocks.
func (t *Table) Resolver() Resolver {
	return ResolverFunc(func(_ context.Context, path string) (*MatchResult, error) {
		return t.Resolve(path)
	})
}

// Chain wraps r with middleware. Middleware runs in order (first to last),
// with r at the end.
func Chain(r Resolver, mw ...Middleware) Resolver {
	for i := len(mw) - 1; i >= 0; i-- {
		if mw[i] != nil {
			r = mw[i](r)
		}
	}
	return r
}

// Skip bypasses mw for paths where condition is true.
func Skip(condition func(path string) bool, mw Middleware) Middleware {
	return func(next Resolver) Resolver {
		wrapped := mw(next)
		return ResolverFunc(func(ctx context.Context, path string) (*MatchResult, error) {
			if condition(path) {
				return next.Resolve(ctx, path)
			}
			return wrapped.Resolve(ctx, path)
		})
	}
}
