package lang

import (
	"context"
	"io"
	"log/slog"
	"strconv"
	"sync"

	"github.com/klauspost/readahead"
	"github.com/zeebo/xxh3"
)

// globalCache stores parsed scene roots keyed by source hash.
var globalCache sync.Map

// state tracks the one-time parse of a source.
type state struct {
	root *Create
	err  error
	once sync.Once
}

// ParseReader parses input from an io.Reader and returns the AST.
// The parse result is cached by content hash, so rereading an unchanged
// source parses only once.
func ParseReader(ctx context.Context, r io.Reader, opts ...Option) (*AST, error) {
	// Wrap the reader with async read-ahead so data is prefetched while
	// earlier chunks are consumed.
	ra := readahead.NewReader(r)
	defer ra.Close()

	data, err := io.ReadAll(ra)
	if err != nil {
		return nil, ErrReadInput.Wrap(err)
	}

	var tempAST AST

	applyDefaults(&tempAST)
	applyOptions(&tempAST, opts...)

	tempAST.logger.TraceContext(ctx, "read input",
		slog.Int("source_bytes", len(data)),
		slog.Bool("read_ahead", true))

	return ParseCached(ctx, string(data), opts...)
}

// ParseCached parses a source string, reusing a previously parsed tree
// for identical input. The parsed tree is immutable and safely shared
// between the returned ASTs.
func ParseCached(ctx context.Context, source string, opts ...Option) (*AST, error) {
	var tempAST AST

	applyDefaults(&tempAST)
	applyOptions(&tempAST, opts...)

	hash := xxh3.Hash([]byte(source))
	key := strconv.FormatUint(hash, 36)

	entry := new(state)

	value, hit := globalCache.LoadOrStore(key, entry)

	cached, ok := value.(*state)
	if !ok {
		return nil, NewError("invalid cache entry")
	}

	tempAST.logger.TraceContext(ctx, "cache lookup",
		slog.String("source_hash", strconv.FormatUint(hash, 16)),
		slog.Bool("cache_hit", hit))

	cached.once.Do(func() {
		ast, err := ParseString(ctx, source, opts...)
		if err != nil {
			cached.err = err
			return
		}

		cached.root = ast.Root
	})

	if cached.err != nil {
		return nil, cached.err
	}

	ast := &AST{Root: cached.root, Source: source}

	applyDefaults(ast)
	applyOptions(ast, opts...)

	return ast, nil
}

// ClearCache removes all cached parse results.
// This is primarily useful for testing or when memory needs to be
// reclaimed.
func ClearCache() {
	globalCache = sync.Map{}
}
