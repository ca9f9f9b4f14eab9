package activecampaign

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"

	"github.com/fivetwenty-io/activecampaign/internal/constants"
)

// PageFetcher returns the raw body of one page of a limit/offset list
// endpoint.
type PageFetcher func(ctx context.Context, limit, offset int) ([]byte, error)

// AggregateOptions configures Aggregate.
type AggregateOptions struct {
	// PageSize is the limit of each request. Zero uses 100.
	PageSize int
	// Collections names the arrays to merge, e.g. "accounts".
	Collections []string
	// Dedupe names the collections whose records are deduplicated by full
	// value equality after merging.
	Dedupe []string
	// Debug reports progress through Logger after each page.
	Debug bool
	// Logger receives progress when Debug is set.
	Logger Logger
}

// AggregateResult holds the merged collections of every page.
type AggregateResult struct {
	// Total is meta.total of the first page.
	Total int
	// Pages is the number of pages fetched.
	Pages int
	// Collections maps a collection name to its records in fetch order.
	Collections map[string][]json.RawMessage
}

// Collection returns the merged records of name, never nil.
func (r *AggregateResult) Collection(name string) []json.RawMessage {
	if r == nil || r.Collections[name] == nil {
		return []json.RawMessage{}
	}

	return r.Collections[name]
}

// Aggregate walks every page of a list endpoint and merges the named
// collections.
//
// The page count is computed once from the first page's meta.total; if the
// remote total changes while iterating (concurrent writes), later pages are
// neither re-counted nor reconciled. Pages are fetched one at a time in
// increasing offset order and any failure aborts the whole call.
func Aggregate(ctx context.Context, fetch PageFetcher, opts AggregateOptions) (*AggregateResult, error) {
	pageSize := opts.PageSize
	if pageSize <= 0 {
		pageSize = constants.DefaultAggregatePageSize
	}

	logger := opts.Logger
	if logger == nil {
		logger = NoopLogger{}
	}

	result := &AggregateResult{
		Collections: make(map[string][]json.RawMessage, len(opts.Collections)),
	}
	for _, name := range opts.Collections {
		result.Collections[name] = []json.RawMessage{}
	}

	first, err := fetchPage(ctx, fetch, pageSize, 0)
	if err != nil {
		return nil, err
	}

	result.Total = first.Meta.Total.Int()
	result.Pages = pageCount(result.Total, pageSize)

	if result.Total == 0 {
		result.Pages = 1

		return result, nil
	}

	result.merge(first, opts.Collections)

	if opts.Debug {
		logger.Info("fetched page", map[string]interface{}{"page": 1, "pages": result.Pages})
	}

	for page := 1; page < result.Pages; page++ {
		next, err := fetchPage(ctx, fetch, pageSize, page*pageSize)
		if err != nil {
			return nil, err
		}

		result.merge(next, opts.Collections)

		if opts.Debug {
			logger.Info("fetched page", map[string]interface{}{"page": page + 1, "pages": result.Pages})
		}
	}

	for _, name := range opts.Dedupe {
		deduped, err := dedupe(result.Collections[name])
		if err != nil {
			return nil, fmt.Errorf("deduplicating %s: %w", name, err)
		}

		result.Collections[name] = deduped
	}

	return result, nil
}

// DecodeCollection decodes the merged records of name into T.
func DecodeCollection[T any](result *AggregateResult, name string) ([]T, error) {
	raw := result.Collection(name)
	items := make([]T, 0, len(raw))

	for i, item := range raw {
		var decoded T

		err := json.Unmarshal(item, &decoded)
		if err != nil {
			return nil, fmt.Errorf("parsing %s[%d]: %w", name, i, err)
		}

		items = append(items, decoded)
	}

	return items, nil
}

// rawPage is a page decoded just enough to find meta and the collections.
type rawPage struct {
	Meta        Meta
	Collections map[string]json.RawMessage
}

func fetchPage(ctx context.Context, fetch PageFetcher, limit, offset int) (*rawPage, error) {
	body, err := fetch(ctx, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("fetching page at offset %d: %w", offset, err)
	}

	var fields map[string]json.RawMessage

	err = json.Unmarshal(body, &fields)
	if err != nil {
		return nil, fmt.Errorf("parsing page at offset %d: %w", offset, err)
	}

	page := &rawPage{Collections: fields}

	if metaRaw, ok := fields["meta"]; ok {
		err = json.Unmarshal(metaRaw, &page.Meta)
		if err != nil {
			return nil, fmt.Errorf("parsing meta at offset %d: %w", offset, err)
		}
	}

	return page, nil
}

func (r *AggregateResult) merge(page *rawPage, names []string) {
	for _, name := range names {
		raw, ok := page.Collections[name]
		if !ok {
			continue
		}

		var items []json.RawMessage
		if json.Unmarshal(raw, &items) != nil {
			// Sparse responses occasionally carry null or {} in place of an
			// empty array.
			continue
		}

		r.Collections[name] = append(r.Collections[name], items...)
	}
}

func pageCount(total, pageSize int) int {
	if total <= 0 {
		return 0
	}

	return (total + pageSize - 1) / pageSize
}

// dedupe drops records structurally equal to an earlier one, keeping the
// first occurrence and the original order. Equality is on the whole decoded
// value, so key order and whitespace do not matter but every field does.
func dedupe(items []json.RawMessage) ([]json.RawMessage, error) {
	seen := make(map[string]struct{}, len(items))
	out := make([]json.RawMessage, 0, len(items))

	for _, item := range items {
		key, err := canonicalJSON(item)
		if err != nil {
			return nil, err
		}

		if _, dup := seen[key]; dup {
			continue
		}

		seen[key] = struct{}{}
		out = append(out, item)
	}

	return out, nil
}

// canonicalJSON re-encodes a value so that equal values encode identically;
// encoding/json sorts map keys. Numbers are kept as their literal text so
// integers beyond float64 precision stay distinct.
func canonicalJSON(raw json.RawMessage) (string, error) {
	var value interface{}

	decoder := json.NewDecoder(bytes.NewReader(raw))
	decoder.UseNumber()

	err := decoder.Decode(&value)
	if err != nil {
		return "", fmt.Errorf("parsing record: %w", err)
	}

	encoded, err := json.Marshal(value)
	if err != nil {
		return "", fmt.Errorf("encoding record: %w", err)
	}

	return string(encoded), nil
}
