// Package index fetches pages and artifacts from a package index.
//
// # Overview
//
// A [Client] speaks to a PEP 503 "simple" index such as
// https://pypi.org/simple. Three kinds of fetch are made:
//
//   - the catalog root listing ([Client.FetchRoot])
//   - one release listing per package ([Client.FetchListing])
//   - artifact downloads ([Client.Fetch])
//
// Listings may be served from a [cache.Cache]; artifacts never are.
//
// # Errors
//
// Every failure comes back as a coded error: NOT_FOUND for 404
// responses and TRANSPORT_ERROR for everything else (connection errors,
// timeouts, unexpected status codes, truncated bodies). The sentinels
// [ErrNotFound] and [ErrNetwork] remain reachable through errors.Is.
//
// # Retries
//
// Connection errors and 5xx responses are retried through
// [httputil.Retry] when Options.Retries is greater than one. The default
// is a single attempt.
//
// [cache.Cache]: github.com/matzehuels/pthscan/pkg/cache.Cache
// [httputil.Retry]: github.com/matzehuels/pthscan/pkg/httputil.Retry
package index
