// Package httputil provides retry support for index fetches.
//
// # Retry
//
// [Retry] re-runs an operation while it fails with a [RetryableError],
// doubling the delay between attempts:
//
//	err := httputil.Retry(ctx, 3, time.Second, func() error {
//	    resp, err := client.Do(req)
//	    if err != nil {
//	        return &httputil.RetryableError{Err: err}
//	    }
//	    ...
//	})
//
// Wrap only transient failures (network errors, 5xx responses). Anything
// else is returned immediately.
//
// The scanner runs with a single attempt unless configured otherwise: a
// package whose fetch fails is reported negative for that run.
package httputil
