// Package catalog implements shutter's use cases on top of the API client and
// the entity store.
//
// Every operation follows the same shape:
//
//	result, err := client.X(ctx, ...)   // exactly one round trip
//	if err != nil {
//		return err                       // store untouched, error as-is
//	}
//	store.Dispatch(event{result})       // exactly one merge
//
// There are no retries, no timeouts beyond the caller's context, and no
// de-duplication of concurrent identical requests. When two fetches are in
// flight their merges land in the order the responses arrive.
//
// Operations block; wrap them with Go to get a Task when the caller wants to
// start several and collect them later.
package catalog
