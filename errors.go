package llist

import "errors"

// ErrIteratorInvalidated is returned by [Iterator.Next] and
// [Iterator.Prev] when the structural-drift repair loop could not
// re-synchronize the cursor with the live chain within [MaxRetries]
// steps. Unlike every other failure mode in this package, it is
// propagated as a control-flow break rather than absorbed: silently
// terminating iteration at that point would look like reaching the end
// of the list and would hide the fact that data may have been skipped.
var ErrIteratorInvalidated = errors.New("llist: iterator invalidated")
