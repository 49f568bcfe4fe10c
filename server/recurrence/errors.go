package recurrence

import "errors"

// ErrMissingData is returned by the expander when a rule carries no anchor
// instant and none can be derived. It is the only structured failure the
// engine raises; everything else (empty day sets, empty time sets, a
// period with no matches) is benign and simply advances the outer loop.
var ErrMissingData = errors.New("recurrence: rule has no dtstart and no default can be derived")
