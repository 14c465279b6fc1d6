package gate

import "errors"

// ErrLocked indicates the tools surface has not been unlocked.
var ErrLocked = errors.New("tools are locked")
