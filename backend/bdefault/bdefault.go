// Package bdefault registers all display backends.
package bdefault

import (
	_ "github.com/srlehn/fbport/backend/fbdev"
	_ "github.com/srlehn/fbport/backend/headless"
	_ "github.com/srlehn/fbport/backend/x11"
)
