package helm3d

import "errors"

var (
	ErrNoSurface     = errors.New("no rendering surface")
	ErrInvalidConfig = errors.New("invalid configuration")
	ErrSceneClosed   = errors.New("scene is closed")
)
