package scene

import "errors"

var (
	ErrInvalidVertexIndex   = errors.New("scene: vertex index out of range")
	ErrInvalidMaterialIndex = errors.New("scene: material index out of range")
	ErrInvalidTextureIndex  = errors.New("scene: texture index out of range")
	ErrInvalidTexture       = errors.New("scene: texture pixel count does not match its size")
	ErrMissingTexCoords     = errors.New("scene: textured material used by triangle without texture coordinates")
	ErrInvalidMediumScale   = errors.New("scene: medium scale must be positive and finite")
)

// ErrUnknownScene is returned by Load for names missing from the registry
var ErrUnknownScene = errors.New("scene: unknown scene")
