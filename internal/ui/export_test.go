package ui

// Exported for tests.
var (
	RenderPages     = renderPages
	RenderIndexedAt = renderIndexedAt
)
