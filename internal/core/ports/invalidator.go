package ports

// ViewInvalidator signals the rendering layer that a path-keyed cached view
// is stale. Calls are fire-and-forget; a lost signal only delays a refresh.
type ViewInvalidator interface {
	Invalidate(path string)
}
