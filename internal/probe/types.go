package probe

// ImageInfo holds the header-level properties of one image file.
type ImageInfo struct {
	Path   string
	Format string // "png" or "jpeg"
	Width  int
	Height int
}
