package ports

// TextureConsumer receives frames rendered into pooled images when the
// output target is a pooled-texture consumer rather than a display surface.
//
// The consumer must wait on fence before reading img, and must call release
// exactly once per delivered image, passing the image's timestamp. Releasing
// timestamp T recycles every pooled image with timestamp <= T, so out-of-order
// release calls are collapsed rather than reordered.
type TextureConsumer interface {
	OnImageRendered(img Image, timestampUs int64, release func(timestampUs int64), fence Fence)
}
