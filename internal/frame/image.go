package frame

import "image"

// ToRGBA copies the buffer into a standard library image for display.
// Alpha is fully opaque.
func (b *Buffer) ToRGBA() *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, b.Width, b.Height))
	for y := 0; y < b.Height; y++ {
		src := y * b.Stride
		dst := y * img.Stride
		for x := 0; x < b.Width; x++ {
			so := src + x*b.PixelStride
			do := dst + x*4
			img.Pix[do] = b.Data[so]
			img.Pix[do+1] = b.Data[so+1]
			img.Pix[do+2] = b.Data[so+2]
			img.Pix[do+3] = 0xff
		}
	}
	return img
}
