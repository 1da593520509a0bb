package vm

// Framebuffer is the monochrome display, indexed [y][x].
type Framebuffer [ScreenHeight][ScreenWidth]bool

// Pixel reports whether the pixel at (x, y) is lit. Coordinates wrap.
func (f *Framebuffer) Pixel(x, y int) bool {
	return f[y%ScreenHeight][x%ScreenWidth]
}

// Clear turns off every pixel.
func (f *Framebuffer) Clear() {
	*f = Framebuffer{}
}

// DrawSprite XORs sprite rows onto the screen with the top left corner at
// (x, y), wrapping around both edges. It reports whether any lit pixel was
// turned off.
func (f *Framebuffer) DrawSprite(x, y uint8, sprite []uint8) bool {
	const width = 8

	collision := false
	for row, bits := range sprite {
		py := (int(y) + row) % ScreenHeight
		for col := 0; col < width; col++ {
			if bits&(0x80>>col) == 0 {
				continue
			}

			px := (int(x) + col) % ScreenWidth
			if f[py][px] {
				collision = true
			}
			f[py][px] = !f[py][px]
		}
	}

	return collision
}
