package motion

// openRadius derives the structuring-element radius from the frame
// geometry: one percent of the smaller dimension, never below 3.
func openRadius(width, height int) int {
	min := width
	if height < min {
		min = height
	}
	r := min / 100
	if r < 3 {
		r = 3
	}
	return r
}

// open performs a morphological opening (erosion then dilation) on the
// intensity map with a disk of the given radius. Isolated spikes smaller
// than the disk are removed; connected regions larger than it keep their
// interior. Pixels within radius of any edge are skipped by both passes,
// leaving a thin unfiltered border.
func (f *Filter) open(radius int) {
	f.diskPass(radius, true)
	f.diskPass(radius, false)
}

// diskPass replaces every interior pixel with the minimum (erode) or
// maximum (dilate) intensity found within the disk centered on it. All
// neighborhood reads go through a snapshot taken at pass start, so a
// pixel's result never depends on values already rewritten in the same
// pass.
func (f *Filter) diskPass(radius int, erode bool) {
	copy(f.scratch, f.intensity)

	rr := radius * radius
	for y := radius; y < f.height-radius; y++ {
		for x := radius; x < f.width-radius; x++ {
			best := 0.0
			if erode {
				best = 255.0
			}
			for dy := -radius; dy <= radius; dy++ {
				for dx := -radius; dx <= radius; dx++ {
					if dx*dx+dy*dy > rr {
						continue
					}
					v := f.scratch[(y+dy)*f.width+(x+dx)]
					if erode {
						if v < best {
							best = v
						}
					} else if v > best {
						best = v
					}
				}
			}
			f.intensity[y*f.width+x] = best
		}
	}
}
