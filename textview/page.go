package textview

// Page is the laid-out content of the visible screen: the ordered list of
// areas and the regions built over it.
type Page struct {
	areas   []*Area
	regions []*Region
}

// NewPage builds a page from areas in document order. Consecutive areas
// sharing a non-nil soul are grouped into one region.
func NewPage(areas []*Area) *Page {
	p := &Page{areas: areas}
	start := -1
	for i, a := range areas {
		if start >= 0 && areas[start].Soul != a.Soul {
			p.regions = append(p.regions, NewRegion(areas[start].Soul, areas, start, i))
			start = -1
		}
		if start < 0 && a.Soul != nil {
			start = i
		}
	}
	if start >= 0 {
		p.regions = append(p.regions, NewRegion(areas[start].Soul, areas, start, len(areas)))
	}
	return p
}

// Size returns the number of areas on the page.
func (p *Page) Size() int {
	return len(p.areas)
}

// Get returns the i-th area.
func (p *Page) Get(i int) *Area {
	return p.areas[i]
}

// Areas returns all areas of the page.
func (p *Page) Areas() []*Area {
	return p.areas
}

// Regions returns the selectable regions of the page.
func (p *Page) Regions() []*Region {
	return p.regions
}

// IndexOf returns the index of the area at the same document position as
// area, or -1 if the page does not contain it.
func (p *Page) IndexOf(area *Area) int {
	if area == nil {
		return -1
	}
	for i, a := range p.areas {
		if a.Compare(area) == 0 {
			return i
		}
	}
	return -1
}

// FindRegion returns the region accepted by filter that lies closest to the
// point, provided its distance does not exceed maxDistance. Ties go to the
// earlier region.
func (p *Page) FindRegion(x, y, maxDistance int, filter RegionFilter) *Region {
	if filter == nil {
		filter = AnyRegionFilter
	}
	var best *Region
	bestDistance := maxDistance + 1
	for _, r := range p.regions {
		if !filter(r) {
			continue
		}
		d := r.DistanceTo(x, y)
		if d < bestDistance {
			best = r
			bestDistance = d
			if d == 0 {
				break
			}
		}
	}
	return best
}
