package markdown

import (
	"html"
	"strconv"
	"strings"

	"github.com/alnah/go-talksite/internal/index"
)

// Map canvas size in SVG user units.
const (
	MapWidth  = 900
	MapHeight = 450
)

// continents are coarse outlines as (lon, lat) pairs. They only need to be
// recognizable behind the dots.
var continents = [][][2]float64{
	// North America
	{{-168, 66}, {-140, 70}, {-95, 72}, {-80, 63}, {-60, 52}, {-66, 44}, {-81, 25}, {-97, 26}, {-105, 20}, {-90, 15}, {-79, 8}, {-95, 16}, {-110, 23}, {-117, 32}, {-124, 40}, {-125, 49}, {-150, 59}, {-166, 60}},
	// Greenland
	{{-52, 60}, {-20, 70}, {-18, 80}, {-60, 83}, {-72, 77}},
	// South America
	{{-80, 8}, {-60, 11}, {-35, -6}, {-40, -22}, {-58, -38}, {-68, -55}, {-75, -50}, {-71, -18}, {-81, -5}},
	// Europe
	{{-10, 36}, {-9, 43}, {-2, 48}, {5, 53}, {8, 58}, {18, 70}, {30, 70}, {40, 66}, {45, 55}, {40, 45}, {28, 41}, {24, 36}, {12, 44}, {3, 42}},
	// Africa
	{{-17, 21}, {-6, 36}, {10, 37}, {33, 31}, {43, 12}, {51, 12}, {40, -15}, {33, -28}, {20, -35}, {12, -17}, {9, 4}, {-8, 4}},
	// Asia
	{{28, 41}, {36, 36}, {48, 30}, {57, 25}, {66, 25}, {78, 8}, {90, 22}, {104, 2}, {108, 12}, {122, 30}, {122, 40}, {142, 52}, {160, 60}, {180, 67}, {150, 72}, {100, 78}, {68, 73}, {45, 55}, {40, 45}},
	// Australia
	{{114, -22}, {130, -12}, {142, -11}, {153, -25}, {150, -37}, {140, -38}, {131, -31}, {115, -34}},
}

// WorldMap renders past-talk locations as an SVG, or "" when no point is
// known.
func WorldMap(points []index.MapPoint) string {
	if len(points) == 0 {
		return ""
	}

	var b strings.Builder
	b.WriteString(`<figure class="world-map">` + "\n")
	b.WriteString(`<svg viewBox="0 0 ` + strconv.Itoa(MapWidth) + ` ` + strconv.Itoa(MapHeight) + `" xmlns="http://www.w3.org/2000/svg" role="img" aria-label="Places where talks were given">` + "\n")
	for _, c := range continents {
		b.WriteString(`<path class="land" d="` + ContinentPath(c, MapWidth, MapHeight) + `"/>` + "\n")
	}
	for _, p := range points {
		x, y := p.Coord.Project(MapWidth, MapHeight)
		r := 4 + min(p.Count, 5)
		b.WriteString(`<circle class="map-dot" cx="` + coord(x) + `" cy="` + coord(y) + `" r="` + strconv.Itoa(r) + `">`)
		b.WriteString(`<title>` + html.EscapeString(p.Label()) + `</title></circle>` + "\n")
	}
	b.WriteString(`</svg>` + "\n")
	b.WriteString(`</figure>`)
	return b.String()
}

// ContinentPath turns an outline into a closed SVG path.
func ContinentPath(outline [][2]float64, width, height float64) string {
	var b strings.Builder
	for i, ll := range outline {
		x, y := index.Project(ll[0], ll[1], width, height)
		if i == 0 {
			b.WriteString("M")
		} else {
			b.WriteString(" L")
		}
		b.WriteString(coord(x) + "," + coord(y))
	}
	b.WriteString(" Z")
	return b.String()
}

func coord(v float64) string {
	return strconv.FormatFloat(v, 'f', 1, 64)
}
