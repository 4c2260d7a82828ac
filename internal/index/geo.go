package index

import "strings"

// Coord is a position in decimal degrees.
type Coord struct {
	Lat float64
	Lon float64
}

// Project maps c onto a width x height equirectangular canvas whose top-left
// corner is (-180, 90).
func (c Coord) Project(width, height float64) (x, y float64) {
	return Project(c.Lon, c.Lat, width, height)
}

// Project maps a longitude and latitude onto a width x height canvas.
func Project(lon, lat, width, height float64) (x, y float64) {
	x = (lon + 180) / 360 * width
	y = (90 - lat) / 180 * height
	return x, y
}

// Lookup returns the coordinates of a known city, or nil.
func Lookup(city string) *Coord {
	c, ok := cityCoords[strings.ToLower(strings.TrimSpace(city))]
	if !ok {
		return nil
	}
	return &c
}

// Flag returns the emoji flag for a known country name, or "".
func Flag(country string) string {
	return countryFlags[strings.ToLower(strings.TrimSpace(country))]
}

var cityCoords = map[string]Coord{
	"amsterdam":      {52.37, 4.90},
	"athens":         {37.98, 23.73},
	"atlanta":        {33.75, -84.39},
	"austin":         {30.27, -97.74},
	"bangalore":      {12.97, 77.59},
	"bengaluru":      {12.97, 77.59},
	"barcelona":      {41.39, 2.17},
	"beijing":        {39.90, 116.41},
	"berlin":         {52.52, 13.40},
	"boston":         {42.36, -71.06},
	"boulder":        {40.01, -105.27},
	"brussels":       {50.85, 4.35},
	"buenos aires":   {-34.60, -58.38},
	"cape town":      {-33.92, 18.42},
	"chicago":        {41.88, -87.63},
	"chennai":        {13.08, 80.27},
	"copenhagen":     {55.68, 12.57},
	"delhi":          {28.61, 77.21},
	"new delhi":      {28.61, 77.21},
	"denver":         {39.74, -104.99},
	"dublin":         {53.35, -6.26},
	"geneva":         {46.20, 6.14},
	"hamburg":        {53.55, 9.99},
	"heidelberg":     {49.40, 8.67},
	"honolulu":       {21.31, -157.86},
	"houston":        {29.76, -95.37},
	"hyderabad":      {17.39, 78.49},
	"kolkata":        {22.57, 88.36},
	"kyoto":          {35.01, 135.77},
	"lisbon":         {38.72, -9.14},
	"london":         {51.51, -0.13},
	"los angeles":    {34.05, -118.24},
	"madrid":         {40.42, -3.70},
	"melbourne":      {-37.81, 144.96},
	"mexico city":    {19.43, -99.13},
	"montreal":       {45.50, -73.57},
	"mumbai":         {19.08, 72.88},
	"munich":         {48.14, 11.58},
	"new york":       {40.71, -74.01},
	"paris":          {48.86, 2.35},
	"pasadena":       {34.15, -118.14},
	"phoenix":        {33.45, -112.07},
	"prague":         {50.08, 14.44},
	"pune":           {18.52, 73.86},
	"rome":           {41.90, 12.50},
	"san diego":      {32.72, -117.16},
	"san francisco":  {37.77, -122.42},
	"santiago":       {-33.45, -70.67},
	"seattle":        {47.61, -122.33},
	"seoul":          {37.57, 126.98},
	"singapore":      {1.35, 103.82},
	"stockholm":      {59.33, 18.07},
	"sydney":         {-33.87, 151.21},
	"tokyo":          {35.68, 139.69},
	"toronto":        {43.65, -79.38},
	"tucson":         {32.22, -110.97},
	"vancouver":      {49.28, -123.12},
	"vienna":         {48.21, 16.37},
	"washington":     {38.91, -77.04},
	"washington, dc": {38.91, -77.04},
	"zurich":         {47.38, 8.54},
}

var countryFlags = map[string]string{
	"usa":            "🇺🇸",
	"us":             "🇺🇸",
	"united states":  "🇺🇸",
	"india":          "🇮🇳",
	"uk":             "🇬🇧",
	"united kingdom": "🇬🇧",
	"canada":         "🇨🇦",
	"mexico":         "🇲🇽",
	"brazil":         "🇧🇷",
	"argentina":      "🇦🇷",
	"chile":          "🇨🇱",
	"france":         "🇫🇷",
	"germany":        "🇩🇪",
	"italy":          "🇮🇹",
	"spain":          "🇪🇸",
	"portugal":       "🇵🇹",
	"netherlands":    "🇳🇱",
	"belgium":        "🇧🇪",
	"switzerland":    "🇨🇭",
	"austria":        "🇦🇹",
	"czechia":        "🇨🇿",
	"denmark":        "🇩🇰",
	"sweden":         "🇸🇪",
	"ireland":        "🇮🇪",
	"greece":         "🇬🇷",
	"japan":          "🇯🇵",
	"china":          "🇨🇳",
	"south korea":    "🇰🇷",
	"singapore":      "🇸🇬",
	"australia":      "🇦🇺",
	"south africa":   "🇿🇦",
}
