package meteo

// venue holds stadium coordinates for a home team. Dome venues have
// controlled conditions, so no reading is fetched for them.
type venue struct {
	Lat  float64
	Lon  float64
	Dome bool
}

// venues maps home team abbreviation to stadium location.
var venues = map[string]venue{
	"ARI": {33.5276, -112.2626, true},
	"ATL": {33.7554, -84.4010, true},
	"BAL": {39.2780, -76.6227, false},
	"BUF": {42.7738, -78.7870, false},
	"CAR": {35.2258, -80.8528, false},
	"CHI": {41.8623, -87.6167, false},
	"CIN": {39.0955, -84.5161, false},
	"CLE": {41.5061, -81.6995, false},
	"DAL": {32.7473, -97.0945, true},
	"DEN": {39.7439, -105.0201, false},
	"DET": {42.3400, -83.0456, true},
	"GB":  {44.5013, -88.0622, false},
	"HOU": {29.6847, -95.4107, true},
	"IND": {39.7601, -86.1639, true},
	"JAX": {30.3240, -81.6373, false},
	"KC":  {39.0489, -94.4839, false},
	"LAC": {33.9535, -118.3392, true},
	"LAR": {33.9535, -118.3392, true},
	"LV":  {36.0909, -115.1833, true},
	"MIA": {25.9580, -80.2389, false},
	"MIN": {44.9736, -93.2575, true},
	"NE":  {42.0909, -71.2643, false},
	"NO":  {29.9511, -90.0812, true},
	"NYG": {40.8128, -74.0742, false},
	"NYJ": {40.8128, -74.0742, false},
	"PHI": {39.9008, -75.1675, false},
	"PIT": {40.4468, -80.0158, false},
	"SEA": {47.5952, -122.3316, false},
	"SF":  {37.4030, -121.9700, false},
	"TB":  {27.9759, -82.5033, false},
	"TEN": {36.1665, -86.7713, false},
	"WAS": {38.9077, -76.8645, false},
}
