package metar

import "regexp"

// Group regexes. Every pattern is anchored because each one is matched
// against a single whitespace-delimited token.
var (
	stationRegex    = regexp.MustCompile(`^[A-Z][A-Z0-9]{3}$`)
	dayTimeRegex    = regexp.MustCompile(`^(\d{2})(\d{2})(\d{2})Z?$`)
	correctionRegex = regexp.MustCompile(`^(?:COR|CC[A-Z])$`)
	corPrefixRegex  = regexp.MustCompile(`^CC[A-Z]$`)

	windRegex    = regexp.MustCompile(`^E?(\d{3}|VRB|///)(P?\d{2,3}|//)(?:G(P?\d{2,3}|//))?(KT|MPS)$`)
	windVarRegex = regexp.MustCompile(`^(\d{3})V(\d{3})$`)

	visRegex     = regexp.MustCompile(`^([MP]?)(\d{1,4})(NDV)?(SM)?$`)
	visFracRegex = regexp.MustCompile(`^([MP]?)(\d)/(\d{1,2})(SM)?$`)
	visMinRegex  = regexp.MustCompile(`^[MP]?\d{4}$`)
	visDirRegex  = regexp.MustCompile(`^([MP]?\d{1,4})([NESW][EW]?)$`)

	rvrRegex = regexp.MustCompile(`^R(\d{2}[LCR]?)/([MP]?\d{4}(?:V[MP]?\d{4})?)(FT)?/?([UDN])?$`)

	weatherRegex       = regexp.MustCompile(`^([-+])?(VC)?((?:MI|BC|PR|DR|BL|SH|TS|FZ)*)((?:DZ|RA|SN|SG|PL|GR|GS|UP|BR|FG|FU|VA|DU|SA|HZ|PO|SQ|FC|SS|DS|IC|PY)*)$`)
	recentWeatherRegex = regexp.MustCompile(`^RE([-+])?(VC)?((?:MI|BC|PR|DR|BL|SH|TS|FZ)*)((?:DZ|RA|SN|SG|PL|GR|GS|UP|BR|FG|FU|VA|DU|SA|HZ|PO|SQ|FC|SS|DS|IC|PY)*)$`)

	cloudRegex = regexp.MustCompile(`^(CLR|SKC|NSC|NCD|FEW|SCT|BKN|OVC|VV|///)(\d{3}|///)?(AC|ACC|ACSL|AS|CB|CBMAM|CC|CCSL|CI|CS|CU|NS|SC|SCSL|ST|TCU|///)?$`)

	temperatureRegex = regexp.MustCompile(`^(M?\d{2}|//)/(M?\d{2}|//)?$`)
	pressureRegex    = regexp.MustCompile(`^(Q|A)(\d{4}|////)$`)

	windShearRunwayRegex = regexp.MustCompile(`^R(?:WY)?(\d{2}[LCR]?)$`)

	seaStateRegex = regexp.MustCompile(`^W(M?\d{2}|//)/(?:S(\d|/)|H(\d{1,3}|///))$`)

	colorRegex = regexp.MustCompile(`^(?:BLACK|BLU\+?|GRN|WHT|RED|AMB|YLO)+$`)

	trendTimeRegex = regexp.MustCompile(`^(FM|TL|AT)(\d{2})(\d{2})$`)
)

// WeatherIntensity qualifies a weather condition.
type WeatherIntensity string

const (
	IntensityLight    WeatherIntensity = "light"
	IntensityModerate WeatherIntensity = "moderate"
	IntensityHeavy    WeatherIntensity = "heavy"
)

// WeatherDescriptor is a two-letter weather descriptor code, decoded.
type WeatherDescriptor string

var weatherDescriptors = map[string]WeatherDescriptor{
	"MI": "shallow",
	"BC": "patches",
	"PR": "partial",
	"DR": "low_drifting",
	"BL": "blowing",
	"SH": "shower",
	"TS": "thunderstorm",
	"FZ": "freezing",
}

// WeatherPhenomenon is a two-letter weather phenomenon code, decoded.
type WeatherPhenomenon string

var weatherPhenomena = map[string]WeatherPhenomenon{
	"DZ": "drizzle",
	"RA": "rain",
	"SN": "snow",
	"SG": "snow_grains",
	"PL": "ice_pellets",
	"GR": "hail",
	"GS": "snow_pellets",
	"UP": "unknown_precipitation",
	"BR": "mist",
	"FG": "fog",
	"FU": "smoke",
	"VA": "volcanic_ash",
	"DU": "widespread_dust",
	"SA": "sand",
	"HZ": "haze",
	"PO": "dust_whirls",
	"SQ": "squalls",
	"FC": "funnel_cloud",
	"SS": "sandstorm",
	"DS": "duststorm",
	"IC": "ice_crystals",
	"PY": "spray",
}

// CloudCover is a cloud amount code, decoded. CoverCeilingOK is synthetic:
// it stands in for the cloud part of a CAVOK group.
type CloudCover string

const CoverCeilingOK CloudCover = "ceiling_ok"

var cloudCovers = map[string]CloudCover{
	"CLR": "clear",
	"SKC": "sky_clear",
	"NSC": "nil_significant_cloud",
	"NCD": "nil_cloud_detected",
	"FEW": "few",
	"SCT": "scattered",
	"BKN": "broken",
	"OVC": "overcast",
	"VV":  "vertical_visibility",
}

// CloudType is a convective or layer cloud type code, decoded.
type CloudType string

var cloudTypes = map[string]CloudType{
	"AC":    "altocumulus",
	"ACC":   "altocumulus_castellanus",
	"ACSL":  "standing_lenticular_altocumulus",
	"AS":    "altostratus",
	"CB":    "cumulonimbus",
	"CBMAM": "cumulonimbus_mammatus",
	"CC":    "cirrocumulus",
	"CCSL":  "standing_lenticular_cirrocumulus",
	"CI":    "cirrus",
	"CS":    "cirrostratus",
	"CU":    "cumulus",
	"NS":    "nimbostratus",
	"SC":    "stratocumulus",
	"SCSL":  "standing_lenticular_stratocumulus",
	"ST":    "stratus",
	"TCU":   "towering_cumulus",
}

// RVRTrend is a runway visual range tendency code, decoded.
type RVRTrend string

var rvrTrends = map[string]RVRTrend{
	"U": "increasing",
	"D": "decreasing",
	"N": "no_change",
}

// DirectionOctant is a compass octant from a directional visibility group.
type DirectionOctant string

var directionOctants = map[string]DirectionOctant{
	"N":  "north",
	"NE": "north_east",
	"E":  "east",
	"SE": "south_east",
	"S":  "south",
	"SW": "south_west",
	"W":  "west",
	"NW": "north_west",
}

// TrendIndicator is a trend change group indicator, decoded.
type TrendIndicator string

const (
	TrendNoSignificantChange TrendIndicator = "no_significant_change"
	TrendTemporary           TrendIndicator = "temporary"
	TrendBecoming            TrendIndicator = "becoming"
)
