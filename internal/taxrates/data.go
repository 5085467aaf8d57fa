package taxrates

// zipTable lists Arkansas ZIP codes served by the brokerage. Table order is
// significant: Search returns prefix matches in this order.
var zipTable = []ZipCountyRecord{
	{"71601", "Pine Bluff", "Jefferson"},
	{"71602", "White Hall", "Jefferson"},
	{"71603", "Pine Bluff", "Jefferson"},
	{"71635", "Crossett", "Ashley"},
	{"71639", "Dumas", "Desha"},
	{"71646", "Hamburg", "Ashley"},
	{"71655", "Monticello", "Drew"},
	{"71701", "Camden", "Ouachita"},
	{"71730", "El Dorado", "Union"},
	{"71753", "Magnolia", "Columbia"},
	{"71801", "Hope", "Hempstead"},
	{"71854", "Texarkana", "Miller"},
	{"71901", "Hot Springs", "Garland"},
	{"71913", "Hot Springs", "Garland"},
	{"71923", "Arkadelphia", "Clark"},
	{"71953", "Mena", "Polk"},
	{"72001", "Adona", "Perry"},
	{"72002", "Alexander", "Saline"},
	{"72007", "Austin", "Lonoke"},
	{"72012", "Beebe", "White"},
	{"72015", "Benton", "Saline"},
	{"72019", "Benton", "Saline"},
	{"72022", "Bryant", "Saline"},
	{"72023", "Cabot", "Lonoke"},
	{"72032", "Conway", "Faulkner"},
	{"72034", "Conway", "Faulkner"},
	{"72076", "Jacksonville", "Pulaski"},
	{"72086", "Lonoke", "Lonoke"},
	{"72104", "Malvern", "Hot Spring"},
	{"72110", "Morrilton", "Conway"},
	{"72113", "Maumelle", "Pulaski"},
	{"72114", "North Little Rock", "Pulaski"},
	{"72116", "North Little Rock", "Pulaski"},
	{"72118", "North Little Rock", "Pulaski"},
	{"72120", "Sherwood", "Pulaski"},
	{"72143", "Searcy", "White"},
	{"72150", "Sheridan", "Grant"},
	{"72173", "Vilonia", "Faulkner"},
	{"72201", "Little Rock", "Pulaski"},
	{"72202", "Little Rock", "Pulaski"},
	{"72204", "Little Rock", "Pulaski"},
	{"72205", "Little Rock", "Pulaski"},
	{"72207", "Little Rock", "Pulaski"},
	{"72209", "Little Rock", "Pulaski"},
	{"72210", "Little Rock", "Pulaski"},
	{"72211", "Little Rock", "Pulaski"},
	{"72212", "Little Rock", "Pulaski"},
	{"72223", "Little Rock", "Pulaski"},
	{"72227", "Little Rock", "Pulaski"},
	{"72301", "West Memphis", "Crittenden"},
	{"72315", "Blytheville", "Mississippi"},
	{"72335", "Forrest City", "St. Francis"},
	{"72342", "Helena", "Phillips"},
	{"72364", "Marion", "Crittenden"},
	{"72396", "Wynne", "Cross"},
	{"72401", "Jonesboro", "Craighead"},
	{"72404", "Jonesboro", "Craighead"},
	{"72450", "Paragould", "Greene"},
	{"72501", "Batesville", "Independence"},
	{"72543", "Heber Springs", "Cleburne"},
	{"72560", "Mountain View", "Stone"},
	{"72601", "Harrison", "Boone"},
	{"72653", "Mountain Home", "Baxter"},
	{"72701", "Fayetteville", "Washington"},
	{"72703", "Fayetteville", "Washington"},
	{"72704", "Fayetteville", "Washington"},
	{"72712", "Bentonville", "Benton"},
	{"72714", "Bella Vista", "Benton"},
	{"72734", "Gentry", "Benton"},
	{"72745", "Lowell", "Benton"},
	{"72756", "Rogers", "Benton"},
	{"72758", "Rogers", "Benton"},
	{"72762", "Springdale", "Washington"},
	{"72764", "Springdale", "Washington"},
	{"72801", "Russellville", "Pope"},
	{"72830", "Clarksville", "Johnson"},
	{"72901", "Fort Smith", "Sebastian"},
	{"72903", "Fort Smith", "Sebastian"},
	{"72904", "Fort Smith", "Sebastian"},
	{"72908", "Fort Smith", "Sebastian"},
	{"72916", "Fort Smith", "Sebastian"},
	{"72921", "Alma", "Crawford"},
	{"72956", "Van Buren", "Crawford"},
}

// countyRates maps county name to effective property-tax rate (percent).
// Every county appearing in zipTable must have an entry here, or Lookup
// returns no rate for its ZIPs.
var countyRates = map[string]float64{
	"Ashley":       0.50,
	"Baxter":       0.45,
	"Benton":       0.60,
	"Boone":        0.46,
	"Clark":        0.53,
	"Cleburne":     0.40,
	"Columbia":     0.52,
	"Conway":       0.54,
	"Craighead":    0.58,
	"Crawford":     0.56,
	"Crittenden":   0.61,
	"Cross":        0.51,
	"Desha":        0.55,
	"Drew":         0.50,
	"Faulkner":     0.57,
	"Garland":      0.54,
	"Grant":        0.49,
	"Greene":       0.53,
	"Hempstead":    0.50,
	"Hot Spring":   0.51,
	"Independence": 0.49,
	"Jefferson":    0.64,
	"Johnson":      0.48,
	"Lonoke":       0.56,
	"Miller":       0.55,
	"Mississippi":  0.59,
	"Ouachita":     0.53,
	"Perry":        0.47,
	"Phillips":     0.60,
	"Polk":         0.44,
	"Pope":         0.50,
	"Pulaski":      0.69,
	"Saline":       0.61,
	"Sebastian":    0.62,
	"St. Francis":  0.58,
	"Stone":        0.42,
	"Union":        0.54,
	"Washington":   0.63,
	"White":        0.52,
}
