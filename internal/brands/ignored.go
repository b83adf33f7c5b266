package brands

// IgnoredSet holds manufacturers whose own part number already is the OEM
// reference. OEM resolution and cross-referencing are meaningless for
// them: their feed rows always carry blank OEM and cross-code fields and
// they are excluded from the cross-reference population.
type IgnoredSet map[string]struct{}

// NewIgnoredSet builds a set from a list of canonical brand names.
func NewIgnoredSet(names []string) IgnoredSet {
	s := make(IgnoredSet, len(names))
	for _, n := range names {
		s[n] = struct{}{}
	}
	return s
}

// Contains reports whether brand is in the set. Matching is exact: the
// set is defined in terms of canonical brand names.
func (s IgnoredSet) Contains(brand string) bool {
	_, ok := s[brand]
	return ok
}

// ignoredBrandNames is the maintained enumeration of OEM makers. The list
// is defined on canonical names, which is why rows are re-checked against
// it after the synonym rewrite.
var ignoredBrandNames = []string{
	"ABARTH",
	"ALFA ROMEO",
	"ASTRA",
	"AUDI",
	"BMW",
	"BPW",
	"CASE IH",
	"CHEVROLET",
	"CHRYSLER",
	"CITROEN",
	"CLAAS",
	"DACIA",
	"DAF",
	"DAILY",
	"DEUTZ",
	"DODGE",
	"DUCATI",
	"FENDT",
	"FIAT",
	"FORD",
	"FUSO",
	"GIGANT",
	"HINO",
	"HONDA",
	"HYUNDAI",
	"ISUZU",
	"IVECO",
	"JAGUAR",
	"JEEP",
	"JOHN DEERE",
	"KAMAZ",
	"KASSBOHRER",
	"KIA",
	"KOGEL",
	"KRONE",
	"LANCIA",
	"LAND ROVER",
	"LANDINI",
	"LEXUS",
	"LIEBHERR",
	"MAN",
	"MASERATI",
	"MASSEY FERGUSON",
	"MAZDA",
	"MERCEDES",
	"MERITOR",
	"MINI",
	"MITSUBISHI",
	"NEW HOLLAND",
	"NISSAN",
	"OPEL",
	"PEUGEOUT",
	"PIAGGIO",
	"PORSCHE",
	"PSA",
	"RENAULT",
	"RENAULT TRUCKS",
	"ROR",
	"SAAB",
	"SAF",
	"SAME",
	"SCANIA",
	"SCHMITZ",
	"SEAT",
	"SETRA",
	"SISU",
	"SKODA",
	"SMART",
	"SSANGYONG",
	"SUBARU",
	"SUZUKI",
	"TATA",
	"TOYOTA",
	"UNIMOG",
	"VAUXHALL",
	"VOLKSWAGEN",
	"VOLVO",
	"YAMAHA",
}

// Ignored is the set used by both marketplace pipelines. Treated as
// immutable after init.
var Ignored = NewIgnoredSet(ignoredBrandNames)
