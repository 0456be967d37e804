package species

// Static lookup tables for Central Texas ranch country (La Grange / Fayette
// County). All keys are cleaned strings. The tables are built once at process
// start and never mutated; readers share them without locking.

// junkValues are classifier artifacts that carry no species information.
var junkValues = map[string]struct{}{
	"nan": {}, "none": {}, "null": {}, "nil": {}, "n/a": {}, "na": {},
	"-": {}, "--": {}, "unknown": {}, "unidentified": {},
	"blank": {}, "no cv result": {}, "nocvresult": {}, "no result": {},
	"no detection": {}, "empty": {}, "none detected": {}, "nothing": {},
	"nothing detected": {}, "not sure": {}, "unsure": {},
	"background": {}, "motion blur": {}, "false positive": {},
	"false alarm": {}, "trigger": {}, "wind": {}, "grass": {},
}

// broadCategories are bare category tags too vague to be a species identity.
var broadCategories = map[string]struct{}{
	"animal": {}, "other animal": {}, "mammal": {}, "bird": {},
	"reptile": {}, "amphibian": {}, "fish": {}, "rodent": {},
	"canid": {}, "felid": {}, "insect": {}, "arthropod": {},
	"wildlife": {}, "vertebrate": {},
}

// bannedLabels are vague "<genus> species" placeholders the classifier emits
// when it cannot commit to an identification.
var bannedLabels = map[string]struct{}{
	"corvus species": {}, "canis species": {}, "vulpes species": {},
	"buteo species": {}, "hawk species": {}, "owl species": {},
	"snake species": {}, "lizard species": {}, "frog species": {},
	"duck species": {}, "goose species": {}, "sparrow species": {},
	"blackbird species": {}, "gull species": {}, "dove species": {},
	"pigeon species": {},
}

// Domestic pets, mapped to Other when suppression is enabled.
var dogAliases = map[string]struct{}{
	"dog": {}, "domestic dog": {}, "house dog": {}, "pet dog": {},
	"stray dog": {}, "canis lupus familiaris": {},
}

var catAliases = map[string]struct{}{
	"cat": {}, "domestic cat": {}, "house cat": {}, "pet cat": {},
	"felis catus": {},
}

// Group names used across the canonical table and heuristic rules.
const (
	groupHuman      = "Human"
	groupVehicle    = "Vehicle"
	groupDeer       = "Deer"
	groupHogs       = "Hogs"
	groupPredators  = "Predators"
	groupSmallMamm  = "Small Mammals"
	groupLivestock  = "Livestock"
	groupBirds      = "Birds"
	groupReptiles   = "Reptiles"
	groupAmphibians = "Amphibians"
)

// canonicalTable maps cleaned labels to their canonical pair. Exact match
// lookup happens before the heuristic rules.
var canonicalTable = map[string]Label{
	// Humans / vehicles (defensive, these normally arrive as event types)
	"human":  {"Human", groupHuman},
	"person": {"Human", groupHuman},
	"people": {"Human", groupHuman},
	"man":    {"Human", groupHuman},
	"woman":  {"Human", groupHuman},
	"child":  {"Human", groupHuman},

	"vehicle":      {"Vehicle", groupVehicle},
	"car":          {"Vehicle", groupVehicle},
	"truck":        {"Vehicle", groupVehicle},
	"pickup":       {"Vehicle", groupVehicle},
	"pickup truck": {"Vehicle", groupVehicle},
	"suv":          {"Vehicle", groupVehicle},
	"van":          {"Vehicle", groupVehicle},
	"atv":          {"Vehicle", groupVehicle},
	"utv":          {"Vehicle", groupVehicle},
	"side by side": {"Vehicle", groupVehicle},
	"side-by-side": {"Vehicle", groupVehicle},
	"tractor":      {"Vehicle", groupVehicle},
	"ranger":       {"Vehicle", groupVehicle},

	// Deer, collapse the whitetail variants
	"white tailed deer":     {"White-tailed Deer", groupDeer},
	"white-tailed deer":     {"White-tailed Deer", groupDeer},
	"white tail deer":       {"White-tailed Deer", groupDeer},
	"whitetail deer":        {"White-tailed Deer", groupDeer},
	"whitetailed deer":      {"White-tailed Deer", groupDeer},
	"whitetail":             {"White-tailed Deer", groupDeer},
	"deer":                  {"White-tailed Deer", groupDeer},
	"doe":                   {"White-tailed Deer", groupDeer},
	"buck":                  {"White-tailed Deer", groupDeer},
	"fawn":                  {"White-tailed Deer", groupDeer},
	"odocoileus virginianus": {"White-tailed Deer", groupDeer},
	"mule deer":             {"Mule Deer", groupDeer},
	"odocoileus hemionus":   {"Mule Deer", groupDeer},
	"axis deer":             {"Axis Deer", groupDeer},
	"axis":                  {"Axis Deer", groupDeer},
	"chital":                {"Axis Deer", groupDeer},
	"fallow deer":           {"Fallow Deer", groupDeer},
	"sika deer":             {"Sika Deer", groupDeer},

	// Hogs
	"feral hog":  {"Feral Hog", groupHogs},
	"wild hog":   {"Feral Hog", groupHogs},
	"wild pig":   {"Feral Hog", groupHogs},
	"feral pig":  {"Feral Hog", groupHogs},
	"hog":        {"Feral Hog", groupHogs},
	"boar":       {"Feral Hog", groupHogs},
	"sow":        {"Feral Hog", groupHogs},
	"pig":        {"Feral Hog", groupHogs},
	"sus scrofa": {"Feral Hog", groupHogs},

	// Predators
	"coyote":        {"Coyote", groupPredators},
	"canis latrans": {"Coyote", groupPredators},
	"bobcat":        {"Bobcat", groupPredators},
	"lynx rufus":    {"Bobcat", groupPredators},
	"mountain lion": {"Mountain Lion", groupPredators},
	"cougar":        {"Mountain Lion", groupPredators},
	"puma":          {"Mountain Lion", groupPredators},
	"fox":           {"Fox", groupPredators},
	"gray fox":      {"Fox", groupPredators},
	"grey fox":      {"Fox", groupPredators},
	"red fox":       {"Fox", groupPredators},

	// Small mammals
	"raccoon":            {"Raccoon", groupSmallMamm},
	"opossum":            {"Opossum", groupSmallMamm},
	"possum":             {"Opossum", groupSmallMamm},
	"skunk":              {"Skunk", groupSmallMamm},
	"armadillo":          {"Armadillo", groupSmallMamm},
	"rabbit":             {"Rabbit", groupSmallMamm},
	"cottontail":         {"Rabbit", groupSmallMamm},
	"eastern cottontail": {"Rabbit", groupSmallMamm},
	"jackrabbit":         {"Rabbit", groupSmallMamm},
	"squirrel":           {"Squirrel", groupSmallMamm},
	"ringtail":           {"Ringtail", groupSmallMamm},

	// Livestock
	"cow":     {"Cattle", groupLivestock},
	"cattle":  {"Cattle", groupLivestock},
	"bull":    {"Cattle", groupLivestock},
	"calf":    {"Cattle", groupLivestock},
	"bovine":  {"Cattle", groupLivestock},
	"goat":    {"Goat", groupLivestock},
	"sheep":   {"Sheep", groupLivestock},
	"horse":   {"Horse", groupLivestock},
	"donkey":  {"Donkey", groupLivestock},
	"mule":    {"Mule", groupLivestock},
	"chicken": {"Chicken", groupLivestock},

	// Birds (bare "bird" stays in broadCategories)
	"turkey":      {"Wild Turkey", groupBirds},
	"wild turkey": {"Wild Turkey", groupBirds},
	"hawk":        {"Hawk", groupBirds},
	"owl":         {"Owl", groupBirds},
	"vulture":     {"Vulture", groupBirds},
	"crow":        {"Crow", groupBirds},
	"raven":       {"Raven", groupBirds},
	"dove":        {"Dove", groupBirds},
	"quail":       {"Quail", groupBirds},
	"roadrunner":  {"Roadrunner", groupBirds},
	"woodpecker":  {"Woodpecker", groupBirds},
	"heron":       {"Heron", groupBirds},
	"egret":       {"Egret", groupBirds},
	"crane":       {"Crane", groupBirds},

	// Reptiles
	"snake":                {"Snake", groupReptiles},
	"rattlesnake":          {"Rattlesnake", groupReptiles},
	"western diamondback":  {"Rattlesnake", groupReptiles},
	"cottonmouth":          {"Cottonmouth", groupReptiles},
	"water moccasin":       {"Cottonmouth", groupReptiles},
	"turtle":               {"Turtle", groupReptiles},
	"lizard":               {"Lizard", groupReptiles},

	// Amphibians (rare on camera)
	"frog": {"Frog", groupAmphibians},
	"toad": {"Toad", groupAmphibians},
}
