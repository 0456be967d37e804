package species

import "strings"

// Rule is one substring heuristic: an unconditional predicate over the
// cleaned label and the pair it resolves to. Rules run in slice order, first
// match wins, so the priority is data rather than control flow and each rule
// is testable in isolation.
type Rule struct {
	Name   string
	Match  func(s string) bool
	Result Label
}

func containsAny(words ...string) func(string) bool {
	return func(s string) bool {
		for _, w := range words {
			if strings.Contains(s, w) {
				return true
			}
		}
		return false
	}
}

// heuristicRules is the fallback chain evaluated only after exact table
// lookup misses. It catches composites like "white tailed deer buck" or
// "feral hog sow" that no table entry covers.
var heuristicRules = []Rule{
	{
		Name:   "vehicle words",
		Match:  containsAny("vehicle", "truck", "pickup", "atv", "utv", "side by side", "tractor", "suv", "van"),
		Result: Label{"Vehicle", groupVehicle},
	},
	{
		Name:   "human words",
		Match:  containsAny("human", "person", "man", "woman"),
		Result: Label{"Human", groupHuman},
	},
	{
		Name: "whitetail variants",
		Match: func(s string) bool {
			if strings.Contains(s, "whitetail") {
				return true
			}
			return strings.Contains(s, "white") && strings.Contains(s, "tail") && strings.Contains(s, "deer")
		},
		Result: Label{"White-tailed Deer", groupDeer},
	},
	{
		Name:   "any deer",
		Match:  containsAny("deer"),
		Result: Label{"White-tailed Deer", groupDeer},
	},
	{
		Name:   "hogs",
		Match:  containsAny("hog", "boar", "pig"),
		Result: Label{"Feral Hog", groupHogs},
	},
	{
		Name:   "coyote",
		Match:  containsAny("coyote"),
		Result: Label{"Coyote", groupPredators},
	},
	{
		Name:   "bobcat",
		Match:  containsAny("bobcat"),
		Result: Label{"Bobcat", groupPredators},
	},
	{
		Name:   "mountain lion",
		Match:  containsAny("lion", "cougar", "puma"),
		Result: Label{"Mountain Lion", groupPredators},
	},
	// Squirrel before fox: "fox squirrel" is a squirrel.
	{
		Name:   "squirrel",
		Match:  containsAny("squirrel"),
		Result: Label{"Squirrel", groupSmallMamm},
	},
	{
		Name:   "fox",
		Match:  containsAny("fox"),
		Result: Label{"Fox", groupPredators},
	},
	{
		Name:   "raccoon",
		Match:  containsAny("raccoon"),
		Result: Label{"Raccoon", groupSmallMamm},
	},
	{
		Name:   "opossum",
		Match:  containsAny("opossum", "possum"),
		Result: Label{"Opossum", groupSmallMamm},
	},
	{
		Name:   "skunk",
		Match:  containsAny("skunk"),
		Result: Label{"Skunk", groupSmallMamm},
	},
	{
		Name:   "armadillo",
		Match:  containsAny("armadillo"),
		Result: Label{"Armadillo", groupSmallMamm},
	},
	{
		Name:   "rabbit",
		Match:  containsAny("rabbit", "cottontail", "jackrabbit"),
		Result: Label{"Rabbit", groupSmallMamm},
	},
	{
		Name:   "cattle",
		Match:  containsAny("cow", "cattle", "bull", "calf", "bovine", "livestock"),
		Result: Label{"Cattle", groupLivestock},
	},
	// Per-species bird checks run before the generic bird catch-all; the
	// composite "turkey vulture" resolves to Vulture.
	{
		Name:   "hawk",
		Match:  containsAny("hawk"),
		Result: Label{"Hawk", groupBirds},
	},
	{
		Name:   "owl",
		Match:  containsAny("owl"),
		Result: Label{"Owl", groupBirds},
	},
	{
		Name:   "vulture",
		Match:  containsAny("vulture"),
		Result: Label{"Vulture", groupBirds},
	},
	{
		Name:   "corvid",
		Match:  containsAny("raven", "crow"),
		Result: Label{"Crow", groupBirds},
	},
	{
		Name:   "turkey",
		Match:  containsAny("turkey"),
		Result: Label{"Wild Turkey", groupBirds},
	},
	{
		Name:   "dove",
		Match:  containsAny("dove"),
		Result: Label{"Dove", groupBirds},
	},
	{
		Name:   "other named birds",
		Match:  containsAny("quail", "roadrunner", "woodpecker", "heron", "egret", "crane"),
		Result: Label{"Bird", groupBirds},
	},
	{
		Name:   "generic bird",
		Match:  containsAny("bird"),
		Result: Label{"Bird", groupBirds},
	},
	{
		Name:   "rattlesnake",
		Match:  containsAny("rattle", "diamondback"),
		Result: Label{"Rattlesnake", groupReptiles},
	},
	{
		Name:   "cottonmouth",
		Match:  containsAny("cottonmouth", "moccasin"),
		Result: Label{"Cottonmouth", groupReptiles},
	},
	{
		Name:   "snake",
		Match:  containsAny("snake"),
		Result: Label{"Snake", groupReptiles},
	},
	{
		Name:   "turtle",
		Match:  containsAny("turtle"),
		Result: Label{"Turtle", groupReptiles},
	},
	{
		Name:   "lizard",
		Match:  containsAny("lizard", "gecko", "anole"),
		Result: Label{"Lizard", groupReptiles},
	},
	{
		Name:   "frog",
		Match:  containsAny("frog"),
		Result: Label{"Frog", groupAmphibians},
	},
	{
		Name:   "toad",
		Match:  containsAny("toad"),
		Result: Label{"Toad", groupAmphibians},
	},
}
