package species

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestClean(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{"empty", "", ""},
		{"whitespace only", "   ", ""},
		{"lowercases", "Coyote", "coyote"},
		{"underscores to spaces", "white_tailed_deer", "white tailed deer"},
		{"taxonomy path collapses to last segment", "mammalia;cervidae;odocoileus;white_tailed_deer", "white tailed deer"},
		{"punctuation stripped", "raccoon!!", "raccoon"},
		{"hyphen kept", "white-tailed deer", "white-tailed deer"},
		{"whitespace collapsed", "  feral   hog  ", "feral hog"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Clean(tt.in))
		})
	}
}

func TestLastSegment(t *testing.T) {
	assert.Equal(t, "White tailed deer", LastSegment("a;b;White_tailed_deer"))
	assert.Equal(t, "Coyote", LastSegment("  Coyote "))
	assert.Empty(t, LastSegment(""))
}

func TestIsUsableCandidate(t *testing.T) {
	usable := []string{"coyote", "white_tailed_deer", "a;b;sus_scrofa", "Bobcat"}
	for _, s := range usable {
		assert.True(t, IsUsableCandidate(s), s)
	}

	unusable := []string{"", "blank", "no cv result", "animal", "bird",
		"canis species", "corvus species", "unknown", "Motion Blur"}
	for _, s := range unusable {
		assert.False(t, IsUsableCandidate(s), s)
	}
}

func TestNormalize_Table(t *testing.T) {
	tests := []struct {
		in   string
		want Label
	}{
		{"white_tailed_deer", Label{"White-tailed Deer", "Deer"}},
		{"mammalia;cervidae;odocoileus;white_tailed_deer", Label{"White-tailed Deer", "Deer"}},
		{"Whitetail", Label{"White-tailed Deer", "Deer"}},
		{"odocoileus virginianus", Label{"White-tailed Deer", "Deer"}},
		{"axis", Label{"Axis Deer", "Deer"}},
		{"sus scrofa", Label{"Feral Hog", "Hogs"}},
		{"boar", Label{"Feral Hog", "Hogs"}},
		{"canis latrans", Label{"Coyote", "Predators"}},
		{"lynx rufus", Label{"Bobcat", "Predators"}},
		{"cougar", Label{"Mountain Lion", "Predators"}},
		{"possum", Label{"Opossum", "Small Mammals"}},
		{"eastern cottontail", Label{"Rabbit", "Small Mammals"}},
		{"cow", Label{"Cattle", "Livestock"}},
		{"turkey", Label{"Wild Turkey", "Birds"}},
		{"vulture", Label{"Vulture", "Birds"}},
		{"rattlesnake", Label{"Rattlesnake", "Reptiles"}},
		{"water moccasin", Label{"Cottonmouth", "Reptiles"}},
		{"person", Label{"Human", "Human"}},
		{"utv", Label{"Vehicle", "Vehicle"}},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			assert.Equal(t, tt.want, Normalize(tt.in, true))
		})
	}
}

func TestNormalize_Heuristics(t *testing.T) {
	tests := []struct {
		in   string
		want Label
	}{
		{"white tailed deer buck", Label{"White-tailed Deer", "Deer"}},
		{"young axis deer fawn", Label{"White-tailed Deer", "Deer"}}, // generic deer rule after whitetail miss
		{"feral hog sow", Label{"Feral Hog", "Hogs"}},
		{"coyote pair", Label{"Coyote", "Predators"}},
		{"fox squirrel", Label{"Squirrel", "Small Mammals"}},
		{"gray fox adult", Label{"Fox", "Predators"}},
		{"turkey vulture", Label{"Vulture", "Birds"}},
		{"red-tailed hawk", Label{"Hawk", "Birds"}},
		{"western diamondback rattlesnake", Label{"Rattlesnake", "Reptiles"}},
		{"rat snake", Label{"Snake", "Reptiles"}},
		{"mockingbird", Label{"Bird", "Birds"}},
		{"striped skunk", Label{"Skunk", "Small Mammals"}},
		{"nine-banded armadillo", Label{"Armadillo", "Small Mammals"}},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			assert.Equal(t, tt.want, Normalize(tt.in, true))
		})
	}
}

func TestNormalize_JunkAndBroad(t *testing.T) {
	for _, s := range []string{"", "blank", "no cv result", "animal", "bird", "canis species", "nan", "?"} {
		assert.Equal(t, OtherLabel, Normalize(s, true), s)
	}
}

func TestNormalize_DomesticSuppression(t *testing.T) {
	assert.Equal(t, OtherLabel, Normalize("domestic dog", true))
	assert.Equal(t, OtherLabel, Normalize("canis lupus familiaris", true))
	assert.Equal(t, OtherLabel, Normalize("felis catus", true))

	// with suppression off, pets fall through to the fallback pair
	assert.Equal(t, UnknownLabel, Normalize("domestic dog", false))
}

func TestNormalize_UnrecognizedFallsBack(t *testing.T) {
	got := Normalize("chupacabra", true)
	assert.Equal(t, UnknownLabel, got)
	assert.NotEmpty(t, got.CanonicalName)
	assert.Equal(t, "Other", got.Group)
}

// Normalization is total: no input may produce an empty canonical name.
func TestNormalize_NeverEmpty(t *testing.T) {
	inputs := []string{"", "   ", ";;;", "___", "!!!", "zzz unheard of zzz", "no cv result"}
	for _, s := range inputs {
		got := Normalize(s, true)
		assert.NotEmpty(t, got.CanonicalName, "input %q", s)
		assert.NotEmpty(t, got.Group, "input %q", s)
	}
}

func TestHeuristicRules_FirstMatchWins(t *testing.T) {
	// "deer crossing with hogs" hits the deer rule before the hog rule
	assert.Equal(t, Label{"White-tailed Deer", "Deer"}, Normalize("deer with hogs", true))
}
