package nn

import "strings"

// Label groups used by the detection filter and the analyzers.
// Keyword matching against free-text labels is deliberately plain
// case-insensitive substring search; the severity thresholds downstream
// were tuned against exact substring behavior.

const PersonLabel = "person"

// Weapon-like labels, matched by substring so that "kitchen knife" or
// "baseball bat" hit too.
var WeaponLabels = []string{
	"knife", "gun", "pistol", "rifle", "weapon", "firearm",
	"baseball bat", "bat", "hammer", "axe", "crowbar", "stick",
	"scissors", "sword", "machete", "blade", "razor",
	"bottle", "chain", "pipe", "wrench", "club", "baton",
}

// The narrower weapon set used by the event evaluator. Matched exactly,
// not by substring.
var eventWeaponLabels = map[string]bool{
	"knife": true, "gun": true, "pistol": true, "rifle": true, "weapon": true,
	"baseball bat": true, "bat": true, "scissors": true, "hammer": true,
	"axe": true, "sword": true, "machete": true, "crowbar": true,
}

// High-value items often targeted in theft. Matched exactly.
var ValuableLabels = map[string]bool{
	"handbag": true, "backpack": true, "suitcase": true, "cell phone": true,
	"laptop": true, "wallet": true, "purse": true, "briefcase": true,
	"luggage": true, "bag": true, "watch": true, "jewelry": true,
	"tablet": true, "camera": true,
}

var VehicleLabels = map[string]bool{
	"car": true, "truck": true, "motorcycle": true, "bicycle": true,
	"bus": true, "van": true, "suv": true,
}

// Objects often seen in vandalism/damage scenarios.
var DamageRelatedLabels = map[string]bool{
	"bottle": true, "baseball bat": true, "sports ball": true, "frisbee": true,
	"skateboard": true, "scissors": true, "fork": true, "spoon": true, "bowl": true,
}

// The expanded critical set used by the confidence filter. These get the
// lowest confidence threshold, because missing one is worse than a false hit.
var CriticalLabels = map[string]bool{
	"person": true, "knife": true, "gun": true, "pistol": true, "rifle": true,
	"weapon": true, "baseball bat": true, "scissors": true, "hammer": true,
	"axe": true, "sword": true, "machete": true, "crowbar": true, "bat": true,
	"stick": true, "club": true, "bottle": true, "glass bottle": true,
	"beer bottle": true,
}

func IsPersonLabel(label string) bool {
	return strings.EqualFold(label, PersonLabel)
}

// IsWeaponLabel reports whether the label looks like a weapon or a
// potential weapon (substring match against WeaponLabels).
func IsWeaponLabel(label string) bool {
	lower := strings.ToLower(label)
	for _, w := range WeaponLabels {
		if strings.Contains(lower, w) {
			return true
		}
	}
	return false
}

// IsEventWeaponLabel is the exact-match weapon test used by the event
// evaluator. Deliberately narrower than IsWeaponLabel.
func IsEventWeaponLabel(label string) bool {
	return eventWeaponLabels[strings.ToLower(label)]
}

func IsValuableLabel(label string) bool {
	return ValuableLabels[strings.ToLower(label)]
}

func IsVehicleLabel(label string) bool {
	return VehicleLabels[strings.ToLower(label)]
}

// MatchKeyword reports whether any keyword occurs in label
// (case-insensitive substring).
func MatchKeyword(label string, keywords []string) bool {
	lower := strings.ToLower(label)
	for _, kw := range keywords {
		if strings.Contains(lower, kw) {
			return true
		}
	}
	return false
}
