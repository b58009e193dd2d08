package crime

// Action label keyword tables. Matching is case-insensitive substring,
// so "punching person" matches "punch".

// violenceKeywords decides whether an action counts as violent at all.
var violenceKeywords = []string{
	"punch", "hit", "kick", "beat", "attack", "assault", "fight",
	"slap", "strangle", "choke", "tackle", "headbutt", "combat",
}

// Intensity tiers for violent actions. An action's tier is the first
// one whose keywords match; anything else gets the base multiplier.
var (
	extremeViolenceKeywords = []string{"shoot", "stab", "strangle", "choke", "murder", "kill"}
	highViolenceKeywords    = []string{"punch", "kick", "beat", "hit", "slap", "headbutt", "attack", "assault"}
	mediumViolenceKeywords  = []string{"fight", "wrestle", "tackle", "shove", "push", "grab"}
)

const (
	extremeIntensityMultiplier = 2.0
	highIntensityMultiplier    = 1.5
	mediumIntensityMultiplier  = 1.2
	baseIntensityMultiplier    = 0.8
)

// weaponActionKeywords mark actions that involve using or brandishing
// a weapon.
var weaponActionKeywords = []string{
	"shoot", "stab", "aim", "point", "wield", "brandish", "threaten",
	"fire", "swing", "strike with",
}

var theftKeywords = []string{
	"steal", "snatch", "grab", "rob", "shoplift", "pickpocket",
	"burglar", "loot", "pilfer", "take", "swipe",
}

var suspiciousKeywords = []string{
	"lurk", "sneak", "hide", "creep", "stalk", "prowl", "loiter",
}
