package entity

// TournamentRules are shown to every player before joining
var TournamentRules = []string{
	"No Hack / No Mod: ধরা পড়লে ব্যান এবং রিফান্ড নেই।",
	"Custom Room Only: গেমের ভেতর রুম কার্ড দেওয়া হবে।",
	"Late Entry Not Allowed: সময়মতো না এলে এন্ট্রি মিস করবেন।",
	"Decision by Admin is Final: কোনো তর্কের সুযোগ নেই।",
}

// Rules returns a copy of the tournament rules
func Rules() []string {
	return append([]string(nil), TournamentRules...)
}
