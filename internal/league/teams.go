package league

// Lower-case team-name fragments per league. A fragment anywhere in the search
// term votes for the league, so overlaps (kings, jets, rangers, giants,
// cardinals, panthers) put the term in several leagues.

var nbaTeams = []string{
	"hawks", "celtics", "nets", "hornets", "bulls", "cavaliers", "cavs",
	"mavericks", "mavs", "nuggets", "pistons", "warriors", "rockets", "pacers",
	"clippers", "lakers", "grizzlies", "heat", "bucks", "timberwolves", "wolves",
	"pelicans", "knicks", "thunder", "magic", "76ers", "sixers", "suns",
	"trail blazers", "blazers", "kings", "spurs", "raptors", "jazz", "wizards",
}

var mlbTeams = []string{
	"diamondbacks", "d-backs", "braves", "orioles", "red sox", "cubs",
	"white sox", "reds", "guardians", "rockies", "tigers", "astros", "royals",
	"angels", "dodgers", "marlins", "brewers", "twins", "mets", "yankees",
	"athletics", "phillies", "pirates", "padres", "giants", "mariners",
	"cardinals", "rays", "rangers", "blue jays", "nationals",
}

var nflTeams = []string{
	"cardinals", "falcons", "ravens", "bills", "panthers", "bears", "bengals",
	"browns", "cowboys", "broncos", "lions", "packers", "texans", "colts",
	"jaguars", "chiefs", "raiders", "chargers", "rams", "dolphins", "vikings",
	"patriots", "saints", "giants", "jets", "eagles", "steelers", "49ers",
	"niners", "seahawks", "buccaneers", "titans", "commanders",
}

var nhlTeams = []string{
	"ducks", "coyotes", "bruins", "sabres", "flames", "hurricanes",
	"blackhawks", "avalanche", "blue jackets", "stars", "red wings", "oilers",
	"panthers", "wild", "kings", "canadiens", "predators", "devils",
	"islanders", "rangers", "senators", "flyers", "penguins", "sharks",
	"kraken", "blues", "lightning", "maple leafs", "utah hockey club",
	"mammoth", "canucks", "golden knights", "capitals", "jets",
}

var mlsTeams = []string{
	"inter miami", "galaxy", "lafc", "sounders", "timbers", "whitecaps",
	"earthquakes", "chicago fire", "revolution", "red bulls", "nycfc",
	"new york city fc", "orlando city", "atlanta united", "minnesota united",
	"columbus crew", "d.c. united", "dc united", "philadelphia union",
	"toronto fc", "cf montreal", "cf montréal", "sporting kansas city",
	"real salt lake", "rapids", "dynamo", "fc dallas", "austin fc",
	"nashville sc", "charlotte fc", "st. louis city", "fc cincinnati",
	"san diego fc",
}
