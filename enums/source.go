package enums

type Source string

const (
	// SourceZepp is the Zepp Life (Mi Fit) fitness account: steps, running
	// distance and sleep for the previous day.
	SourceZepp Source = "zepp"

	// SourceHealth is the locally supplied health pair (steps and sleep hours)
	// passed in through the environment, typically exported by a phone shortcut.
	SourceHealth Source = "health"

	// SourceGitHub is the previous day's coding activity: commits, pull
	// requests, closed issues, starred repos and the contribution streak.
	SourceGitHub Source = "github"

	// SourceWeRead is the WeRead e-reading account: reading time and the
	// books currently in progress.
	SourceWeRead Source = "weread"

	// SourceDuolingo is the Duolingo language-learning account: daily goal
	// completion, streak and XP totals.
	SourceDuolingo Source = "duolingo"

	// SourceSteam is the Steam gaming account: recent playtime and the
	// most-played titles.
	SourceSteam Source = "steam"

	// SourcePoem is the poem-of-the-day feed.
	SourcePoem Source = "poem"
)

// SourceOrder is the fixed order in which source blocks appear in the
// rendered digest, independent of collection completion order.
var SourceOrder = []Source{
	SourceZepp,
	SourceHealth,
	SourceGitHub,
	SourceWeRead,
	SourceDuolingo,
	SourceSteam,
	SourcePoem,
}
