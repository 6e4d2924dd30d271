package archive

import (
	"regexp"
	"strconv"
	"strings"
)

var seriesReplacer = strings.NewReplacer(" ", "_", "&", "_", "/", "_")

// SafeSeries returns the directory name used for a series on disk.
func SafeSeries(series string) string {
	return seriesReplacer.Replace(series)
}

// SafeEpisode returns the file stem used for an episode on disk.
func SafeEpisode(episode string) string {
	return strings.ReplaceAll(episode, " ", "_")
}

// EpisodePath derives the transcript path for a series/episode pair relative
// to the site root. A literal '?' is percent-encoded so the path survives
// being used as a URL.
func EpisodePath(root, series, episode string) string {
	if root == "" {
		root = DefaultTemplateRoot
	}
	p := root + "/" + SafeSeries(series) + "/" + SafeEpisode(episode) + ".json"
	return strings.ReplaceAll(p, "?", "%3F")
}

// FilePath is EpisodePath without the URL encoding, for reading from disk.
func FilePath(root, series, episode string) string {
	if root == "" {
		root = DefaultTemplateRoot
	}
	return root + "/" + SafeSeries(series) + "/" + SafeEpisode(episode) + ".json"
}

// TimeID converts a display time like "01:02:03" into its id form "01-02-03".
func TimeID(t string) string {
	return strings.ReplaceAll(t, ":", "-")
}

// RowID returns the element id of a transcript row.
func RowID(row TranscriptRow, index int) string {
	if row.HasStart() {
		return "time-" + TimeID(*row.Start)
	}
	return "time-para-" + strconv.Itoa(index)
}

// TargetID returns the element id a jump to the given time looks for.
func TargetID(t string) string {
	return "time-" + TimeID(t)
}

// EpisodeTitle is an episode name split into its number and clean title.
type EpisodeTitle struct {
	Title  string
	Number string
}

var (
	episodeTitleRe  = regexp.MustCompile(`^Episode \d+:\s*(.+)$`)
	episodeNumberRe = regexp.MustCompile(`^Episode (\d+):`)
)

// ParseEpisodeTitle strips a leading "Episode <N>: " prefix.
func ParseEpisodeTitle(episode string) EpisodeTitle {
	t := EpisodeTitle{Title: episode}
	if m := episodeTitleRe.FindStringSubmatch(episode); m != nil {
		t.Title = m[1]
	}
	if m := episodeNumberRe.FindStringSubmatch(episode); m != nil {
		t.Number = m[1]
	}
	return t
}

// DisplayName restores spaces in a navigation key.
func DisplayName(key string) string {
	return strings.ReplaceAll(key, "_", " ")
}

// SeriesLine is the header subtitle shown under an episode title.
func SeriesLine(series string, t EpisodeTitle) string {
	return DisplayName(series) + ", Episode " + t.Number
}
