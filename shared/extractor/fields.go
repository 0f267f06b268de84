// Package extractor turns the ytInitialData payload of a watch-history page
// into normalized video records.
//
// Every lookup goes through gjson, so a missing or reshaped sub-path shows up
// as a non-existent Result instead of a failure. Fields are derived one at a
// time and each falls back to its own default.
package extractor

import (
	"github.com/tidwall/gjson"

	"history-analyzer/internal/models"
	"history-analyzer/shared/logger"
)

const watchedBadgeStyle = "BADGE_STYLE_TYPE_WATCHED"

// channelURLPaths are tried in order; the first non-empty string wins.
var channelURLPaths = []string{
	"channelThumbnailSupportedRenderers.channelThumbnailWithLinkRenderer.navigationEndpoint.browseEndpoint.canonicalBaseUrl",
	"ownerText.runs.0.navigationEndpoint.browseEndpoint.canonicalBaseUrl",
}

// progressSignal inspects a video renderer and reports a Progress when the
// signal it looks for is present.
type progressSignal func(item gjson.Result) (models.Progress, bool)

// progressSignals are evaluated in priority order.
var progressSignals = []progressSignal{
	resumePlaybackSignal,
	watchedBadgeSignal,
}

// TextFromRuns joins the text of every run in order. Anything that is not an
// array yields "".
func TextFromRuns(runs gjson.Result) string {
	if !runs.IsArray() {
		return ""
	}

	var text []byte
	runs.ForEach(func(_, run gjson.Result) bool {
		text = append(text, run.Get("text").String()...)
		return true
	})
	return string(text)
}

// ThumbnailURL returns the URL of the last thumbnail candidate. Candidates
// are ordered smallest to largest, so the last one is the best quality.
func ThumbnailURL(thumbnail gjson.Result) string {
	thumbnails := thumbnail.Get("thumbnails")
	if !thumbnails.IsArray() {
		return ""
	}

	candidates := thumbnails.Array()
	if len(candidates) == 0 {
		return ""
	}
	return candidates[len(candidates)-1].Get("url").String()
}

// ChannelURL returns the channel's canonical base URL (a relative path such as
// "/@name"), or nil when none of the known paths resolve.
func ChannelURL(item gjson.Result) (channelURL *string) {
	defer func() {
		if r := recover(); r != nil {
			logger.WithComponent("extractor").Errorf("Error extracting channel URL: %v", r)
			channelURL = nil
		}
	}()

	for _, path := range channelURLPaths {
		value := item.Get(path)
		if value.Type != gjson.String || value.Str == "" {
			continue
		}
		url := value.Str
		return &url
	}
	return nil
}

// ProgressInfo derives the watch progress from the first signal present.
// Without any signal the video counts as unwatched.
func ProgressInfo(item gjson.Result) (progress models.Progress) {
	defer func() {
		if r := recover(); r != nil {
			logger.WithComponent("extractor").Errorf("Error extracting progress info: %v", r)
			progress = models.Progress{}
		}
	}()

	for _, signal := range progressSignals {
		if p, ok := signal(item); ok {
			return p
		}
	}
	return models.Progress{}
}

// resumePlaybackSignal matches a resume-playback overlay. Its percentage wins
// even when it is 0 or missing.
func resumePlaybackSignal(item gjson.Result) (models.Progress, bool) {
	overlays := item.Get("thumbnailOverlays")
	if !overlays.IsArray() {
		return models.Progress{}, false
	}

	for _, overlay := range overlays.Array() {
		resume := overlay.Get("thumbnailOverlayResumePlaybackRenderer")
		if !resume.Exists() {
			continue
		}
		return models.Progress{
			Watched: true,
			Percent: models.ClampPercent(resume.Get("percentDurationWatched").Float()),
		}, true
	}
	return models.Progress{}, false
}

func watchedBadgeSignal(item gjson.Result) (models.Progress, bool) {
	badges := item.Get("badges")
	if !badges.IsArray() {
		return models.Progress{}, false
	}

	for _, badge := range badges.Array() {
		if badge.Get("metadataBadgeRenderer.style").String() == watchedBadgeStyle {
			return models.Progress{Watched: true, Percent: 100}, true
		}
	}
	return models.Progress{}, false
}

// displayText reads a text node that is either {simpleText} or {runs}, and
// returns fallback when both are empty.
func displayText(node gjson.Result, fallback string) string {
	if text := node.Get("simpleText").String(); text != "" {
		return text
	}
	if text := TextFromRuns(node.Get("runs")); text != "" {
		return text
	}
	return fallback
}
