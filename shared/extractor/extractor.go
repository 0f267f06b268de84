package extractor

import (
	"github.com/tidwall/gjson"

	"history-analyzer/internal/models"
	"history-analyzer/shared/logger"
	"history-analyzer/shared/storage"
)

const tabsPath = "contents.twoColumnBrowseResultsRenderer.tabs"

// ExtractVideos parses a raw ytInitialData document and adds every new video
// to store. It returns the number of records added. Invalid JSON or a
// missing branch adds nothing; it is never an error.
func ExtractVideos(payload []byte, store *storage.VideoStore) int {
	if !gjson.ValidBytes(payload) {
		logger.WithComponent("extractor").Warn("Payload is not valid JSON, no videos extracted")
		return 0
	}
	return ExtractFromResult(gjson.ParseBytes(payload), store)
}

// ExtractFromResult walks tabs -> selected tab -> sections -> items and
// stores one record per video ID. The first occurrence of an ID wins.
func ExtractFromResult(data gjson.Result, store *storage.VideoStore) (added int) {
	log := logger.WithComponent("extractor")
	defer func() {
		if r := recover(); r != nil {
			log.Errorf("Error extracting videos: %v", r)
		}
	}()

	tab, ok := selectedTab(data.Get(tabsPath))
	if !ok {
		log.Debug("No selected tab in payload")
		return 0
	}

	sections := tab.Get("tabRenderer.content.sectionListRenderer.contents")
	for _, item := range sectionItems(sections) {
		renderer := item.Get("videoRenderer")
		if !renderer.Exists() {
			// Continuation markers, ads, shelves.
			continue
		}

		videoID := renderer.Get("videoId").String()
		if videoID == "" {
			log.Debug("Skipping video renderer without videoId")
			continue
		}
		if store.Has(videoID) {
			continue
		}

		record, ok := buildRecord(videoID, renderer)
		if !ok {
			continue
		}
		store.Set(videoID, record)
		added++
	}

	log.Debugf("Extracted %d videos (%d in store)", added, store.Len())
	return added
}

func selectedTab(tabs gjson.Result) (gjson.Result, bool) {
	if !tabs.IsArray() {
		return gjson.Result{}, false
	}
	for _, tab := range tabs.Array() {
		if tab.Get("tabRenderer.selected").Bool() {
			return tab, true
		}
	}
	return gjson.Result{}, false
}

// sectionItems flattens the item lists of every itemSectionRenderer.
func sectionItems(sections gjson.Result) []gjson.Result {
	if !sections.IsArray() {
		return nil
	}

	var items []gjson.Result
	for _, section := range sections.Array() {
		contents := section.Get("itemSectionRenderer.contents")
		if !contents.IsArray() {
			continue
		}
		items = append(items, contents.Array()...)
	}
	return items
}

// buildRecord derives each field independently. A panic while building one
// record drops only that record.
func buildRecord(videoID string, renderer gjson.Result) (record models.VideoRecord, ok bool) {
	defer func() {
		if r := recover(); r != nil {
			logger.WithComponent("extractor").Warnf("Skipping video %s: %v", videoID, r)
			ok = false
		}
	}()

	channel := TextFromRuns(renderer.Get("ownerText.runs"))
	if channel == "" {
		channel = models.UnknownChannel
	}

	return models.VideoRecord{
		ID:            videoID,
		Title:         TextFromRuns(renderer.Get("title.runs")),
		ThumbnailURL:  ThumbnailURL(renderer.Get("thumbnail")),
		ViewCount:     displayText(renderer.Get("viewCountText"), models.NotAvailable),
		Duration:      displayText(renderer.Get("lengthText"), models.NotAvailable),
		ChannelName:   channel,
		ChannelURL:    ChannelURL(renderer),
		PublishedTime: displayText(renderer.Get("publishedTimeText"), models.NotAvailable),
		Progress:      ProgressInfo(renderer),
	}, true
}
