package tui

import (
	"github.com/UgbabeOG/the-circuit-soul-blog/internal/cache"
	"github.com/UgbabeOG/the-circuit-soul-blog/internal/pipeline"
)

type cacheLoadedMsg struct {
	snap cache.Snapshot
	ok   bool
}

type cacheErrMsg struct {
	err error
}

// errMsg carries any other async failure worth a status-bar line.
type errMsg struct {
	err error
}

type generationDoneMsg struct {
	result pipeline.Result
}

type imageReadyMsg struct {
	slug string
	url  string
}

type imageFailedMsg struct {
	slug string
}

type searchDebouncedMsg struct {
	seq int
}

type highlightClearedMsg struct {
	slug string
}

type shareResultMsg struct {
	url string
	err error
}

type flashClearedMsg struct{}

type updateAvailableMsg struct {
	version string
}
