package db

import (
	"strings"

	"github.com/google/uuid"
)

const (
	channelIDPrefix = "ch-"
	videoIDPrefix   = "vd-"
	slideIDPrefix   = "hs-"
)

// idGenerator returns the random part of new row ids.
// It can be replaced in tests to control ID generation.
var idGenerator = func() string {
	return strings.ReplaceAll(uuid.NewString(), "-", "")[:12]
}

func newChannelID() string { return channelIDPrefix + idGenerator() }
func newVideoID() string   { return videoIDPrefix + idGenerator() }
func newSlideID() string   { return slideIDPrefix + idGenerator() }

// NormalizeVideoID ensures a video ID has the vd- prefix
func NormalizeVideoID(id string) string {
	if id == "" || strings.HasPrefix(id, videoIDPrefix) {
		return id
	}
	return videoIDPrefix + id
}
