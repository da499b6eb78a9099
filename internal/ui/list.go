package ui

import (
	"fmt"

	"github.com/charmbracelet/bubbles/list"
	"github.com/jii-iin/weathermix/internal/models"
)

var _ list.Item = trackItem{}

// trackItem wraps [models.Track] to implement [list.Item].
type trackItem struct {
	track models.Track
}

func (i trackItem) FilterValue() string { return i.track.Name }
func (i trackItem) Title() string       { return i.track.Name }
func (i trackItem) Description() string {
	desc := i.track.ArtistLine()
	if i.track.ExternalURL != "" {
		desc = fmt.Sprintf("%s • %s", desc, i.track.ExternalURL)
	}
	return desc
}
