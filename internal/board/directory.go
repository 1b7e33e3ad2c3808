package board

import (
	"github.com/openagora/agora/internal/types"
)

// Directory maintains the category → channel tree, per-category expansion
// state, and the currently selected channel.
type Directory struct {
	categories []types.Category
	collapsed  map[string]bool
	selected   string
}

// NewDirectory returns an empty directory with nothing selected.
func NewDirectory() *Directory {
	return &Directory{collapsed: make(map[string]bool)}
}

// Load replaces the tree. Every category starts expanded and the first
// channel of the first category becomes selected, in the order the gateway
// returned them.
func (d *Directory) Load(categories []types.Category) {
	d.categories = categories
	d.collapsed = make(map[string]bool)
	d.selected = ""
	if first, ok := d.firstChannel(); ok {
		d.selected = first.ID
	}
}

// Categories returns the tree in gateway order.
func (d *Directory) Categories() []types.Category { return d.categories }

// SelectedID returns the selected channel id, or "" for no selection.
func (d *Directory) SelectedID() string { return d.selected }

// Selected returns the selected channel, if any.
func (d *Directory) Selected() (types.Channel, bool) {
	return d.ChannelByID(d.selected)
}

// Select marks the channel as current. Unknown ids are rejected so the
// selection can never dangle.
func (d *Directory) Select(channelID string) bool {
	if _, ok := d.ChannelByID(channelID); !ok {
		return false
	}
	d.selected = channelID
	return true
}

// IsExpanded reports whether a category's channels are shown.
func (d *Directory) IsExpanded(categoryID string) bool {
	return !d.collapsed[categoryID]
}

// ToggleExpansion flips a category's expansion state.
func (d *Directory) ToggleExpansion(categoryID string) {
	d.collapsed[categoryID] = !d.collapsed[categoryID]
}

// ChannelByID finds a channel anywhere in the tree.
func (d *Directory) ChannelByID(channelID string) (types.Channel, bool) {
	if channelID == "" {
		return types.Channel{}, false
	}
	for _, cat := range d.categories {
		for _, ch := range cat.Channels {
			if ch.ID == channelID {
				return ch, true
			}
		}
	}
	return types.Channel{}, false
}

// AddCategory splices a created category into the tree, keeping gateway
// sort order.
func (d *Directory) AddCategory(category types.Category) {
	for _, existing := range d.categories {
		if existing.ID == category.ID {
			return
		}
	}
	inserted := false
	for i, existing := range d.categories {
		if category.SortOrder < existing.SortOrder {
			d.categories = append(d.categories[:i], append([]types.Category{category}, d.categories[i:]...)...)
			inserted = true
			break
		}
	}
	if !inserted {
		d.categories = append(d.categories, category)
	}
	if d.selected == "" {
		if first, ok := d.firstChannel(); ok {
			d.selected = first.ID
		}
	}
}

// UpdateCategory patches a category's fields in place, preserving its
// channel list.
func (d *Directory) UpdateCategory(category types.Category) bool {
	for i := range d.categories {
		if d.categories[i].ID == category.ID {
			category.Channels = d.categories[i].Channels
			d.categories[i] = category
			return true
		}
	}
	return false
}

// RemoveCategory drops a category from the tree. The gateway guarantees it
// owns no channels by the time the delete succeeds.
func (d *Directory) RemoveCategory(categoryID string) bool {
	for i := range d.categories {
		if d.categories[i].ID == categoryID {
			d.categories = append(d.categories[:i], d.categories[i+1:]...)
			delete(d.collapsed, categoryID)
			return true
		}
	}
	return false
}

// AddChannel splices a created channel into its category.
func (d *Directory) AddChannel(channel types.Channel) bool {
	if _, dup := d.ChannelByID(channel.ID); dup {
		return false
	}
	for i := range d.categories {
		if d.categories[i].ID == channel.CategoryID {
			d.categories[i].Channels = append(d.categories[i].Channels, channel)
			if d.selected == "" {
				d.selected = channel.ID
			}
			return true
		}
	}
	return false
}

// UpdateChannel patches a channel's fields in place. The category id is
// immutable after creation.
func (d *Directory) UpdateChannel(channel types.Channel) bool {
	for i := range d.categories {
		for j := range d.categories[i].Channels {
			if d.categories[i].Channels[j].ID == channel.ID {
				channel.CategoryID = d.categories[i].ID
				d.categories[i].Channels[j] = channel
				return true
			}
		}
	}
	return false
}

// RemoveChannel drops a channel. When it was selected, selection falls back
// to the first remaining channel, or to no selection when the board is
// empty. It never leaves a dangling id.
func (d *Directory) RemoveChannel(channelID string) bool {
	for i := range d.categories {
		for j := range d.categories[i].Channels {
			if d.categories[i].Channels[j].ID == channelID {
				channels := d.categories[i].Channels
				d.categories[i].Channels = append(channels[:j], channels[j+1:]...)
				if d.selected == channelID {
					d.selected = ""
					if first, ok := d.firstChannel(); ok {
						d.selected = first.ID
					}
				}
				return true
			}
		}
	}
	return false
}

func (d *Directory) firstChannel() (types.Channel, bool) {
	for _, cat := range d.categories {
		if len(cat.Channels) > 0 {
			return cat.Channels[0], true
		}
	}
	return types.Channel{}, false
}
