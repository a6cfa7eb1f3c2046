package filter

import "github.com/sandeepkv93/selesai/internal/model"

// Controller holds the current view mode. The mode is transient and never
// persisted.
type Controller struct {
	mode model.FilterMode
}

func New() *Controller {
	return &Controller{mode: model.FilterPending}
}

func (c *Controller) Mode() model.FilterMode { return c.mode }

func (c *Controller) SetMode(mode model.FilterMode) {
	c.mode = mode
}

func (c *Controller) Toggle() model.FilterMode {
	c.mode = c.mode.Toggle()
	return c.mode
}

func (c *Controller) Visible(all []model.Item) []model.Item {
	return Visible(all, c.mode)
}

// Visible returns the items matching mode, most recently created first.
// all is left untouched.
func Visible(all []model.Item, mode model.FilterMode) []model.Item {
	out := make([]model.Item, 0, len(all))
	for i := len(all) - 1; i >= 0; i-- {
		if mode.Matches(all[i]) {
			out = append(out, all[i])
		}
	}
	return out
}

// ShowToggle reports whether the filter control should be offered at all.
func ShowToggle(all []model.Item) bool {
	return len(all) > 0
}
