package domain

func Index(list []Campaign, id string) int {
	for i, c := range list {
		if c.ID == id {
			return i
		}
	}
	return -1
}

func Append(list []Campaign, c Campaign) []Campaign {
	out := make([]Campaign, 0, len(list)+1)
	out = append(out, list...)
	return append(out, c)
}

// Merge applies patch to the campaign with the given id. ok is false when no
// campaign matches, in which case list is returned as is.
func Merge(list []Campaign, id string, patch Patch) ([]Campaign, Campaign, bool) {
	idx := Index(list, id)
	if idx < 0 {
		return list, Campaign{}, false
	}
	out := append([]Campaign(nil), list...)
	c := out[idx]
	if patch.Name != nil {
		c.Name = *patch.Name
	}
	if patch.Description != nil {
		c.Description = *patch.Description
	}
	if patch.Settings != nil {
		settings := *patch.Settings
		c.Settings = &settings
	}
	out[idx] = c
	return out, c, true
}

func Remove(list []Campaign, id string) ([]Campaign, bool) {
	idx := Index(list, id)
	if idx < 0 {
		return list, false
	}
	out := make([]Campaign, 0, len(list)-1)
	out = append(out, list[:idx]...)
	return append(out, list[idx+1:]...), true
}

// ResolveActive keeps activeID when it names a campaign in list and otherwise
// falls back to the first campaign.
func ResolveActive(list []Campaign, activeID string) string {
	if Index(list, activeID) >= 0 {
		return activeID
	}
	if len(list) == 0 {
		return ""
	}
	return list[0].ID
}
