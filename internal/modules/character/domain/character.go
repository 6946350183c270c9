package domain

type Character struct {
	ID              string `json:"id"`
	Name            string `json:"name"`
	Race            string `json:"race"`
	Class           string `json:"class"`
	Description     string `json:"description"`
	BackgroundStory string `json:"backgroundStory,omitempty"`
	ImageURL        string `json:"imageUrl,omitempty"`
	VisualStoryURL  string `json:"visualStoryUrl,omitempty"`
	Notes           string `json:"notes"`
}

func Find(list []Character, id string) (Character, bool) {
	for _, c := range list {
		if c.ID == id {
			return c, true
		}
	}
	return Character{}, false
}

func Append(list []Character, c Character) []Character {
	out := make([]Character, 0, len(list)+1)
	out = append(out, list...)
	return append(out, c)
}

// Replace swaps the record with c.ID for c, keeping its position.
func Replace(list []Character, c Character) ([]Character, bool) {
	for i := range list {
		if list[i].ID != c.ID {
			continue
		}
		out := append([]Character(nil), list...)
		out[i] = c
		return out, true
	}
	return list, false
}

func Remove(list []Character, id string) ([]Character, bool) {
	for i := range list {
		if list[i].ID != id {
			continue
		}
		out := make([]Character, 0, len(list)-1)
		out = append(out, list[:i]...)
		return append(out, list[i+1:]...), true
	}
	return list, false
}

// Resolve maps ids to characters in the order given. Ids with no match are
// reported separately; a dangling reference is not an error.
func Resolve(list []Character, ids []string) ([]Character, []string) {
	known := make([]Character, 0, len(ids))
	var unknown []string
	for _, id := range ids {
		if c, ok := Find(list, id); ok {
			known = append(known, c)
			continue
		}
		unknown = append(unknown, id)
	}
	return known, unknown
}
