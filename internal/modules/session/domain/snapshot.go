package domain

// SchemaVersion is written into exported notes.
const SchemaVersion = 1

// Snapshot is a read-only copy of one campaign's timeline and roster.
type Snapshot struct {
	CampaignID   string
	CampaignName string
	Description  string
	Sessions     []Session
	Roster       []RosterEntry
}

type RosterEntry struct {
	ID          string
	Name        string
	Race        string
	Class       string
	Description string
}

// CastNames maps the session's character ids to names, keeping ids that no
// longer resolve so exported notes show the dangling reference.
func (s Snapshot) CastNames(session Session) []string {
	names := make([]string, 0, len(session.CharactersInvolved))
	for _, id := range session.CharactersInvolved {
		name := id
		for _, r := range s.Roster {
			if r.ID == id {
				name = r.Name
				break
			}
		}
		names = append(names, name)
	}
	return names
}
