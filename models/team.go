package models

// Team is owned by a tournament; its roster can change after creation.
type Team struct {
	ID      string   `json:"id"`
	Name    string   `json:"name"`
	Color   string   `json:"color"`
	Players []Player `json:"players"`

	LogoKey *string `json:"logo_key,omitempty"`
	LogoURL *string `json:"logo_url,omitempty"`
}

// Player jersey numbers are 1-99 and unique within a team.
type Player struct {
	ID           string `json:"id"`
	Name         string `json:"name"`
	JerseyNumber int    `json:"jersey_number"`
	BirthYear    *int   `json:"birth_year,omitempty"`
}

func (t *Team) FindPlayer(playerID string) *Player {
	for i := range t.Players {
		if t.Players[i].ID == playerID {
			return &t.Players[i]
		}
	}
	return nil
}

// JerseyTaken reports whether another player of the team already wears number.
func (t *Team) JerseyTaken(number int, exceptPlayerID string) bool {
	for _, p := range t.Players {
		if p.JerseyNumber == number && p.ID != exceptPlayerID {
			return true
		}
	}
	return false
}

func (t *Team) clone() Team {
	c := *t
	c.Players = append([]Player(nil), t.Players...)
	for i := range c.Players {
		c.Players[i].BirthYear = clonePtr(t.Players[i].BirthYear)
	}
	c.LogoKey = clonePtr(t.LogoKey)
	c.LogoURL = clonePtr(t.LogoURL)
	return c
}
