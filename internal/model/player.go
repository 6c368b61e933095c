package model

// PlayerName uniquely identifies a player across the system.
// Names are case-sensitive and immutable once registered.
type PlayerName string

// Player is a rated participant in the ladder
type Player struct {
	Name        PlayerName `json:"-"`
	Rating      float64    `json:"rating"`
	GamesPlayed int        `json:"games_played"`
	Wins        int        `json:"wins"`
	Losses      int        `json:"losses"`
	Draws       int        `json:"draws"`
	DateAdded   Date       `json:"date_added"`
}

// WinRate returns the fraction of played games the player has won,
// or 0 for a player with no games
func (p *Player) WinRate() float64 {
	if p.GamesPlayed == 0 {
		return 0
	}
	return float64(p.Wins) / float64(p.GamesPlayed)
}

// Clone returns an independent copy of the player
func (p *Player) Clone() *Player {
	cp := *p
	return &cp
}
