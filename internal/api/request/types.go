package request

// RegisterPlayerRequest is the body for POST /api/v1/players
type RegisterPlayerRequest struct {
	Name string `json:"name"`
	// InitialRating overrides the engine default when set
	InitialRating *float64 `json:"initial_rating,omitempty"`
}

// RecordGameRequest is the body for POST /api/v1/games
type RecordGameRequest struct {
	Player1 string `json:"player1"`
	Player2 string `json:"player2"`
	Result  string `json:"result"`
	// Date is the game's logical date (YYYY-MM-DD); defaults to today
	Date string `json:"date,omitempty"`
}
