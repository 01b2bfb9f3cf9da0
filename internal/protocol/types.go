package protocol

// User is the server's record of a seated player. The client never edits
// fields individually; it replaces the whole value with whatever the server
// last sent.
type User struct {
	Username string   `json:"username"`
	Hand     []string `json:"hand"`
	Points   int      `json:"points"`
}

// UserScore is the roster projection of a User, one entry per seated player.
type UserScore struct {
	Username string `json:"username"`
	Points   int    `json:"points"`
}

// TableCard is one submission on the table, hidden until revealed.
type TableCard struct {
	CardContent string `json:"cardContent"`
	Revealed    bool   `json:"revealed"`
}

// RoundStart announces a new round: who judges it and the question to fill.
type RoundStart struct {
	RoundMaster string `json:"roundMaster"`
	Question    string `json:"question"`
}

// Winner is the round outcome chosen by the round master.
type Winner struct {
	Winner string `json:"winner"`
	Points int    `json:"points"`
}

// JoinSuccess confirms a joinRoom request.
type JoinSuccess struct {
	User     User        `json:"user"`
	UserList []UserScore `json:"userList"`
}

// PlayCard asks the server to place one of our hand cards on the table.
type PlayCard struct {
	Owner       string `json:"owner"`
	CardContent string `json:"cardContent"`
}

// Reveal asks the server to flip a table card face up.
type Reveal struct {
	Owner string `json:"owner"`
}

// ChooseWinner picks the round winner by the owner of the chosen card.
type ChooseWinner struct {
	WinnerUsername string `json:"winnerUsername"`
}

// Presence is a structured join/leave notification. Older servers only
// announce presence through chat text; see internal/chat for the fallback.
type Presence struct {
	Username string `json:"username"`
	Joined   bool   `json:"joined"`
}
