package entity

// Snapshot - the caller-facing view of a session. The secret word itself is
// only present once the round has been decided.
type Snapshot struct {
	GameID           string           `json:"game_id"`
	Mode             string           `json:"mode"`
	Players          []string         `json:"players"`
	CurrentRound     int              `json:"current_round"`
	MaxRounds        int              `json:"max_rounds"`
	Scores           map[string]int   `json:"scores"`
	WordCreator      string           `json:"word_creator"`
	WordGuesser      string           `json:"word_guesser"`
	WordLength       int              `json:"word_length"`
	Hint             string           `json:"hint"`
	GuessedLetters   []string         `json:"guessed_letters"`
	CorrectPositions map[string][]int `json:"correct_positions"`
	AttemptsLeft     int              `json:"attempts_left"`
	MaxAttempts      int              `json:"max_attempts"`
	GameStatus       string           `json:"game_status"`
	RoundWinner      string           `json:"round_winner"`
	GameWinner       string           `json:"game_winner"`
	RevealedWord     string           `json:"revealed_word,omitempty"`
}

// Snapshot - builds the public view of the session.
func (that *Session) Snapshot() *Snapshot {
	snapshot := &Snapshot{
		GameID:           that.ID,
		Mode:             that.Mode,
		Players:          append([]string(nil), that.Players...),
		CurrentRound:     that.CurrentRound,
		MaxRounds:        that.MaxRounds,
		Scores:           make(map[string]int, len(that.Scores)),
		WordCreator:      that.WordCreator,
		WordGuesser:      that.WordGuesser,
		WordLength:       that.WordLength,
		Hint:             that.Hint,
		GuessedLetters:   append([]string{}, that.GuessedLetters...),
		CorrectPositions: make(map[string][]int, len(that.CorrectPositions)),
		AttemptsLeft:     that.AttemptsLeft,
		MaxAttempts:      that.MaxAttempts,
		GameStatus:       that.Status,
		RoundWinner:      that.RoundWinner,
		GameWinner:       that.GameWinner,
	}

	for player, score := range that.Scores {
		snapshot.Scores[player] = score
	}

	for letter, positions := range that.CorrectPositions {
		snapshot.CorrectPositions[letter] = append([]int(nil), positions...)
	}

	if that.IsRoundFinished() || that.IsGameFinished() {
		snapshot.RevealedWord = that.SecretWord
	}

	return snapshot
}
