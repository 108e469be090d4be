package entity

import (
	"strings"

	"github.com/jogoforca/hangman-backend/internal/apperror"
)

const (
	StatusWaitingPlayers = "waiting_players"
	StatusWaitingWord    = "waiting_word"
	StatusPlaying        = "playing"
	StatusRoundFinished  = "round_finished"
	StatusGameFinished   = "game_finished"

	ModePvP = "pvp"
	ModePvC = "pvc"

	CPUPlayer = "CPU"

	MaxPlayers   = 5
	MaxAttempts  = 6
	WinningScore = 2

	MinWordLength = 3
	MaxWordLength = 15
)

// Alphabet - the accepted character set: uppercase Latin plus accented letters.
const Alphabet = "ABCDEFGHIJKLMNOPQRSTUVWXYZÀÁÂÃÄÅÆÇÈÉÊËÌÍÎÏÐÑÒÓÔÕÖØÙÚÛÜÝÞŸ"

// Rand - source of randomness for role assignment and ID generation,
// injected so tests can supply deterministic sequences.
type Rand interface {
	Intn(n int) int
}

// Session - one running game, keyed by its identifier. The secret word is
// carried here for storage but never leaves through a Snapshot.
type Session struct {
	ID               string           `json:"id"`
	Mode             string           `json:"mode"`
	Players          []string         `json:"players"`
	CurrentRound     int              `json:"current_round"`
	MaxRounds        int              `json:"max_rounds"`
	Scores           map[string]int   `json:"scores"`
	WordCreator      string           `json:"word_creator,omitempty"`
	WordGuesser      string           `json:"word_guesser,omitempty"`
	SecretWord       string           `json:"secret_word,omitempty"`
	WordLength       int              `json:"word_length,omitempty"`
	Hint             string           `json:"hint,omitempty"`
	GuessedLetters   []string         `json:"guessed_letters"`
	CorrectPositions map[string][]int `json:"correct_positions"`
	AttemptsLeft     int              `json:"attempts_left"`
	MaxAttempts      int              `json:"max_attempts"`
	Status           string           `json:"game_status"`
	RoundWinner      string           `json:"round_winner,omitempty"`
	GameWinner       string           `json:"game_winner,omitempty"`
}

// GuessResult - outcome of a single letter guess.
type GuessResult struct {
	Letter       string `json:"letter"`
	IsCorrect    bool   `json:"is_correct"`
	Positions    []int  `json:"positions"`
	AttemptsLeft int    `json:"attempts_left"`
	GameStatus   string `json:"game_status"`
	RoundWinner  string `json:"round_winner"`
	RevealedWord string `json:"revealed_word,omitempty"`
}

// NewSession - creates a session in round 1 with zeroed scores. PvC and
// two-player PvP games are best of three, bigger PvP tables get two rounds.
func NewSession(id, mode string, players []string) *Session {
	maxRounds := 2
	if mode == ModePvC || len(players) == 2 {
		maxRounds = 3
	}

	scores := make(map[string]int, len(players)+1)
	for _, player := range players {
		scores[player] = 0
	}
	if mode == ModePvC {
		scores[CPUPlayer] = 0
	}

	return &Session{
		ID:               id,
		Mode:             mode,
		Players:          players,
		CurrentRound:     1,
		MaxRounds:        maxRounds,
		Scores:           scores,
		GuessedLetters:   make([]string, 0),
		CorrectPositions: make(map[string][]int),
		AttemptsLeft:     MaxAttempts,
		MaxAttempts:      MaxAttempts,
		Status:           StatusWaitingWord,
	}
}

func (that *Session) IsWaitingPlayers() bool {
	return that.Status == StatusWaitingPlayers
}

func (that *Session) IsWaitingWord() bool {
	return that.Status == StatusWaitingWord
}

func (that *Session) IsPlaying() bool {
	return that.Status == StatusPlaying
}

func (that *Session) IsRoundFinished() bool {
	return that.Status == StatusRoundFinished
}

func (that *Session) IsGameFinished() bool {
	return that.Status == StatusGameFinished
}

func (that *Session) HasPlayer(name string) bool {
	for _, player := range that.Players {
		if player == name {
			return true
		}
	}

	return false
}

// AssignRoles - picks a random word creator; the guesser is the next player
// in join order.
func (that *Session) AssignRoles(rnd Rand) {
	creatorIdx := rnd.Intn(len(that.Players))
	that.WordCreator = that.Players[creatorIdx]
	that.WordGuesser = that.Players[(creatorIdx+1)%len(that.Players)]
	that.Status = StatusWaitingWord
}

// Join - adds a player to a PvP game that has not started playing yet. Once
// a second player arrives the roles are assigned and the game becomes best
// of three.
func (that *Session) Join(name string, rnd Rand) error {
	if that.Mode != ModePvP {
		return apperror.ErrJoinPvPOnly
	}

	if name == "" {
		return apperror.ErrEmptyPlayerName
	}

	if that.HasPlayer(name) {
		return apperror.ErrDuplicatePlayer
	}

	if len(that.Players) >= MaxPlayers {
		return apperror.ErrGameFull
	}

	if that.IsPlaying() {
		return apperror.ErrGameInProgress
	}

	that.Players = append(that.Players, name)
	that.Scores[name] = 0

	if len(that.Players) >= 2 && that.IsWaitingPlayers() {
		that.AssignRoles(rnd)

		if len(that.Players) == 2 {
			that.MaxRounds = 3
		}
	}

	return nil
}

// SetSecretWord - installs the round's secret word and moves to playing.
func (that *Session) SetSecretWord(word, hint string) {
	that.SecretWord = word
	that.WordLength = len([]rune(word))
	that.Hint = hint
	that.Status = StatusPlaying
}

// Guess - resolves a single letter guess: records it, finds its positions in
// the secret word and decides the round when the word is complete or the
// attempts run out.
func (that *Session) Guess(letter string) (*GuessResult, error) {
	if !that.IsPlaying() {
		return nil, apperror.ErrGameNotPlaying
	}

	if !IsValidLetter(letter) {
		return nil, apperror.ErrInvalidLetter
	}

	for _, guessed := range that.GuessedLetters {
		if guessed == letter {
			return nil, apperror.ErrAlreadyGuessed
		}
	}

	that.GuessedLetters = append(that.GuessedLetters, letter)

	target := []rune(letter)[0]
	positions := make([]int, 0)
	for i, r := range []rune(that.SecretWord) {
		if r == target {
			positions = append(positions, i)
		}
	}

	isCorrect := len(positions) > 0
	if isCorrect {
		that.CorrectPositions[letter] = positions
	} else {
		that.AttemptsLeft--
	}

	var revealed string
	switch {
	case that.allLettersFound():
		that.finishRound(that.WordGuesser)
		revealed = that.SecretWord
	case that.AttemptsLeft <= 0:
		that.finishRound(that.WordCreator)
		revealed = that.SecretWord
	}

	return &GuessResult{
		Letter:       letter,
		IsCorrect:    isCorrect,
		Positions:    positions,
		AttemptsLeft: that.AttemptsLeft,
		GameStatus:   that.Status,
		RoundWinner:  that.RoundWinner,
		RevealedWord: revealed,
	}, nil
}

// ConfirmNextRound - checks that another round may start.
func (that *Session) ConfirmNextRound() error {
	if !that.IsRoundFinished() && !that.IsGameFinished() {
		return apperror.ErrRoundNotFinished
	}

	if that.IsGameFinished() {
		return apperror.ErrGameFinished
	}

	if that.CurrentRound >= that.MaxRounds {
		return apperror.ErrNoRoundsLeft
	}

	return nil
}

// ResetRound - advances to the next round with a clean slate: no guesses, no
// secret word, full attempts.
func (that *Session) ResetRound() {
	that.CurrentRound++
	that.GuessedLetters = make([]string, 0)
	that.CorrectPositions = make(map[string][]int)
	that.AttemptsLeft = MaxAttempts
	that.SecretWord = ""
	that.WordLength = 0
	that.Hint = ""
	that.RoundWinner = ""
	that.Status = StatusWaitingWord
}

// RotateRoles - two players swap roles; with more players the next guesser
// follows the current one in join order and the creator is drawn at random
// from everyone else.
func (that *Session) RotateRoles(rnd Rand) {
	if len(that.Players) == 2 {
		that.WordCreator, that.WordGuesser = that.WordGuesser, that.WordCreator
		return
	}

	nextGuesser := (that.playerIndex(that.WordGuesser) + 1) % len(that.Players)

	creators := make([]string, 0, len(that.Players)-1)
	for i, player := range that.Players {
		if i != nextGuesser {
			creators = append(creators, player)
		}
	}

	that.WordCreator = creators[rnd.Intn(len(creators))]
	that.WordGuesser = that.Players[nextGuesser]
}

func (that *Session) playerIndex(name string) int {
	for i, player := range that.Players {
		if player == name {
			return i
		}
	}

	return 0
}

func (that *Session) allLettersFound() bool {
	for _, r := range that.SecretWord {
		if _, ok := that.CorrectPositions[string(r)]; !ok {
			return false
		}
	}

	return true
}

func (that *Session) finishRound(winner string) {
	that.RoundWinner = winner
	that.Scores[winner]++
	that.Status = StatusRoundFinished
	that.checkGameFinished()
}

// checkGameFinished - the first player to reach the winning score takes the
// game. Candidates are checked in join order, CPU last, so simultaneous
// threshold crossings resolve deterministically.
func (that *Session) checkGameFinished() {
	candidates := that.Players
	if that.Mode == ModePvC {
		candidates = append(append([]string{}, that.Players...), CPUPlayer)
	}

	for _, player := range candidates {
		if that.Scores[player] >= WinningScore {
			that.Status = StatusGameFinished
			that.GameWinner = player
			return
		}
	}
}

// Clone - deep copy, so stored state is never shared with callers.
func (that *Session) Clone() *Session {
	clone := *that

	clone.Players = append([]string(nil), that.Players...)
	clone.GuessedLetters = append([]string(nil), that.GuessedLetters...)

	clone.Scores = make(map[string]int, len(that.Scores))
	for player, score := range that.Scores {
		clone.Scores[player] = score
	}

	clone.CorrectPositions = make(map[string][]int, len(that.CorrectPositions))
	for letter, positions := range that.CorrectPositions {
		clone.CorrectPositions[letter] = append([]int(nil), positions...)
	}

	return &clone
}

// IsValidLetter - exactly one character from the accepted alphabet.
func IsValidLetter(letter string) bool {
	runes := []rune(letter)
	if len(runes) != 1 {
		return false
	}

	return strings.ContainsRune(Alphabet, runes[0])
}

// IsValidWord - letters from the accepted alphabet only, within length limits.
func IsValidWord(word string) bool {
	runes := []rune(word)
	if len(runes) < MinWordLength || len(runes) > MaxWordLength {
		return false
	}

	for _, r := range runes {
		if !strings.ContainsRune(Alphabet, r) {
			return false
		}
	}

	return true
}
