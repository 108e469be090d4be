package apperror

import "errors"

var (
	ErrInvalidMode    = errors.New("invalid mode, use 'pvp' or 'pvc'")
	ErrPvPPlayerCount = errors.New("pvp mode allows between 1 and 5 players")
	ErrPvCPlayerCount = errors.New("pvc mode requires exactly one player")

	ErrJoinPvPOnly     = errors.New("only pvp games accept new players")
	ErrEmptyPlayerName = errors.New("player name is required")
	ErrDuplicatePlayer = errors.New("player is already in the game")
	ErrGameFull        = errors.New("player limit reached")
	ErrGameInProgress  = errors.New("game is already in progress")

	ErrPvPOnly         = errors.New("this action is only valid in pvp mode")
	ErrWordNotExpected = errors.New("cannot submit a word right now")
	ErrInvalidWord     = errors.New("word must contain only letters")
	ErrWordLength      = errors.New("word must have between 3 and 15 letters")

	ErrGameNotPlaying = errors.New("game is not in progress")
	ErrInvalidLetter  = errors.New("a single letter must be sent")
	ErrAlreadyGuessed = errors.New("letter was already tried")

	ErrRoundNotFinished = errors.New("current round is not finished yet")
	ErrGameFinished     = errors.New("game is already finished")
	ErrNoRoundsLeft     = errors.New("all rounds have been played")
)

var clientErrors = []error{
	ErrInvalidMode,
	ErrPvPPlayerCount,
	ErrPvCPlayerCount,
	ErrJoinPvPOnly,
	ErrEmptyPlayerName,
	ErrDuplicatePlayer,
	ErrGameFull,
	ErrGameInProgress,
	ErrPvPOnly,
	ErrWordNotExpected,
	ErrInvalidWord,
	ErrWordLength,
	ErrGameNotPlaying,
	ErrInvalidLetter,
	ErrAlreadyGuessed,
	ErrRoundNotFinished,
	ErrGameFinished,
	ErrNoRoundsLeft,
}

// IsClientError - reports whether err comes from invalid input or an invalid
// state transition, recoverable by the caller with corrected input.
func IsClientError(err error) bool {
	for _, clientErr := range clientErrors {
		if errors.Is(err, clientErr) {
			return true
		}
	}

	return false
}
