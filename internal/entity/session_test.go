package entity

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jogoforca/hangman-backend/internal/apperror"
)

type fakeRand struct {
	values []int
	idx    int
}

func (that *fakeRand) Intn(n int) int {
	value := that.values[that.idx%len(that.values)]
	that.idx++

	return value % n
}

func TestNewSession(t *testing.T) {
	t.Run("PvC is best of three with a CPU score entry", func(t *testing.T) {
		// Given / When: a pvc session with one player
		session := NewSession("ABCD1234", ModePvC, []string{"Alice"})

		// Then: three rounds, scores for the player and the CPU, full attempts
		assert.Equal(t, 3, session.MaxRounds)
		assert.Equal(t, map[string]int{"Alice": 0, CPUPlayer: 0}, session.Scores)
		assert.Equal(t, MaxAttempts, session.AttemptsLeft)
		assert.Equal(t, 1, session.CurrentRound)
	})

	t.Run("two player PvP is best of three", func(t *testing.T) {
		session := NewSession("ABCD1234", ModePvP, []string{"Alice", "Bob"})

		assert.Equal(t, 3, session.MaxRounds)
		assert.Equal(t, map[string]int{"Alice": 0, "Bob": 0}, session.Scores)
	})

	t.Run("bigger PvP tables get two rounds", func(t *testing.T) {
		session := NewSession("ABCD1234", ModePvP, []string{"Alice", "Bob", "Carol"})

		assert.Equal(t, 2, session.MaxRounds)
	})
}

func TestSession_AssignRoles(t *testing.T) {
	t.Run("guesser follows the creator in join order", func(t *testing.T) {
		// Given: a three player session and a rand that picks index 1
		session := NewSession("ABCD1234", ModePvP, []string{"Alice", "Bob", "Carol"})

		// When: roles are assigned
		session.AssignRoles(&fakeRand{values: []int{1}})

		// Then: Bob creates, Carol guesses
		assert.Equal(t, "Bob", session.WordCreator)
		assert.Equal(t, "Carol", session.WordGuesser)
		assert.Equal(t, StatusWaitingWord, session.Status)
	})

	t.Run("creator pick wraps around", func(t *testing.T) {
		session := NewSession("ABCD1234", ModePvP, []string{"Alice", "Bob"})

		session.AssignRoles(&fakeRand{values: []int{1}})

		assert.Equal(t, "Bob", session.WordCreator)
		assert.Equal(t, "Alice", session.WordGuesser)
	})
}

func TestSession_Join(t *testing.T) {
	rnd := &fakeRand{values: []int{0}}

	t.Run("only pvp games accept new players", func(t *testing.T) {
		session := NewSession("ABCD1234", ModePvC, []string{"Alice"})

		err := session.Join("Bob", rnd)

		assert.ErrorIs(t, err, apperror.ErrJoinPvPOnly)
	})

	t.Run("empty name is rejected", func(t *testing.T) {
		session := NewSession("ABCD1234", ModePvP, []string{"Alice"})

		err := session.Join("", rnd)

		assert.ErrorIs(t, err, apperror.ErrEmptyPlayerName)
	})

	t.Run("duplicate name is rejected", func(t *testing.T) {
		session := NewSession("ABCD1234", ModePvP, []string{"Alice"})

		err := session.Join("Alice", rnd)

		assert.ErrorIs(t, err, apperror.ErrDuplicatePlayer)
	})

	t.Run("full table is rejected", func(t *testing.T) {
		session := NewSession("ABCD1234", ModePvP, []string{"A", "B", "C", "D", "E"})

		err := session.Join("F", rnd)

		assert.ErrorIs(t, err, apperror.ErrGameFull)
	})

	t.Run("cannot join a game in progress", func(t *testing.T) {
		session := NewSession("ABCD1234", ModePvP, []string{"Alice", "Bob"})
		session.Status = StatusPlaying

		err := session.Join("Carol", rnd)

		assert.ErrorIs(t, err, apperror.ErrGameInProgress)
	})

	t.Run("second player triggers role assignment and best of three", func(t *testing.T) {
		// Given: a single player session waiting for invites
		session := NewSession("ABCD1234", ModePvP, []string{"Alice"})
		session.Status = StatusWaitingPlayers
		session.MaxRounds = 2

		// When: a second player joins
		err := session.Join("Bob", &fakeRand{values: []int{0}})

		// Then: roles are set, the game waits for a word and becomes best of three
		require.NoError(t, err)
		assert.Equal(t, StatusWaitingWord, session.Status)
		assert.Equal(t, "Alice", session.WordCreator)
		assert.Equal(t, "Bob", session.WordGuesser)
		assert.Equal(t, 3, session.MaxRounds)
		assert.Equal(t, 0, session.Scores["Bob"])
	})

	t.Run("late joiners do not disturb assigned roles", func(t *testing.T) {
		session := NewSession("ABCD1234", ModePvP, []string{"Alice", "Bob"})
		session.AssignRoles(&fakeRand{values: []int{0}})

		err := session.Join("Carol", rnd)

		require.NoError(t, err)
		assert.Equal(t, "Alice", session.WordCreator)
		assert.Equal(t, "Bob", session.WordGuesser)
		assert.Equal(t, []string{"Alice", "Bob", "Carol"}, session.Players)
	})
}

func playingSession(t *testing.T, word string) *Session {
	t.Helper()

	session := NewSession("ABCD1234", ModePvP, []string{"Alice", "Bob"})
	session.WordCreator = "Alice"
	session.WordGuesser = "Bob"
	session.SetSecretWord(word, "")

	return session
}

func TestSession_Guess(t *testing.T) {
	t.Run("correct letter records every position", func(t *testing.T) {
		// Given: a round with the word ARARA in play
		session := playingSession(t, "ARARA")

		// When: guessing a letter that occurs three times
		result, err := session.Guess("A")

		// Then: all positions are reported and no attempt is spent
		require.NoError(t, err)
		assert.True(t, result.IsCorrect)
		assert.Equal(t, []int{0, 2, 4}, result.Positions)
		assert.Equal(t, MaxAttempts, result.AttemptsLeft)
		assert.Equal(t, []int{0, 2, 4}, session.CorrectPositions["A"])
	})

	t.Run("wrong letter spends an attempt", func(t *testing.T) {
		session := playingSession(t, "GATO")

		result, err := session.Guess("Z")

		require.NoError(t, err)
		assert.False(t, result.IsCorrect)
		assert.Empty(t, result.Positions)
		assert.Equal(t, MaxAttempts-1, result.AttemptsLeft)
	})

	t.Run("repeated letter fails regardless of correctness", func(t *testing.T) {
		session := playingSession(t, "GATO")

		_, err := session.Guess("G")
		require.NoError(t, err)

		_, err = session.Guess("G")
		assert.ErrorIs(t, err, apperror.ErrAlreadyGuessed)

		_, err = session.Guess("Z")
		require.NoError(t, err)

		_, err = session.Guess("Z")
		assert.ErrorIs(t, err, apperror.ErrAlreadyGuessed)
	})

	t.Run("rejects anything but a single letter from the alphabet", func(t *testing.T) {
		session := playingSession(t, "GATO")

		for _, letter := range []string{"", "GA", "4", "!"} {
			_, err := session.Guess(letter)
			assert.ErrorIs(t, err, apperror.ErrInvalidLetter)
		}
	})

	t.Run("rejects guesses outside a playing round", func(t *testing.T) {
		session := NewSession("ABCD1234", ModePvP, []string{"Alice", "Bob"})

		_, err := session.Guess("A")

		assert.ErrorIs(t, err, apperror.ErrGameNotPlaying)
	})

	t.Run("guesser wins once every distinct letter is found", func(t *testing.T) {
		// Given: the word GATO in play
		session := playingSession(t, "GATO")

		// When: guessing all four letters
		for _, letter := range []string{"G", "A", "T"} {
			_, err := session.Guess(letter)
			require.NoError(t, err)
		}
		result, err := session.Guess("O")
		require.NoError(t, err)

		// Then: the round goes to the guesser and the word is revealed
		assert.Equal(t, StatusRoundFinished, result.GameStatus)
		assert.Equal(t, "Bob", result.RoundWinner)
		assert.Equal(t, "GATO", result.RevealedWord)
		assert.Equal(t, 1, session.Scores["Bob"])
	})

	t.Run("creator wins when the attempts run out", func(t *testing.T) {
		session := playingSession(t, "GATO")

		var result *GuessResult
		var err error
		for _, letter := range []string{"B", "C", "D", "E", "F", "H"} {
			result, err = session.Guess(letter)
			require.NoError(t, err)
		}

		assert.Equal(t, 0, result.AttemptsLeft)
		assert.Equal(t, StatusRoundFinished, result.GameStatus)
		assert.Equal(t, "Alice", result.RoundWinner)
		assert.Equal(t, "GATO", result.RevealedWord)
		assert.Equal(t, 1, session.Scores["Alice"])
	})

	t.Run("second round win finishes the whole game", func(t *testing.T) {
		// Given: the guesser already has one point
		session := playingSession(t, "GATO")
		session.Scores["Bob"] = 1

		// When: the guesser completes the word again
		for _, letter := range []string{"G", "A", "T"} {
			_, err := session.Guess(letter)
			require.NoError(t, err)
		}
		result, err := session.Guess("O")
		require.NoError(t, err)

		// Then: the game is over with Bob as the winner
		assert.Equal(t, StatusGameFinished, result.GameStatus)
		assert.Equal(t, "Bob", session.GameWinner)
		assert.Equal(t, 2, session.Scores["Bob"])
	})

	t.Run("accented letters are guessable", func(t *testing.T) {
		session := playingSession(t, "AÇÃO")

		result, err := session.Guess("Ç")

		require.NoError(t, err)
		assert.True(t, result.IsCorrect)
		assert.Equal(t, []int{1}, result.Positions)
	})
}

func TestSession_ConfirmNextRound(t *testing.T) {
	t.Run("rejects an unfinished round", func(t *testing.T) {
		session := playingSession(t, "GATO")

		assert.ErrorIs(t, session.ConfirmNextRound(), apperror.ErrRoundNotFinished)
	})

	t.Run("rejects a finished game", func(t *testing.T) {
		session := playingSession(t, "GATO")
		session.Status = StatusGameFinished

		assert.ErrorIs(t, session.ConfirmNextRound(), apperror.ErrGameFinished)
	})

	t.Run("rejects exhausted rounds", func(t *testing.T) {
		session := playingSession(t, "GATO")
		session.Status = StatusRoundFinished
		session.CurrentRound = session.MaxRounds

		assert.ErrorIs(t, session.ConfirmNextRound(), apperror.ErrNoRoundsLeft)
	})

	t.Run("allows a finished round with rounds left", func(t *testing.T) {
		session := playingSession(t, "GATO")
		session.Status = StatusRoundFinished

		assert.NoError(t, session.ConfirmNextRound())
	})
}

func TestSession_ResetRound(t *testing.T) {
	// Given: a decided round with guesses on the board
	session := playingSession(t, "GATO")
	_, err := session.Guess("G")
	require.NoError(t, err)
	_, err = session.Guess("Z")
	require.NoError(t, err)
	session.Status = StatusRoundFinished
	session.RoundWinner = "Bob"

	// When: the round is reset
	session.ResetRound()

	// Then: all per-round state is back to the starting position
	assert.Equal(t, 2, session.CurrentRound)
	assert.Empty(t, session.GuessedLetters)
	assert.Empty(t, session.CorrectPositions)
	assert.Equal(t, MaxAttempts, session.AttemptsLeft)
	assert.Empty(t, session.SecretWord)
	assert.Zero(t, session.WordLength)
	assert.Empty(t, session.RoundWinner)
	assert.Equal(t, StatusWaitingWord, session.Status)
}

func TestSession_RotateRoles(t *testing.T) {
	t.Run("two players swap roles", func(t *testing.T) {
		session := NewSession("ABCD1234", ModePvP, []string{"Alice", "Bob"})
		session.WordCreator = "Alice"
		session.WordGuesser = "Bob"

		session.RotateRoles(&fakeRand{values: []int{0}})

		assert.Equal(t, "Bob", session.WordCreator)
		assert.Equal(t, "Alice", session.WordGuesser)
	})

	t.Run("next guesser follows join order, creator drawn from the rest", func(t *testing.T) {
		// Given: Carol guessing in a three player game
		session := NewSession("ABCD1234", ModePvP, []string{"Alice", "Bob", "Carol"})
		session.WordCreator = "Alice"
		session.WordGuesser = "Carol"

		// When: roles rotate with a rand picking the first remaining player
		session.RotateRoles(&fakeRand{values: []int{0}})

		// Then: the guesser wraps to Alice and the creator is not the guesser
		assert.Equal(t, "Alice", session.WordGuesser)
		assert.Equal(t, "Bob", session.WordCreator)
		assert.NotEqual(t, session.WordGuesser, session.WordCreator)
	})
}

func TestSession_Snapshot(t *testing.T) {
	t.Run("never carries the secret word mid round", func(t *testing.T) {
		session := playingSession(t, "GATO")

		snapshot := session.Snapshot()

		assert.Empty(t, snapshot.RevealedWord)
		assert.Equal(t, 4, snapshot.WordLength)
		assert.Equal(t, StatusPlaying, snapshot.GameStatus)
	})

	t.Run("reveals the word once the round is decided", func(t *testing.T) {
		session := playingSession(t, "GATO")
		session.Status = StatusRoundFinished

		snapshot := session.Snapshot()

		assert.Equal(t, "GATO", snapshot.RevealedWord)
	})

	t.Run("is isolated from the session", func(t *testing.T) {
		session := playingSession(t, "GATO")

		snapshot := session.Snapshot()
		snapshot.Scores["Alice"] = 99
		snapshot.Players[0] = "Mallory"

		assert.Equal(t, 0, session.Scores["Alice"])
		assert.Equal(t, "Alice", session.Players[0])
	})
}

func TestSession_Clone(t *testing.T) {
	// Given: a session with round state
	session := playingSession(t, "GATO")
	_, err := session.Guess("G")
	require.NoError(t, err)

	// When: cloning and mutating the clone
	clone := session.Clone()
	clone.Scores["Bob"] = 5
	clone.GuessedLetters = append(clone.GuessedLetters, "X")
	clone.CorrectPositions["G"][0] = 9

	// Then: the original is untouched
	assert.Equal(t, 0, session.Scores["Bob"])
	assert.Equal(t, []string{"G"}, session.GuessedLetters)
	assert.Equal(t, []int{0}, session.CorrectPositions["G"])
}

func TestIsValidLetter(t *testing.T) {
	assert.True(t, IsValidLetter("A"))
	assert.True(t, IsValidLetter("Ç"))
	assert.True(t, IsValidLetter("Ÿ"))
	assert.False(t, IsValidLetter("a"))
	assert.False(t, IsValidLetter("AB"))
	assert.False(t, IsValidLetter("4"))
	assert.False(t, IsValidLetter(""))
}

func TestIsValidWord(t *testing.T) {
	assert.True(t, IsValidWord("GATO"))
	assert.True(t, IsValidWord("AÇÃO"))
	assert.False(t, IsValidWord("GA"))
	assert.False(t, IsValidWord("ABCDEFGHIJKLMNOP"))
	assert.False(t, IsValidWord("G4TO"))
	assert.False(t, IsValidWord("gato"))
}
