package redis

import (
	"fmt"

	"github.com/yatishgautam00/spy-game-local/internal/model"
)

// Key prefix for all spy-game data
const keyPrefix = "spygame"

// userKey returns the Redis key for a User
func userKey(id model.UserID) string {
	return fmt.Sprintf("%s:user:%s", keyPrefix, id)
}

// usersIndexKey returns the Redis key for the SET of all user IDs
func usersIndexKey() string {
	return fmt.Sprintf("%s:idx:users", keyPrefix)
}

// credentialsKey returns the Redis key for a user's Credentials
func credentialsKey(userID model.UserID) string {
	return fmt.Sprintf("%s:credentials:%s", keyPrefix, userID)
}

// emailIndexKey returns the Redis key for the email -> user_id index
func emailIndexKey(email string) string {
	return fmt.Sprintf("%s:idx:email:%s", keyPrefix, email)
}

// invitationKey returns the Redis key for an Invitation
func invitationKey(id model.InvitationID) string {
	return fmt.Sprintf("%s:invitation:%s", keyPrefix, id)
}

// invitationsForGameIndexKey returns the Redis key for the SET of
// invitations issued for a game
func invitationsForGameIndexKey(gameID model.GameID) string {
	return fmt.Sprintf("%s:idx:invitations_for_game:%s", keyPrefix, gameID)
}

// invitationsForInviteeIndexKey returns the Redis key for the SET of
// invitations addressed to a user
func invitationsForInviteeIndexKey(inviteeID model.UserID) string {
	return fmt.Sprintf("%s:idx:invitations_for_invitee:%s", keyPrefix, inviteeID)
}

// gameKey returns the Redis key for a Game
func gameKey(id model.GameID) string {
	return fmt.Sprintf("%s:game:%s", keyPrefix, id)
}

// wordPairsKey returns the Redis key for the word pair catalogue
func wordPairsKey() string {
	return fmt.Sprintf("%s:word_pairs", keyPrefix)
}
