package model

// PlayerRole is a player's secret allegiance within a game
type PlayerRole string

const (
	RoleUnassigned PlayerRole = ""
	RoleSpy        PlayerRole = "spy"
	RoleVillager   PlayerRole = "villager"
)

// Player is a seated participant, embedded in a Game
type Player struct {
	UID        UserID
	Name       string
	Role       PlayerRole
	Word       string
	Active     bool
	Eliminated bool
	Ready      bool
}
