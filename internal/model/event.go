package model

// Event names routed to skill handlers. Single-subject names arrive
// straight from the host event bus; kill/death and attack/victim pairs
// are produced by the dispatcher from the host's two-party events.
const (
	EventPlayerSpawn      = "player_spawn"
	EventPlayerJump       = "player_jump"
	EventPlayerDisconnect = "player_disconnect"

	EventPlayerKill   = "player_kill"
	EventPlayerDeath  = "player_death"
	EventPlayerAttack = "player_attack"
	EventPlayerVictim = "player_victim"

	EventPrePlayerAttack = "pre_player_attack"
	EventPrePlayerVictim = "pre_player_victim"

	EventPlayerUltimate = "player_ultimate"
)

// DamageInfo carries the pending damage of a pre-damage hook.
// Handlers may scale Damage before the host applies it.
type DamageInfo struct {
	Damage float64
}

// Event is the argument bundle forwarded to skill handlers.
//
// Player is the subject of this particular delivery. For two-party
// events both Attacker and Victim are set and the same bundle is
// delivered twice, once with Player pointing at each side.
type Event struct {
	Name     string
	Player   *Player
	Attacker *Player
	Victim   *Player
	Headshot bool
	Damage   *DamageInfo
}
