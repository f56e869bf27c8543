package model

// Actor is the host game engine's avatar of a connected player.
// Skill handlers reach the live entity (health, speed, chat) through
// this surface only; the engine never talks to the host directly.
//
// Implemented by the host adapter. A player without an avatar (not in
// game yet) gets a no-op actor, so handlers never need a nil check.
type Actor interface {
	// Team returns the host team id. Teams 2 and 3 are the playing
	// teams; anything else is a spectator slot.
	Team() int32

	Health() int32
	SetHealth(hp int32)

	Speed() float64
	SetSpeed(speed float64)

	// Slay kills the avatar so the host respawns it (used on hero switch).
	Slay()

	// SendMessage shows a chat line to the player.
	SendMessage(msg string)
}

// nopActor is the placeholder avatar used before the host adapter
// attaches a real one.
type nopActor struct{}

func (nopActor) Team() int32 { return 0 }
func (nopActor) Health() int32 { return 0 }
func (nopActor) SetHealth(int32) {}
func (nopActor) Speed() float64 { return 0 }
func (nopActor) SetSpeed(float64) {}
func (nopActor) Slay() {}
func (nopActor) SendMessage(string) {}
