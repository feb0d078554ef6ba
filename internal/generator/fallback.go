package generator

import (
	"github.com/samdwyer/floorgen/internal/world"
)

// minimalRoom is the single room used when every attempt failed.
var minimalRoom = centered(10, 6)

// minimalLayout builds the fallback floor: one room holding the player
// spawn and the stairs and nothing else. It consumes no random values.
func (a *attempt) minimalLayout() {
	a.grid = world.NewGrid(a.props.SecondaryTerrain)
	a.grid.CarveRoom(minimalRoom, 0)
	a.rooms = []*roomInfo{{index: 0, rect: minimalRoom, cell: &cell{bounds: minimalRoom, IsRoom: true, room: minimalRoom}}}
	a.spawns = nil
	a.vaults = nil

	*a.status = Status{
		Rooms:            1,
		PlayerRoom:       0,
		StairsRoom:       world.NoRoom,
		MonsterHouseRoom: world.NoRoom,
	}
	mid := minimalRoom.Center().Y
	a.status.PlayerSpawn = world.Position{X: minimalRoom.X0 + 1, Y: mid}
	if !a.props.NoStairs {
		stairs := world.Position{X: minimalRoom.X1 - 2, Y: mid}
		a.setStairs(stairs)
		a.status.Stairs = stairs
		a.status.StairsRoom = 0
	}
	a.status.ReachableFromStairs = minimalRoom.Area()
	a.finalize()
}
