package board

// Layout holds playfield geometry in pixels. Y grows downward.
type Layout struct {
	Width, Height float64

	TileW, TileH float64
	TileGap      float64

	SlotW, SlotH float64
	SlotGap      float64
	SlotY        float64 // top edge of the slot row

	BeltY      float64 // tile center line on the conveyor
	BeltLeft   float64 // left edge of the first resting tile
	RainMargin float64
	RainJitter int // max extra spawn height above the playfield for rain

	EntrySpeed float64 // pixels per tick
}

// DefaultLayout matches the built-in levels and the default arm reach.
func DefaultLayout() Layout {
	return Layout{
		Width:  1000,
		Height: 700,

		TileW:   80,
		TileH:   60,
		TileGap: 20,

		SlotW:   90,
		SlotH:   70,
		SlotGap: 20,
		SlotY:   220,

		BeltY:      550,
		BeltLeft:   100,
		RainMargin: 50,
		RainJitter: 300,

		EntrySpeed: 4,
	}
}
