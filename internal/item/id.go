package item

// GameID is the numeric item id the game's own data (GetItem.byaml, chest
// and NPC reward Objs, FlowGraph Action steps) carries. Several Item values
// share one GameID because the game itself does not distinguish them at the
// data level: every dungeon's small key is GameID 1, every compass is
// GameID 3, and so on, with the dungeon/scene context supplying the
// distinction instead.
//
// Grounded on the repr(u16) numbering in original_source/game/src/items.rs;
// only the ids our curated Catalog actually needs are carried over.
type GameID uint16

var gameIDByItem = map[Item]GameID{
	Empty: 0x00,

	RupeeGreen:     0x06,
	RupeeBlue:      0x07,
	RupeeRed:       0x05,
	RupeePurple:    0x5B,
	RupeeSilver:    0x2E,
	RupeeGold:      0x2D,
	HeartPiece:     0x08,
	HeartContainer: 0x04,
	Shield:         0x12,
	ScootFruit:     0x36,
	FoulFruit:      0x37,
	GoldBee:        0x34,
	MonsterTail:    0x3A,
	MonsterGuts:    0x3B,
	MonsterHorn:    0x3C,

	IceRod:         0x09,
	SandRod:        0x0A,
	TornadoRod:     0x0B,
	Bombs:          0x0C,
	FireRod:        0x0D,
	Hookshot:       0x0E,
	Boomerang:      0x0F,
	Hammer:         0x10,
	Bow:            0x11,
	Lamp:           0x1A,
	Flippers:       0x1F,
	RaviosBracelet: 0x2B,
	Bell:           0x2C,
	Net:            0x30,
	HintGlasses:    0x35,
	HylianShield:   0x41,
	StaminaScroll:  0x45,
	Pouch:          0x46,
	PegasusBoots:   0x47,
	SmoothGem:      0x16,
	GreatSpin:      0x56,
	BowOfLight:     0x5C,

	Sword01: 0x1B,
	Sword02: 0x1C,
	Sword03: 0x1D,
	Sword04: 0x1E,

	OreYellow: 0x42,
	OreGreen:  0x43,
	OreBlue:   0x44,
	OreRed:    0x48,

	PendantOfPower:     0x17,
	PendantOfWisdom:    0x18,
	PendantOfCourage01: 0x19,
	PendantOfCourage02: 0x19,
	SageGulley:         0x19,
	SageOren:           0x19,
	SageSeres:          0x19,
	SageOsfala:         0x19,
	SageImpa:           0x19,
	SageIrene:          0x19,
	SageRosso:          0x19,

	Maiamai001: 0x32,
	Maiamai002: 0x32,
	Maiamai003: 0x32,
	Maiamai004: 0x32,
	Maiamai005: 0x32,
}

func init() {
	for _, d := range Catalog {
		switch d.Category {
		case CategoryBigKey:
			gameIDByItem[d.Item] = 0x02
		case CategorySmallKey:
			gameIDByItem[d.Item] = 0x01
		case CategoryCompass:
			gameIDByItem[d.Item] = 0x03
		}
	}
}

// ID returns an item's GameID. The two Pendant of Courage items and the
// seven sages all report GameID 0x19 at this level of abstraction: the game
// distinguishes which sage portrait or pendant actually appears by which
// chest/cutscene table the id is written into, not by a further id
// subdivision. The Pendants of Power and Wisdom keep their own ids (0x17,
// 0x18).
func ID(it Item) (GameID, bool) {
	id, ok := gameIDByItem[it]
	return id, ok
}
