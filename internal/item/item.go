// Package item names the randomizer's Item vocabulary and its placement
// categories (spec.md §4.9 step 1; SPEC_FULL.md §5's internal/pool.Category
// extension). Grounded on original_source/game/src/items.rs for item names
// and original_source/randomizer/src/item_pools.rs for the category split
// the assumed-fill partition order relies on; collapsed to a curated,
// representative subset of the real catalog (not all 100 Maiamai or all 41
// silver rupees) rather than every numbered duplicate.
package item

// Item identifies a placeable item by its in-game name, matching the
// strum-serialized names in original_source/game/src/items.rs.
type Item string

const (
	Empty Item = ""

	// Swords, the progression weapon chain.
	Sword01 Item = "Progressive Sword (1)"
	Sword02 Item = "Progressive Sword (2)"
	Sword03 Item = "Progressive Sword (3)"
	Sword04 Item = "Progressive Sword (4)"

	// Core progression tools.
	Bow            Item = "Bow"
	Boomerang      Item = "Boomerang"
	Hookshot       Item = "Hookshot"
	Hammer         Item = "Hammer"
	Bombs          Item = "Bombs"
	FireRod        Item = "Fire Rod"
	IceRod         Item = "Ice Rod"
	TornadoRod     Item = "Tornado Rod"
	SandRod        Item = "Sand Rod"
	Net            Item = "Net"
	Lamp           Item = "Lamp"
	PegasusBoots   Item = "Pegasus Boots"
	Flippers       Item = "Flippers"
	RaviosBracelet Item = "Ravio's Bracelet"
	Bell           Item = "Bell"
	Pouch          Item = "Pouch"
	HylianShield   Item = "Hylian Shield"
	SmoothGem      Item = "Smooth Gem"
	GreatSpin      Item = "Great Spin"
	BowOfLight     Item = "Bow of Light"
	StaminaScroll  Item = "Stamina Scroll"
	HintGlasses    Item = "Hint Glasses"

	OreYellow Item = "Yellow Ore"
	OreGreen  Item = "Green Ore"
	OreBlue   Item = "Blue Ore"
	OreRed    Item = "Red Ore"

	// Dungeon prizes (spec.md §4.9 step 6 / original pool order step 1).
	PendantOfPower     Item = "Pendant of Power"
	PendantOfWisdom    Item = "Pendant of Wisdom"
	PendantOfCourage01 Item = "Pendant of Courage (1)"
	PendantOfCourage02 Item = "Pendant of Courage (2)"
	SageGulley         Item = "Sage Gulley"
	SageOren           Item = "Sage Oren"
	SageSeres          Item = "Sage Seres"
	SageOsfala         Item = "Sage Osfala"
	SageImpa           Item = "Sage Impa"
	SageIrene          Item = "Sage Irene"
	SageRosso          Item = "Sage Rosso"

	// Dungeon big keys, one per dungeon.
	EasternKeyBig Item = "Eastern Palace Big Key"
	GalesKeyBig   Item = "House of Gales Big Key"
	HeraKeyBig    Item = "Tower of Hera Big Key"
	DarkKeyBig    Item = "Dark Palace Big Key"
	SwampKeyBig   Item = "Swamp Palace Big Key"
	SkullKeyBig   Item = "Skull Woods Big Key"
	ThievesKeyBig Item = "Thieves' Hideout Big Key"
	IceKeyBig     Item = "Ice Ruins Big Key"
	DesertKeyBig  Item = "Desert Palace Big Key"
	TurtleKeyBig  Item = "Turtle Rock Big Key"

	// Dungeon small keys. Only a representative count per dungeon is kept.
	EasternKeySmall01 Item = "Eastern Palace Small Key (1)"
	EasternKeySmall02 Item = "Eastern Palace Small Key (2)"
	GalesKeySmall01   Item = "House of Gales Small Key (1)"
	GalesKeySmall02   Item = "House of Gales Small Key (2)"
	HeraKeySmall01    Item = "Tower of Hera Small Key (1)"
	DarkKeySmall01    Item = "Dark Palace Small Key (1)"
	DarkKeySmall02    Item = "Dark Palace Small Key (2)"
	ThievesKeySmall   Item = "Thieves' Hideout Small Key"

	// Dungeon compasses, one per dungeon.
	EasternCompass Item = "Eastern Palace Compass"
	GalesCompass   Item = "House of Gales Compass"
	HeraCompass    Item = "Tower of Hera Compass"
	DarkCompass    Item = "Dark Palace Compass"
	SwampCompass   Item = "Swamp Palace Compass"
	SkullCompass   Item = "Skull Woods Compass"
	ThievesCompass Item = "Thieves' Hideout Compass"
	IceCompass     Item = "Ice Ruins Compass"
	DesertCompass  Item = "Desert Palace Compass"
	TurtleCompass  Item = "Turtle Rock Compass"

	// Maiamai: a curated subset standing in for the full set of 100.
	Maiamai001 Item = "Maiamai (1)"
	Maiamai002 Item = "Maiamai (2)"
	Maiamai003 Item = "Maiamai (3)"
	Maiamai004 Item = "Maiamai (4)"
	Maiamai005 Item = "Maiamai (5)"

	// Junk: rupees, monster drops, hearts.
	RupeeGreen       Item = "Green Rupee"
	RupeeBlue        Item = "Blue Rupee"
	RupeeRed         Item = "Red Rupee"
	RupeePurple      Item = "Purple Rupee"
	RupeeSilver      Item = "Silver Rupee"
	RupeeGold        Item = "Gold Rupee"
	MonsterTail      Item = "Monster Tail"
	MonsterHorn      Item = "Monster Horn"
	MonsterGuts      Item = "Monster Guts"
	HeartPiece       Item = "Heart Piece"
	HeartContainer   Item = "Heart Container"
	Shield           Item = "Shield"
	ScootFruit       Item = "Scoot Fruit"
	FoulFruit        Item = "Foul Fruit"
	GoldBee          Item = "Gold Bee"
	LetterInABottle  Item = "Letter in a Bottle"
	PremiumMilk      Item = "Premium Milk"
)

// Category is the placement partition an item belongs to; the assumed-fill
// draw order in spec.md §4.9 step 1 iterates these in this exact sequence.
type Category int

const (
	// CategoryUnspecified is the zero value, deliberately not one of the
	// placement categories below: a Check left with a zero-value Category
	// must never be mistaken for a dungeon-prize-eligible check.
	CategoryUnspecified Category = iota
	CategoryDungeonPrize
	CategoryBigKey
	CategorySmallKey
	CategoryCompass
	CategoryProgression
	CategoryOre
	CategoryMaiamai
	CategoryRupee
	CategoryJunk
)

// Definition carries an item's placement metadata: its category, and for
// dungeon-scoped items (keys, compasses, prizes) which dungeon it belongs to.
type Definition struct {
	Item     Item
	Category Category
	Dungeon  string
}

// Catalog is the full set of known item definitions, declared in
// spec.md §4.9 step 1's partition order (prizes, big keys, small keys,
// compasses, other progression), matching shuffle_order_progression_pools
// in original_source/randomizer/src/item_pools.rs.
var Catalog = []Definition{
	{PendantOfPower, CategoryDungeonPrize, "Tower of Hera"},
	{PendantOfWisdom, CategoryDungeonPrize, "House of Gales"},
	{PendantOfCourage01, CategoryDungeonPrize, "Eastern Palace"},
	{PendantOfCourage02, CategoryDungeonPrize, "Hyrule Castle"},
	{SageGulley, CategoryDungeonPrize, "Dark Palace"},
	{SageOren, CategoryDungeonPrize, "Swamp Palace"},
	{SageSeres, CategoryDungeonPrize, "Skull Woods"},
	{SageOsfala, CategoryDungeonPrize, "Thieves' Hideout"},
	{SageImpa, CategoryDungeonPrize, "Turtle Rock"},
	{SageIrene, CategoryDungeonPrize, "Desert Palace"},
	{SageRosso, CategoryDungeonPrize, "Ice Ruins"},

	{EasternKeyBig, CategoryBigKey, "Eastern Palace"},
	{GalesKeyBig, CategoryBigKey, "House of Gales"},
	{HeraKeyBig, CategoryBigKey, "Tower of Hera"},
	{DarkKeyBig, CategoryBigKey, "Dark Palace"},
	{SwampKeyBig, CategoryBigKey, "Swamp Palace"},
	{SkullKeyBig, CategoryBigKey, "Skull Woods"},
	{ThievesKeyBig, CategoryBigKey, "Thieves' Hideout"},
	{IceKeyBig, CategoryBigKey, "Ice Ruins"},
	{DesertKeyBig, CategoryBigKey, "Desert Palace"},
	{TurtleKeyBig, CategoryBigKey, "Turtle Rock"},

	{EasternKeySmall01, CategorySmallKey, "Eastern Palace"},
	{EasternKeySmall02, CategorySmallKey, "Eastern Palace"},
	{GalesKeySmall01, CategorySmallKey, "House of Gales"},
	{GalesKeySmall02, CategorySmallKey, "House of Gales"},
	{HeraKeySmall01, CategorySmallKey, "Tower of Hera"},
	{DarkKeySmall01, CategorySmallKey, "Dark Palace"},
	{DarkKeySmall02, CategorySmallKey, "Dark Palace"},
	{ThievesKeySmall, CategorySmallKey, "Thieves' Hideout"},

	{EasternCompass, CategoryCompass, "Eastern Palace"},
	{GalesCompass, CategoryCompass, "House of Gales"},
	{HeraCompass, CategoryCompass, "Tower of Hera"},
	{DarkCompass, CategoryCompass, "Dark Palace"},
	{SwampCompass, CategoryCompass, "Swamp Palace"},
	{SkullCompass, CategoryCompass, "Skull Woods"},
	{ThievesCompass, CategoryCompass, "Thieves' Hideout"},
	{IceCompass, CategoryCompass, "Ice Ruins"},
	{DesertCompass, CategoryCompass, "Desert Palace"},
	{TurtleCompass, CategoryCompass, "Turtle Rock"},

	{GreatSpin, CategoryProgression, ""},
	{Lamp, CategoryProgression, ""},
	{Bow, CategoryProgression, ""},
	{Boomerang, CategoryProgression, ""},
	{Hookshot, CategoryProgression, ""},
	{Hammer, CategoryProgression, ""},
	{Bombs, CategoryProgression, ""},
	{FireRod, CategoryProgression, ""},
	{IceRod, CategoryProgression, ""},
	{TornadoRod, CategoryProgression, ""},
	{SandRod, CategoryProgression, ""},
	{Net, CategoryProgression, ""},
	{HintGlasses, CategoryProgression, ""},
	{RaviosBracelet, CategoryProgression, ""},
	{Bell, CategoryProgression, ""},
	{StaminaScroll, CategoryProgression, ""},
	{BowOfLight, CategoryProgression, ""},
	{PegasusBoots, CategoryProgression, ""},
	{Flippers, CategoryProgression, ""},
	{HylianShield, CategoryProgression, ""},
	{SmoothGem, CategoryProgression, ""},
	{Pouch, CategoryProgression, ""},
	{OreYellow, CategoryOre, ""},
	{OreGreen, CategoryOre, ""},
	{OreBlue, CategoryOre, ""},
	{OreRed, CategoryOre, ""},
	{Sword01, CategoryProgression, ""},
	{Sword02, CategoryProgression, ""},
	{Sword03, CategoryProgression, ""},
	{Sword04, CategoryProgression, ""},

	{Maiamai001, CategoryMaiamai, ""},
	{Maiamai002, CategoryMaiamai, ""},
	{Maiamai003, CategoryMaiamai, ""},
	{Maiamai004, CategoryMaiamai, ""},
	{Maiamai005, CategoryMaiamai, ""},

	{RupeeGold, CategoryRupee, ""},
	{RupeeSilver, CategoryRupee, ""},
	{RupeePurple, CategoryRupee, ""},

	{RupeeGreen, CategoryJunk, ""},
	{RupeeBlue, CategoryJunk, ""},
	{RupeeRed, CategoryJunk, ""},
	{MonsterTail, CategoryJunk, ""},
	{MonsterHorn, CategoryJunk, ""},
	{MonsterGuts, CategoryJunk, ""},
	{HeartPiece, CategoryJunk, ""},
	{HeartContainer, CategoryJunk, ""},
	{Shield, CategoryJunk, ""},
	{ScootFruit, CategoryJunk, ""},
	{FoulFruit, CategoryJunk, ""},
	{GoldBee, CategoryJunk, ""},
}

// prizeEventFlag maps a dungeon-prize item to the event flag that marks it
// obtained; maps and NPCs elsewhere key off this flag to learn which prize
// ended up in which dungeon. Grounded on prize_flag in
// original_source/randomizer/src/patch/util.rs.
var prizeEventFlag = map[Item]uint16{
	PendantOfPower:     372,
	PendantOfWisdom:    342,
	PendantOfCourage01: 251,
	PendantOfCourage02: 251,
	SageGulley:         536,
	SageOren:           556,
	SageSeres:          576,
	SageOsfala:         596,
	SageRosso:          616,
	SageIrene:          636,
	SageImpa:           656,
}

// PrizeEventFlag returns the event flag an obtained dungeon prize sets, if
// it is one.
func PrizeEventFlag(it Item) (uint16, bool) {
	f, ok := prizeEventFlag[it]
	return f, ok
}

// IsSage reports whether the prize is one of the seven Sage portraits,
// which gate map icons differently from the three pendant halves (spec.md
// §4.10's dungeon-prize map patching; grounded on is_sage in
// original_source/randomizer/src/patch/util.rs).
func IsSage(it Item) bool {
	switch it {
	case SageGulley, SageOren, SageSeres, SageOsfala, SageImpa, SageIrene, SageRosso:
		return true
	default:
		return false
	}
}

// IsOre reports whether it is one of the four colored ores, which assumed
// fill places in same-pair boss-reward slots (spec.md §4.9 step 2).
func IsOre(it Item) bool {
	switch it {
	case OreYellow, OreGreen, OreBlue, OreRed:
		return true
	default:
		return false
	}
}

var definitionByItem = func() map[Item]Definition {
	m := make(map[Item]Definition, len(Catalog))
	for _, d := range Catalog {
		m[d.Item] = d
	}
	return m
}()

// Lookup returns an item's Definition, if known.
func Lookup(it Item) (Definition, bool) {
	d, ok := definitionByItem[it]
	return d, ok
}
