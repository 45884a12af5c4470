package movegen

const (
	notFileA = 0xFEFEFEFEFEFEFEFE
	notFileH = 0x7F7F7F7F7F7F7F7F
	notRank1 = 0xFFFFFFFFFFFFFF00
	notRank8 = 0x00FFFFFFFFFFFFFF

	innerFiles = notFileA & notFileH
	innerRanks = notRank1 & notRank8
)

// A captured run can never touch the edge it runs into, so opponent discs
// in a run are restricted to the inner files and/or ranks. This also keeps
// shifted bits from wrapping around to the next row.
// A run holds at most six discs: one from the first step plus five more.
const rayExtensions = 5

type direction struct {
	shift   int
	runMask uint64
}

var directions = [8]direction{
	{-8, innerRanks},              // north
	{8, innerRanks},               // south
	{1, innerFiles},               // east
	{-1, innerFiles},              // west
	{-7, innerFiles & innerRanks}, // north-east
	{-9, innerFiles & innerRanks}, // north-west
	{9, innerFiles & innerRanks},  // south-east
	{7, innerFiles & innerRanks},  // south-west
}

func shift(x uint64, s int) uint64 {
	if s > 0 {
		return x << s
	}
	return x >> -s
}
