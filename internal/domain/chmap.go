package domain

import (
	"fmt"
	"slices"
)

// The map's stations, routes and tickets. Their order is shared by both ends of a
// network game, so entries are only ever appended.

const (
	stBAD = iota
	stBAL
	stBEL
	stBER
	stBRI
	stBRU
	stCOI
	stDAV
	stDEL
	stFRI
	stGEN
	stINT
	stKRE
	stLAU
	stLCF
	stLOC
	stLUC
	stLUG
	stMAR
	stNEU
	stOLT
	stPFA
	stSAR
	stSCE
	stSCZ
	stSIO
	stSOL
	stSTG
	stVAD
	stWAS
	stWIN
	stYVE
	stZOU
	stZUR
	stDE1
	stDE2
	stDE3
	stDE4
	stDE5
	stAT1
	stAT2
	stAT3
	stIT1
	stIT2
	stIT3
	stIT4
	stIT5
	stFR1
	stFR2
	stFR3
	stFR4
	stationCount
)

var stationNames = [stationCount]string{
	stBAD: "Baden", stBAL: "Basel", stBEL: "Bellinzona", stBER: "Bern", stBRI: "Brig",
	stBRU: "Brusio", stCOI: "Chur", stDAV: "Davos", stDEL: "Delémont", stFRI: "Fribourg",
	stGEN: "Geneva", stINT: "Interlaken", stKRE: "Kreuzlingen", stLAU: "Lausanne",
	stLCF: "La Chaux-de-Fonds", stLOC: "Locarno", stLUC: "Lucerne", stLUG: "Lugano",
	stMAR: "Martigny", stNEU: "Neuchâtel", stOLT: "Olten", stPFA: "Pfäffikon",
	stSAR: "Sargans", stSCE: "Schaffhausen", stSCZ: "Schwyz", stSIO: "Sion",
	stSOL: "Solothurn", stSTG: "St. Gallen", stVAD: "Vaduz", stWAS: "Wassen",
	stWIN: "Winterthur", stYVE: "Yverdon", stZOU: "Zug", stZUR: "Zurich",
	stDE1: "Germany", stDE2: "Germany", stDE3: "Germany", stDE4: "Germany", stDE5: "Germany",
	stAT1: "Austria", stAT2: "Austria", stAT3: "Austria",
	stIT1: "Italy", stIT2: "Italy", stIT3: "Italy", stIT4: "Italy", stIT5: "Italy",
	stFR1: "France", stFR2: "France", stFR3: "France", stFR4: "France",
}

type routeDef struct {
	id     string
	s1, s2 int
	length int
	level  Level
	color  Color
}

var routeDefs = []routeDef{
	{"AT1_STG_1", stAT1, stSTG, 4, Tunnel, NoColor},
	{"AT2_VAD_1", stAT2, stVAD, 1, Tunnel, ColorRed},
	{"BAD_BAL_1", stBAD, stBAL, 3, Tunnel, ColorRed},
	{"BAD_OLT_1", stBAD, stOLT, 2, Surface, ColorViolet},
	{"BAD_ZUR_1", stBAD, stZUR, 1, Surface, ColorYellow},
	{"BAL_DE1_1", stBAL, stDE1, 1, Tunnel, ColorBlue},
	{"BAL_DEL_1", stBAL, stDEL, 2, Tunnel, ColorYellow},
	{"BAL_OLT_1", stBAL, stOLT, 2, Tunnel, ColorOrange},
	{"BEL_LOC_1", stBEL, stLOC, 1, Tunnel, ColorBlack},
	{"BEL_LUG_1", stBEL, stLUG, 1, Tunnel, ColorRed},
	{"BEL_LUG_2", stBEL, stLUG, 1, Tunnel, ColorYellow},
	{"BEL_WAS_1", stBEL, stWAS, 4, Tunnel, NoColor},
	{"BEL_WAS_2", stBEL, stWAS, 4, Tunnel, NoColor},
	{"BER_FRI_1", stBER, stFRI, 1, Surface, ColorOrange},
	{"BER_FRI_2", stBER, stFRI, 1, Surface, ColorYellow},
	{"BER_INT_1", stBER, stINT, 3, Surface, ColorBlue},
	{"BER_LUC_1", stBER, stLUC, 4, Surface, NoColor},
	{"BER_LUC_2", stBER, stLUC, 4, Surface, NoColor},
	{"BER_NEU_1", stBER, stNEU, 2, Surface, ColorRed},
	{"BER_SOL_1", stBER, stSOL, 2, Surface, ColorBlack},
	{"BRI_INT_1", stBRI, stINT, 2, Tunnel, ColorWhite},
	{"BRI_IT5_1", stBRI, stIT5, 3, Tunnel, ColorGreen},
	{"BRI_LOC_1", stBRI, stLOC, 6, Tunnel, NoColor},
	{"BRI_SIO_1", stBRI, stSIO, 3, Tunnel, ColorBlack},
	{"BRI_WAS_1", stBRI, stWAS, 4, Tunnel, ColorRed},
	{"BRU_COI_1", stBRU, stCOI, 5, Tunnel, NoColor},
	{"BRU_DAV_1", stBRU, stDAV, 4, Tunnel, ColorBlue},
	{"BRU_IT2_1", stBRU, stIT2, 2, Tunnel, ColorGreen},
	{"COI_DAV_1", stCOI, stDAV, 2, Tunnel, ColorViolet},
	{"COI_SAR_1", stCOI, stSAR, 1, Tunnel, ColorWhite},
	{"COI_WAS_1", stCOI, stWAS, 5, Tunnel, NoColor},
	{"DAV_AT3_1", stDAV, stAT3, 3, Tunnel, NoColor},
	{"DAV_IT1_1", stDAV, stIT1, 3, Tunnel, NoColor},
	{"DAV_SAR_1", stDAV, stSAR, 3, Tunnel, ColorBlack},
	{"DE2_SCE_1", stDE2, stSCE, 1, Surface, ColorYellow},
	{"DE3_KRE_1", stDE3, stKRE, 1, Surface, ColorOrange},
	{"DE4_KRE_1", stDE4, stKRE, 1, Surface, ColorWhite},
	{"DE5_STG_1", stDE5, stSTG, 2, Surface, NoColor},
	{"DEL_FR4_1", stDEL, stFR4, 2, Tunnel, ColorBlack},
	{"DEL_LCF_1", stDEL, stLCF, 3, Tunnel, ColorWhite},
	{"DEL_SOL_1", stDEL, stSOL, 1, Tunnel, ColorViolet},
	{"FR1_MAR_1", stFR1, stMAR, 2, Tunnel, NoColor},
	{"FR2_GEN_1", stFR2, stGEN, 1, Surface, ColorYellow},
	{"FR3_LCF_1", stFR3, stLCF, 2, Tunnel, ColorGreen},
	{"FRI_LAU_1", stFRI, stLAU, 3, Surface, ColorRed},
	{"FRI_LAU_2", stFRI, stLAU, 3, Surface, ColorViolet},
	{"GEN_LAU_1", stGEN, stLAU, 4, Surface, ColorBlue},
	{"GEN_LAU_2", stGEN, stLAU, 4, Surface, ColorWhite},
	{"GEN_YVE_1", stGEN, stYVE, 6, Surface, NoColor},
	{"INT_LUC_1", stINT, stLUC, 4, Surface, ColorViolet},
	{"IT3_LUG_1", stIT3, stLUG, 2, Tunnel, ColorWhite},
	{"IT4_LOC_1", stIT4, stLOC, 2, Tunnel, ColorOrange},
	{"KRE_SCE_1", stKRE, stSCE, 3, Tunnel, ColorViolet},
	{"KRE_STG_1", stKRE, stSTG, 1, Surface, ColorGreen},
	{"KRE_WIN_1", stKRE, stWIN, 2, Surface, ColorYellow},
	{"LAU_MAR_1", stLAU, stMAR, 4, Tunnel, ColorOrange},
	{"LAU_NEU_1", stLAU, stNEU, 4, Surface, NoColor},
	{"LCF_NEU_1", stLCF, stNEU, 1, Tunnel, ColorOrange},
	{"LCF_YVE_1", stLCF, stYVE, 3, Tunnel, ColorYellow},
	{"LOC_LUG_1", stLOC, stLUG, 1, Tunnel, ColorViolet},
	{"LUC_OLT_1", stLUC, stOLT, 3, Surface, ColorGreen},
	{"LUC_SCZ_1", stLUC, stSCZ, 1, Surface, ColorBlue},
	{"LUC_ZOU_1", stLUC, stZOU, 1, Surface, ColorOrange},
	{"LUC_ZOU_2", stLUC, stZOU, 1, Surface, ColorYellow},
	{"MAR_SIO_1", stMAR, stSIO, 2, Tunnel, ColorGreen},
	{"NEU_SOL_1", stNEU, stSOL, 4, Surface, ColorGreen},
	{"NEU_YVE_1", stNEU, stYVE, 2, Surface, ColorBlack},
	{"OLT_SOL_1", stOLT, stSOL, 1, Surface, ColorBlue},
	{"OLT_ZUR_1", stOLT, stZUR, 3, Surface, ColorWhite},
	{"PFA_SAR_1", stPFA, stSAR, 3, Tunnel, ColorYellow},
	{"PFA_ZUR_1", stPFA, stZUR, 2, Surface, ColorBlue},
	{"SAR_VAD_1", stSAR, stVAD, 1, Tunnel, ColorOrange},
	{"SCE_WIN_1", stSCE, stWIN, 1, Surface, ColorBlack},
	{"SCE_ZUR_1", stSCE, stZUR, 3, Surface, ColorOrange},
	{"SCZ_WAS_1", stSCZ, stWAS, 2, Tunnel, ColorGreen},
	{"SCZ_WAS_2", stSCZ, stWAS, 2, Tunnel, ColorYellow},
	{"SCZ_ZOU_1", stSCZ, stZOU, 1, Surface, ColorBlack},
	{"SCZ_ZOU_2", stSCZ, stZOU, 1, Surface, ColorWhite},
	{"STG_VAD_1", stSTG, stVAD, 2, Tunnel, ColorBlue},
	{"STG_WIN_1", stSTG, stWIN, 3, Surface, ColorRed},
	{"STG_ZUR_1", stSTG, stZUR, 4, Surface, ColorBlack},
	{"WIN_ZUR_1", stWIN, stZUR, 1, Surface, ColorBlue},
	{"WIN_ZUR_2", stWIN, stZUR, 1, Surface, ColorViolet},
	{"ZOU_ZUR_1", stZOU, stZUR, 1, Surface, ColorGreen},
	{"ZOU_ZUR_2", stZOU, stZUR, 1, Surface, ColorRed},
	{"BAL_LUG_S", stBAL, stLUG, 2, Sky, NoColor},
	{"GEN_LUG_S", stGEN, stLUG, 2, Sky, NoColor},
	{"GEN_ZUR_S", stGEN, stZUR, 2, Sky, NoColor},
	{"LUG_ZUR_S", stLUG, stZUR, 1, Sky, NoColor},
}

type tripDef struct {
	to     []int
	points int
}

type ticketDef struct {
	from  []int
	trips []tripDef
}

var (
	germany = []int{stDE1, stDE2, stDE3, stDE4, stDE5}
	austria = []int{stAT1, stAT2, stAT3}
	italy   = []int{stIT1, stIT2, stIT3, stIT4, stIT5}
	france  = []int{stFR1, stFR2, stFR3, stFR4}
)

func cityTicket(from, to, points int) ticketDef {
	return ticketDef{from: []int{from}, trips: []tripDef{{to: []int{to}, points: points}}}
}

func countriesTicket(from []int, de, at, it, fr int) ticketDef {
	t := ticketDef{from: from}
	for _, c := range []struct {
		to     []int
		points int
	}{{germany, de}, {austria, at}, {italy, it}, {france, fr}} {
		if c.points > 0 {
			t.trips = append(t.trips, tripDef{to: c.to, points: c.points})
		}
	}
	return t
}

var ticketDefs = []ticketDef{
	cityTicket(stBAL, stBER, 5),
	cityTicket(stBAL, stBRI, 10),
	cityTicket(stBAL, stSTG, 8),
	cityTicket(stBER, stCOI, 10),
	cityTicket(stBER, stLUG, 12),
	cityTicket(stBER, stSCZ, 5),
	cityTicket(stBER, stZUR, 6),
	cityTicket(stFRI, stLUC, 5),
	cityTicket(stGEN, stBAL, 13),
	cityTicket(stGEN, stBER, 8),
	cityTicket(stGEN, stSIO, 10),
	cityTicket(stGEN, stZUR, 14),
	cityTicket(stINT, stWIN, 7),
	cityTicket(stKRE, stZUR, 3),
	cityTicket(stLAU, stINT, 7),
	cityTicket(stLAU, stLUC, 8),
	cityTicket(stLAU, stSTG, 13),
	cityTicket(stLCF, stBER, 3),
	cityTicket(stLCF, stLUC, 7),
	cityTicket(stLCF, stZUR, 8),
	cityTicket(stLUC, stVAD, 6),
	cityTicket(stLUC, stZUR, 2),
	cityTicket(stLUG, stCOI, 10),
	cityTicket(stLUG, stZUR, 9),
	cityTicket(stNEU, stWIN, 9),
	cityTicket(stOLT, stSCE, 5),
	cityTicket(stSCE, stMAR, 15),
	cityTicket(stSCE, stSIO, 13),
	cityTicket(stSCE, stZUR, 3),
	cityTicket(stSIO, stDAV, 11),
	cityTicket(stSTG, stBRU, 8),
	cityTicket(stYVE, stWIN, 10),
	countriesTicket([]int{stBER}, 6, 11, 8, 5),
	countriesTicket([]int{stCOI}, 6, 3, 5, 12),
	countriesTicket([]int{stLUG}, 12, 13, 2, 12),
	countriesTicket([]int{stZUR}, 3, 7, 11, 10),
	countriesTicket(germany, 0, 5, 13, 5),
	countriesTicket(austria, 5, 0, 8, 14),
	countriesTicket(italy, 13, 8, 0, 11),
	countriesTicket(france, 5, 14, 11, 0),
}

type chMap struct {
	stations []Station
	routes   []Route
	tickets  []Ticket
}

var theMap = mustBuildMap()

func mustBuildMap() chMap {
	var m chMap
	for id, name := range stationNames {
		m.stations = append(m.stations, Station{ID: id, Name: name})
	}
	pick := func(ids []int) []Station {
		out := make([]Station, len(ids))
		for i, id := range ids {
			out[i] = m.stations[id]
		}
		return out
	}
	for _, d := range routeDefs {
		r, err := NewRoute(d.id, m.stations[d.s1], m.stations[d.s2], d.length, d.level, d.color)
		if err != nil {
			panic(fmt.Sprintf("map: %v", err))
		}
		m.routes = append(m.routes, r)
	}
	for _, d := range ticketDefs {
		var trips []Trip
		for _, td := range d.trips {
			all, err := AllTrips(pick(d.from), pick(td.to), td.points)
			if err != nil {
				panic(fmt.Sprintf("map: %v", err))
			}
			trips = append(trips, all...)
		}
		t, err := NewTicket(trips...)
		if err != nil {
			panic(fmt.Sprintf("map: %v", err))
		}
		m.tickets = append(m.tickets, t)
	}
	return m
}

// Stations returns every station, indexed by id.
func Stations() []Station { return slices.Clone(theMap.stations) }

// Routes returns every route of the map.
func Routes() []Route { return slices.Clone(theMap.routes) }

// Tickets returns every ticket of the map.
func Tickets() []Ticket { return slices.Clone(theMap.tickets) }

// AllTicketsBag returns the tickets a game starts with.
func AllTicketsBag() Bag[Ticket] { return NewBag(theMap.tickets...) }
