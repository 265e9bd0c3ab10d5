package engine

import "sort"

// maxRounds caps the search at journeys with four transfers.
const maxRounds = 5

// parentEntry records how a stop's best arrival was reached. The two shapes
// are boarding a trip (ride) and walking a transfer edge.
type parentEntry interface {
	arrivalTime() int
}

type rideParent struct {
	boardStop string
	boardDep  int
	arr       int
	tripID    string
	routeID   string
	trainType string
	operator  string
}

func (p rideParent) arrivalTime() int { return p.arr }

type transferParent struct {
	from     string
	arr      int
	category TransferCategory
}

func (p transferParent) arrivalTime() int { return p.arr }

// searchState is the result of one round-based run: best arrival per stop
// and the predecessor map for reconstruction.
type searchState struct {
	tauBest map[string]int
	parent  map[string]parentEntry

	// originSet holds the seeded stops a journey may depart from without
	// incurring a transfer: the origins plus their same-station
	// neighbours. Inter-city neighbours are reachable but excluded, so a
	// departure from one counts as a transfer.
	originSet map[string]bool
}

// runRounds executes the round-based search from the given origins at
// startTime. stt is the (possibly date-filtered) stop-to-trips index;
// allowed restricts boardable train types when non-nil.
func (s *Snapshot) runRounds(stt map[string][]tripRef, origins []string, startTime int, date string, allowed map[string]bool) *searchState {
	state := &searchState{
		tauBest:   map[string]int{},
		parent:    map[string]parentEntry{},
		originSet: map[string]bool{},
	}

	marked := map[string]bool{}
	for _, origin := range origins {
		state.tauBest[origin] = startTime
		state.originSet[origin] = true
		marked[origin] = true

		for _, edge := range s.transfers[origin] {
			seeded := startTime + edge.category.MinDwell()
			if best, ok := state.tauBest[edge.to]; ok && best <= seeded {
				continue
			}
			state.tauBest[edge.to] = seeded
			state.parent[edge.to] = transferParent{from: origin, arr: seeded, category: edge.category}
			marked[edge.to] = true
			if edge.category != InterCitySameMetro {
				state.originSet[edge.to] = true
			}
		}
	}

	for round := 0; round < maxRounds && len(marked) > 0; round++ {
		// Boarding eligibility is frozen at the round boundary; tauCur
		// collects this round's improvements for the next marked set.
		boardTau := make(map[string]int, len(state.tauBest))
		for stop, t := range state.tauBest {
			boardTau[stop] = t
		}
		tauCur := map[string]int{}

		scanOrder := make([]string, 0, len(marked))
		for stop := range marked {
			scanOrder = append(scanOrder, stop)
		}
		sort.Strings(scanOrder)

		improved := map[string]bool{}
		for _, stop := range scanOrder {
			for _, ref := range stt[stop] {
				s.scanTrip(state, boardTau, tauCur, improved, ref, date, allowed)
			}
		}

		// Transfer relaxation over this round's improvements.
		marked = map[string]bool{}
		relaxOrder := make([]string, 0, len(improved))
		for stop := range improved {
			relaxOrder = append(relaxOrder, stop)
			marked[stop] = true
		}
		sort.Strings(relaxOrder)

		for _, stop := range relaxOrder {
			for _, edge := range s.transfers[stop] {
				t := tauCur[stop] + edge.category.MinDwell()
				if best, ok := state.tauBest[edge.to]; ok && best <= t {
					continue
				}
				state.tauBest[edge.to] = t
				state.parent[edge.to] = transferParent{from: stop, arr: t, category: edge.category}
				marked[edge.to] = true
			}
		}
	}

	return state
}

// scanTrip boards ref.trip at the first stop from ref.idx onward reachable
// by the previous rounds, then relaxes arrivals at every subsequent stop.
func (s *Snapshot) scanTrip(state *searchState, boardTau, tauCur map[string]int, improved map[string]bool, ref tripRef, date string, allowed map[string]bool) {
	trip := ref.trip
	if allowed != nil && !allowed[trip.TrainType] {
		return
	}
	shift := tzShift(trip.Operator, date)

	boardIdx := -1
	for i := ref.idx; i < len(trip.StopTimes); i++ {
		st := trip.StopTimes[i]
		ready, ok := boardTau[st.StopID]
		if ok && ready <= st.DepartureTime+shift {
			boardIdx = i
			break
		}
	}
	if boardIdx < 0 || boardIdx == len(trip.StopTimes)-1 {
		return
	}

	board := trip.StopTimes[boardIdx]
	for i := boardIdx + 1; i < len(trip.StopTimes); i++ {
		st := trip.StopTimes[i]
		arr := st.ArrivalTime + shift
		if best, ok := state.tauBest[st.StopID]; ok && best <= arr {
			continue
		}
		state.tauBest[st.StopID] = arr
		tauCur[st.StopID] = arr
		improved[st.StopID] = true
		state.parent[st.StopID] = rideParent{
			boardStop: board.StopID,
			boardDep:  board.DepartureTime + shift,
			arr:       arr,
			tripID:    trip.TripID,
			routeID:   ref.routeID,
			trainType: trip.TrainType,
			operator:  trip.Operator,
		}
	}
}
