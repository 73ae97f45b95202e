package game

import "slices"

// DropResolver turns reported drops into hits or misses on a Session.
//
// A drop is only meaningful while the session is in a round. Everything else
// is ignored without mutating state:
//   - the session is resolving, won, lost or not started (duplicate drops after a
//     hit land here),
//   - the zone is not registered,
//   - the item is not part of the current round (left over from an earlier round).
type DropResolver struct {
	session *Session
	zones   map[ZoneID]struct{}
}

// NewDropResolver registers zones for s. With no zones, DefaultZone is used.
func NewDropResolver(s *Session, zones ...ZoneID) *DropResolver {
	if len(zones) == 0 {
		zones = []ZoneID{DefaultZone}
	}
	r := &DropResolver{session: s, zones: make(map[ZoneID]struct{}, len(zones))}
	for _, z := range zones {
		r.zones[z] = struct{}{}
	}
	return r
}

// Resolve applies d and reports what happened.
func (r *DropResolver) Resolve(d Drop) Outcome {
	s := r.session
	if s.state != StateInRound {
		return r.ignore(d, "session not in round")
	}
	if _, ok := r.zones[d.Zone]; !ok {
		return r.ignore(d, "unknown zone")
	}
	idx, ok := s.byID[d.Item]
	if !ok {
		return r.ignore(d, "item not in current round")
	}

	item := &s.items[idx]
	if !item.IsTarget {
		s.listener.ItemReturned(item.ID)
		s.recordMiss()
		return OutcomeMiss
	}

	item.Snapped, item.Disabled = true, true
	s.listener.ItemSnapped(item.ID)

	others := make([]ItemID, 0, len(s.items)-1)
	for i := range s.items {
		if i == idx {
			continue
		}
		s.items[i].Disabled = true
		others = append(others, s.items[i].ID)
	}
	s.listener.ItemsDisabled(others)

	s.recordHit()
	return OutcomeHit
}

func (r *DropResolver) ignore(d Drop, reason string) Outcome {
	r.session.log.Debug().
		Str("item", string(d.Item)).
		Str("zone", string(d.Zone)).
		Str("state", string(r.session.state)).
		Str("reason", reason).
		Msg("drop ignored")
	return OutcomeIgnored
}

// Zones returns the registered drop zones.
func (r *DropResolver) Zones() []ZoneID {
	out := make([]ZoneID, 0, len(r.zones))
	for z := range r.zones {
		out = append(out, z)
	}
	slices.Sort(out)
	return out
}
