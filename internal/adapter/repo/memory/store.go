package memory

import (
	"maps"
	"sync"

	"campaignmap/internal/domain/campaign"
)

// Store holds all state in process. txMu serializes transactions; mu guards
// the maps for the duration of a single repository call.
type Store struct {
	txMu sync.Mutex
	mu   sync.RWMutex

	campaigns  map[int64]campaign.Campaign
	characters map[int64]campaign.Character
	movements  []campaign.MovementRecord

	nextCampaignID  int64
	nextCharacterID int64
	nextMovementID  int64
}

func NewStore() *Store {
	return &Store{
		campaigns:  make(map[int64]campaign.Campaign),
		characters: make(map[int64]campaign.Character),
	}
}

type storeState struct {
	campaigns  map[int64]campaign.Campaign
	characters map[int64]campaign.Character
	movements  []campaign.MovementRecord
	ids        [3]int64
}

func (s *Store) snapshot() storeState {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return storeState{
		campaigns:  maps.Clone(s.campaigns),
		characters: maps.Clone(s.characters),
		movements:  append([]campaign.MovementRecord(nil), s.movements...),
		ids:        [3]int64{s.nextCampaignID, s.nextCharacterID, s.nextMovementID},
	}
}

func (s *Store) restore(st storeState) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.campaigns = st.campaigns
	s.characters = st.characters
	s.movements = st.movements
	s.nextCampaignID, s.nextCharacterID, s.nextMovementID = st.ids[0], st.ids[1], st.ids[2]
}

func cloneCharacter(c campaign.Character) campaign.Character {
	if c.CampaignID != nil {
		id := *c.CampaignID
		c.CampaignID = &id
	}
	if c.Location != nil {
		p := *c.Location
		c.Location = &p
	}
	return c
}
