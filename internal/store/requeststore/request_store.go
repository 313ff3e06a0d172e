package requeststore

import (
	"sort"
	"sync"
	"time"

	"github.com/pkg/errors"
	"github.com/ykhdr/hash-bruteforce/internal/messages/request"
)

var NotFoundErr = errors.New("not found")

type RequestStore interface {
	Get(id request.Id) (*request.Info, error)
	List() []*request.Info
	Save(req *request.Info)
	Delete(id request.Id) error
	UpdateStatus(id request.Id, status request.Status) error
}

// requestStore keeps request state in memory only; searches are not resumed
// across restarts.
type requestStore struct {
	data map[request.Id]*request.Info
	m    sync.RWMutex
	now  func() time.Time
}

func NewRequestStore() RequestStore {
	return &requestStore{
		data: make(map[request.Id]*request.Info),
		now:  time.Now,
	}
}

func (s *requestStore) Get(id request.Id) (*request.Info, error) {
	s.m.RLock()
	defer s.m.RUnlock()
	req, exists := s.data[id]
	if !exists {
		return nil, NotFoundErr
	}
	return req.Copy(), nil
}

func (s *requestStore) List() []*request.Info {
	s.m.RLock()
	defer s.m.RUnlock()
	result := make([]*request.Info, 0, len(s.data))
	for _, req := range s.data {
		result = append(result, req.Copy())
	}
	sort.Slice(result, func(i, j int) bool {
		return result[i].CreatedAt.Before(result[j].CreatedAt)
	})
	return result
}

func (s *requestStore) Save(req *request.Info) {
	s.m.Lock()
	defer s.m.Unlock()
	c := req.Copy()
	c.UpdatedAt = s.now()
	s.data[req.ID] = c
}

func (s *requestStore) Delete(id request.Id) error {
	s.m.Lock()
	defer s.m.Unlock()
	if _, exists := s.data[id]; !exists {
		return NotFoundErr
	}
	delete(s.data, id)
	return nil
}

func (s *requestStore) UpdateStatus(id request.Id, status request.Status) error {
	s.m.Lock()
	defer s.m.Unlock()
	req, exists := s.data[id]
	if !exists {
		return NotFoundErr
	}
	req.Status = status
	req.UpdatedAt = s.now()
	return nil
}
