package repository

import (
	"sync"

	"github.com/FlorianHaas/TenantDesk/app/models"
	"github.com/FlorianHaas/TenantDesk/internal/pkg/storage"
)

const requestsKey = "tenantdesk:requests"

// requestRepository implements the RequestRepository interface
type requestRepository struct {
	coll *storage.Collection[models.Request]
	mu   sync.Mutex
}

// NewRequestRepository creates a new request repository instance
func NewRequestRepository(kv storage.KV) RequestRepository {
	return &requestRepository{coll: storage.NewCollection[models.Request](kv, requestsKey)}
}

// Create assigns id, forces the NEW state and stamps both timestamps equal.
func (r *requestRepository) Create(request *models.Request) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if request.RequestID == "" {
		request.RequestID = storage.NewID("REQ")
	}
	request.Status = models.REQUEST_STATUS_NEW
	now := storage.Now()
	request.CreatedAt = now
	request.UpdatedAt = now

	if err := request.Validate(); err != nil {
		return err
	}

	requests, err := r.coll.Load()
	if err != nil {
		return err
	}
	requests = append(requests, *request)
	return r.coll.Save(requests)
}

func (r *requestRepository) GetByID(requestID string) (*models.Request, error) {
	requests, err := r.coll.Load()
	if err != nil {
		return nil, err
	}
	for i := range requests {
		if requests[i].RequestID == requestID {
			req := requests[i]
			return &req, nil
		}
	}
	return nil, ErrNotFound
}

// Save overwrites the stored record matching the request id.
func (r *requestRepository) Save(request *models.Request) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	requests, err := r.coll.Load()
	if err != nil {
		return err
	}
	for i := range requests {
		if requests[i].RequestID == request.RequestID {
			requests[i] = *request
			return r.coll.Save(requests)
		}
	}
	return ErrNotFound
}

func (r *requestRepository) List(filter RequestFilter) ([]models.Request, error) {
	requests, err := r.coll.Load()
	if err != nil {
		return nil, err
	}
	matched := make([]models.Request, 0, len(requests))
	for i := range requests {
		if filter.TenantID != "" && requests[i].TenantID != filter.TenantID {
			continue
		}
		if filter.Status != "" && requests[i].Status != filter.Status {
			continue
		}
		matched = append(matched, requests[i])
	}
	return matched, nil
}
