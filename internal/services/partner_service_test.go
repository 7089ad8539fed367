package services

import (
	"context"
	"errors"
	"sort"
	"testing"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/example/tavola/internal/models"
)

// In-memory PartnerRepository stub

type stubPartnerRepo struct {
	partners map[uuid.UUID]*models.Partner
	failOn   uuid.UUID
	writes   int
}

func newStubPartnerRepo(names ...string) *stubPartnerRepo {
	r := &stubPartnerRepo{partners: make(map[uuid.UUID]*models.Partner)}
	for i, name := range names {
		p := &models.Partner{
			BaseModel:    models.BaseModel{ID: uuid.New()},
			PartnerName:  name,
			LogoURL:      "https://cdn.example.com/" + name + ".png",
			DisplayOrder: i,
		}
		r.partners[p.ID] = p
	}
	return r
}

func (r *stubPartnerRepo) GetAll(context.Context) ([]models.Partner, error) {
	out := make([]models.Partner, 0, len(r.partners))
	for _, p := range r.partners {
		out = append(out, *p)
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].DisplayOrder != out[j].DisplayOrder {
			return out[i].DisplayOrder < out[j].DisplayOrder
		}
		return out[i].PartnerName < out[j].PartnerName
	})
	return out, nil
}

func (r *stubPartnerRepo) GetByID(_ context.Context, id uuid.UUID) (*models.Partner, error) {
	p, ok := r.partners[id]
	if !ok {
		return nil, nil
	}
	cp := *p
	return &cp, nil
}

func (r *stubPartnerRepo) Create(_ context.Context, p *models.Partner) error {
	if p.ID == uuid.Nil {
		p.ID = uuid.New()
	}
	cp := *p
	r.partners[p.ID] = &cp
	return nil
}

func (r *stubPartnerRepo) Update(_ context.Context, id uuid.UUID, patch map[string]interface{}) (*models.Partner, error) {
	p, ok := r.partners[id]
	if !ok {
		return nil, errors.New("record not found")
	}
	if name, ok := patch["partner_name"].(string); ok {
		p.PartnerName = name
	}
	cp := *p
	return &cp, nil
}

func (r *stubPartnerRepo) Delete(_ context.Context, id uuid.UUID) error {
	delete(r.partners, id)
	return nil
}

func (r *stubPartnerRepo) NextDisplayOrder(context.Context) (int, error) {
	next := 0
	for _, p := range r.partners {
		if p.DisplayOrder >= next {
			next = p.DisplayOrder + 1
		}
	}
	return next, nil
}

func (r *stubPartnerRepo) SetDisplayOrder(_ context.Context, id uuid.UUID, order int) error {
	if id == r.failOn {
		return errors.New("write failed")
	}
	p, ok := r.partners[id]
	if !ok {
		return errors.New("record not found")
	}
	p.DisplayOrder = order
	r.writes++
	return nil
}

func names(partners []models.Partner) []string {
	out := make([]string, len(partners))
	for i, p := range partners {
		out[i] = p.PartnerName
	}
	return out
}

func TestReorderMovesItemAndResequences(t *testing.T) {
	repo := newStubPartnerRepo("a", "b", "c", "d", "e")
	svc := NewPartnerService(repo, nil, zerolog.Nop())

	result, err := svc.Reorder(context.Background(), 1, 3)
	require.NoError(t, err)

	assert.Equal(t, []string{"a", "c", "d", "b", "e"}, names(result))
	for i, p := range result {
		assert.Equal(t, i, p.DisplayOrder, "display_order must equal positional index")
	}

	// The persisted state matches what was returned.
	stored, err := repo.GetAll(context.Background())
	require.NoError(t, err)
	assert.Equal(t, names(result), names(stored))
}

func TestReorderToFrontAndBack(t *testing.T) {
	repo := newStubPartnerRepo("a", "b", "c")
	svc := NewPartnerService(repo, nil, zerolog.Nop())

	result, err := svc.Reorder(context.Background(), 2, 0)
	require.NoError(t, err)
	assert.Equal(t, []string{"c", "a", "b"}, names(result))

	result, err = svc.Reorder(context.Background(), 0, 2)
	require.NoError(t, err)
	assert.Equal(t, []string{"a", "b", "c"}, names(result))
}

func TestReorderSkipsUnchangedRows(t *testing.T) {
	repo := newStubPartnerRepo("a", "b", "c", "d")
	svc := NewPartnerService(repo, nil, zerolog.Nop())

	// Moving b to c only touches those two rows; a and d keep their index.
	_, err := svc.Reorder(context.Background(), 1, 2)
	require.NoError(t, err)
	assert.Equal(t, 2, repo.writes)
}

func TestReorderOutOfRange(t *testing.T) {
	repo := newStubPartnerRepo("a", "b")
	svc := NewPartnerService(repo, nil, zerolog.Nop())

	_, err := svc.Reorder(context.Background(), 0, 5)
	assert.ErrorIs(t, err, ErrReorderOutOfRange)
	_, err = svc.Reorder(context.Background(), -1, 0)
	assert.ErrorIs(t, err, ErrReorderOutOfRange)
}

func TestReorderFailureResyncsFromStorage(t *testing.T) {
	repo := newStubPartnerRepo("a", "b", "c", "d")
	svc := NewPartnerService(repo, nil, zerolog.Nop())

	// Find the partner currently named "d"; moving "a" to the end rewrites
	// every row, and failing on "d"'s row leaves a partial reorder applied.
	all, _ := repo.GetAll(context.Background())
	repo.failOn = all[3].ID

	result, err := svc.Reorder(context.Background(), 0, 3)
	require.Error(t, err)
	require.NotNil(t, result, "a failed reorder still returns the stored list")

	stored, _ := repo.GetAll(context.Background())
	assert.Equal(t, names(stored), names(result), "returned list reflects storage after resync")
}

func TestNextDisplayOrder(t *testing.T) {
	svc := NewPartnerService(newStubPartnerRepo(), nil, zerolog.Nop())
	next, err := svc.NextDisplayOrder(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 0, next)

	svc = NewPartnerService(newStubPartnerRepo("a", "b", "c"), nil, zerolog.Nop())
	next, err = svc.NextDisplayOrder(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 3, next)
}
