// Package noteservice is the only path to the notes table. Every query is
// scoped by owner, so a note belonging to someone else is indistinguishable
// from a note that does not exist.
package noteservice

import (
	"context"
	errs "errors"
	"time"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"gorm.io/gorm"

	"github.com/calebns/notelet/lib/apperr"
	"github.com/calebns/notelet/types"
)

type Service struct {
	db *gorm.DB
}

func New(db *gorm.DB) *Service {
	return &Service{db: db}
}

// Patch carries a partial update; nil fields keep their stored value.
type Patch struct {
	Title   *string
	Body    *string
	Summary *string
}

func (p Patch) isEmpty() bool {
	return p.Title == nil && p.Body == nil && p.Summary == nil
}

// List returns every note owned by owner. Ordering is left to the caller.
func (s *Service) List(ctx context.Context, owner uint) ([]types.Note, error) {
	ret := []types.Note{}
	if err := s.db.WithContext(ctx).Where("owner_id = ?", owner).Find(&ret).Error; err != nil {
		return nil, errors.Wrap(err, "listing notes")
	}
	return ret, nil
}

func (s *Service) Get(ctx context.Context, id string, owner uint) (types.Note, error) {
	var note types.Note
	err := s.db.WithContext(ctx).Where("id = ? AND owner_id = ?", id, owner).First(&note).Error
	if err != nil {
		if errs.Is(err, gorm.ErrRecordNotFound) {
			return types.Note{}, apperr.ErrNotFound
		}
		return types.Note{}, errors.Wrap(err, "getting note")
	}
	return note, nil
}

func (s *Service) Create(ctx context.Context, owner uint, title, body string) (types.Note, error) {
	now := time.Now()
	note := types.Note{
		ID:        uuid.NewString(),
		OwnerID:   owner,
		Title:     title,
		Body:      body,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := s.db.WithContext(ctx).Create(&note).Error; err != nil {
		return types.Note{}, errors.Wrapf(apperr.ErrStoreWrite, "creating note: %v", err)
	}
	return note, nil
}

// Update applies the non-nil fields of patch and bumps UpdatedAt. The write
// is a single owner-scoped UPDATE, so a miss (wrong id or wrong owner)
// surfaces as ErrNotFound.
func (s *Service) Update(ctx context.Context, id string, owner uint, patch Patch) (types.Note, error) {
	if patch.isEmpty() {
		return s.Get(ctx, id, owner)
	}

	updates := map[string]any{"updated_at": time.Now()}
	if patch.Title != nil {
		updates["title"] = *patch.Title
	}
	if patch.Body != nil {
		updates["body"] = *patch.Body
	}
	if patch.Summary != nil {
		updates["summary"] = *patch.Summary
	}

	res := s.db.WithContext(ctx).Model(&types.Note{}).
		Where("id = ? AND owner_id = ?", id, owner).
		Updates(updates)
	if res.Error != nil {
		return types.Note{}, errors.Wrapf(apperr.ErrStoreWrite, "updating note: %v", res.Error)
	}
	if res.RowsAffected == 0 {
		return types.Note{}, apperr.ErrNotFound
	}

	return s.Get(ctx, id, owner)
}

// Delete removes the note for good. Deleting an id that is already gone
// returns ErrNotFound, so a second delete of the same note fails.
func (s *Service) Delete(ctx context.Context, id string, owner uint) error {
	res := s.db.WithContext(ctx).Where("id = ? AND owner_id = ?", id, owner).Delete(&types.Note{})
	if res.Error != nil {
		return errors.Wrapf(apperr.ErrStoreWrite, "deleting note: %v", res.Error)
	}
	if res.RowsAffected == 0 {
		return apperr.ErrNotFound
	}
	return nil
}
