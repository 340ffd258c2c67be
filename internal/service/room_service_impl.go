package service

import (
	"context"
	"errors"

	"github.com/alexanderramin/habitquest/internal/domain"
	"github.com/alexanderramin/habitquest/internal/repository"
)

type roomService struct {
	rooms repository.RoomRepo
}

func NewRoomService(rooms repository.RoomRepo) RoomService {
	return &roomService{rooms: rooms}
}

// Balance returns the user's room. Users who never earned coins get an
// empty room rather than an error.
func (s *roomService) Balance(ctx context.Context, userID string) (*domain.Room, error) {
	if err := requireUser(userID); err != nil {
		return nil, err
	}
	room, err := s.rooms.Get(ctx, userID)
	if errors.Is(err, repository.ErrNotFound) {
		return &domain.Room{UserID: userID}, nil
	}
	return room, err
}

func (s *roomService) History(ctx context.Context, userID string, limit int) ([]domain.LedgerEntry, error) {
	if err := requireUser(userID); err != nil {
		return nil, err
	}
	return s.rooms.History(ctx, userID, limit)
}
