package service

import (
	"context"
	"strings"

	"arunika.id/aksipoin/internal/model"
	"arunika.id/aksipoin/internal/repository"
	"arunika.id/aksipoin/pkg/apperror"
)

// AdminGate is the authorization capability for moderation operations.
// Admin rights are row membership in the admin set, resolved per request;
// the gate is a precondition and never part of a workflow transaction.
type AdminGate struct {
	userRepo repository.UserRepository
}

func NewAdminGate(userRepo repository.UserRepository) *AdminGate {
	return &AdminGate{userRepo: userRepo}
}

// Authorize resolves the requester: missing identity is Unauthorized,
// a known identity outside the admin set is Forbidden. Returns the admin's
// user record for attribution on notifications.
func (g *AdminGate) Authorize(ctx context.Context, requesterLineID string) (*model.User, error) {
	requesterLineID = strings.TrimSpace(requesterLineID)
	if requesterLineID == "" {
		return nil, apperror.ErrUnauthorized
	}

	isAdmin, err := g.userRepo.IsAdmin(ctx, requesterLineID)
	if err != nil {
		return nil, err
	}
	if !isAdmin {
		return nil, apperror.ErrForbidden
	}

	admin, err := g.userRepo.FindByLineID(ctx, requesterLineID)
	if err != nil {
		// In the admin set but never registered; treat as forbidden
		// rather than leaking store errors.
		return nil, apperror.ErrForbidden
	}

	return admin, nil
}
