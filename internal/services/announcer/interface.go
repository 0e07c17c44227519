package announcer

import "context"

//go:generate mockgen -destination=mocks/mock_service.go -package=mocks github.com/alexvielma/bingove/internal/services/announcer Service

// Service turns record changes into chat-ready announcements
type Service interface {
	// Diff compares two consecutive record snapshots and returns the
	// announcements the change produced
	Diff(ctx context.Context, input *DiffInput) (*DiffOutput, error)

	// GetPresenceMessage returns an announcement for a viewer-count change
	GetPresenceMessage(ctx context.Context, input *GetPresenceMessageInput) (*GetPresenceMessageOutput, error)
}
