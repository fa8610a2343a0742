package audiofile

import (
	"context"

	"github.com/google/uuid"

	"audio-vault-api/internal/domain/user"
)

type Repository interface {
	FetchUserAudioFiles(ctx context.Context, userID user.UUID) (AudioFiles, error)
	// FetchAudioFile is strictly owner scoped: an id owned by another user
	// behaves exactly like an unknown id (nil, nil).
	FetchAudioFile(ctx context.Context, id uuid.UUID, userID user.UUID) (*AudioFile, error)
	CreateAudioFile(ctx context.Context, req *AudioFile) (*AudioFile, error)
	DeleteAudioFile(ctx context.Context, id uuid.UUID, userID user.UUID) (bool, error)
	DeleteUserAudioFiles(ctx context.Context, userID user.UUID) error
}
