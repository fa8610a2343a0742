package ports

import (
	"context"
	"mime/multipart"

	"github.com/google/uuid"

	"audio-vault-api/internal/domain/audiofile"
	"audio-vault-api/internal/domain/user"
)

type AudioService interface {
	FindUserAudioFiles(ctx context.Context, owner user.UUID) (audiofile.AudioFiles, error)
	Upload(ctx context.Context, owner user.UUID, in *multipart.FileHeader) (*audiofile.AudioFile, error)
	// Fetch is owner scoped; an id owned by someone else is a plain miss.
	Fetch(ctx context.Context, id uuid.UUID, owner user.UUID) (*audiofile.AudioFile, error)
	// Download additionally checks the bytes are still on disk and returns
	// the path to stream from; a row without bytes is ErrFileGone.
	Download(ctx context.Context, id uuid.UUID, owner user.UUID) (*audiofile.AudioFile, string, error)
	Delete(ctx context.Context, id uuid.UUID, owner user.UUID) (bool, error)
}
