package audiofile

import (
	"time"

	"github.com/google/uuid"

	"audio-vault-api/internal/domain/user"
)

type (
	AudioFile struct {
		UUID   uuid.UUID
		UserID user.UUID

		Filename         string // generated, collision-resistant
		OriginalFilename string
		FilePath         string
		ContentType      string
		SizeBytes        int64

		CreatedAt time.Time
		UpdatedAt time.Time
	}
	AudioFiles []*AudioFile
)
