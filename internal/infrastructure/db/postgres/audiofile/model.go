package audiofile

import (
	"time"

	"github.com/google/uuid"
)

type (
	AudioFile struct {
		UUID   uuid.UUID
		UserID uuid.UUID

		Filename         string
		OriginalFilename string
		FilePath         string
		ContentType      string
		SizeBytes        int64

		CreatedAt time.Time
		UpdatedAt time.Time
	}
	AudioFiles []*AudioFile
)
