package audiofile

import (
	"time"

	"github.com/google/uuid"
)

type (
	AudioFile struct {
		UUID             uuid.UUID `json:"uuid"`
		Filename         string    `json:"filename"`
		OriginalFilename string    `json:"original_filename"`
		ContentType      string    `json:"content_type"`
		SizeBytes        int64     `json:"size_bytes"`
		CreatedAt        time.Time `json:"created_at"`
	}
	AudioFiles   []AudioFile
	ResponseData struct {
		Data AudioFiles `json:"data"`
	}
)
