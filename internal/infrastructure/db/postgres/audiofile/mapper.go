package audiofile

import (
	domain "audio-vault-api/internal/domain/audiofile"
)

func fromDBModel(model *AudioFile) *domain.AudioFile {
	var af = &domain.AudioFile{
		UUID:   model.UUID,
		UserID: model.UserID,

		Filename:         model.Filename,
		OriginalFilename: model.OriginalFilename,
		FilePath:         model.FilePath,
		ContentType:      model.ContentType,
		SizeBytes:        model.SizeBytes,

		CreatedAt: model.CreatedAt,
		UpdatedAt: model.UpdatedAt,
	}

	return af
}

func fromDBModels(models *AudioFiles) domain.AudioFiles {
	afs := make(domain.AudioFiles, len(*models))
	for idx, af := range *models {
		afs[idx] = fromDBModel(af)
	}

	return afs
}
