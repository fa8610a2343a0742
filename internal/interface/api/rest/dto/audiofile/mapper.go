package audiofile

import (
	"audio-vault-api/internal/domain/audiofile"
)

// FilePath stays out of responses, disk layout is not part of the API.
func ToResponseAudioFile(afDomain audiofile.AudioFile) AudioFile {
	var af = AudioFile{
		UUID:             afDomain.UUID,
		Filename:         afDomain.Filename,
		OriginalFilename: afDomain.OriginalFilename,
		ContentType:      afDomain.ContentType,
		SizeBytes:        afDomain.SizeBytes,
		CreatedAt:        afDomain.CreatedAt,
	}

	return af
}

func ToResponseAudioFiles(afsDomain audiofile.AudioFiles) AudioFiles {
	afs := make(AudioFiles, len(afsDomain))
	for idx, af := range afsDomain {
		afs[idx] = ToResponseAudioFile(*af)
	}

	return afs
}
