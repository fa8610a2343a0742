package audiofile

const (
	audioFileColumns = `uuid, user_id, filename, original_filename, file_path, content_type, size_bytes, created_at, updated_at`

	SelectUserAudioFiles = `
		SELECT ` + audioFileColumns + `
		FROM audio_files
		WHERE user_id = $1
		ORDER BY created_at
	`
	SelectAudioFile = `
		SELECT ` + audioFileColumns + `
		FROM audio_files
		WHERE uuid = $1 AND user_id = $2
	`
	InsertAudioFile = `
		INSERT INTO audio_files (user_id, filename, original_filename, file_path, content_type, size_bytes)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING ` + audioFileColumns + `
	`
	DeleteAudioFileByID = `
		DELETE FROM audio_files
		WHERE uuid = $1 AND user_id = $2
	`
	DeleteAudioFilesByUser = `
		DELETE FROM audio_files
		WHERE user_id = $1
	`
)
