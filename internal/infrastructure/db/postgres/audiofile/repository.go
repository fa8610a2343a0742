package audiofile

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"audio-vault-api/internal/domain/audiofile"
	"audio-vault-api/internal/domain/user"
	"audio-vault-api/internal/infrastructure/db/postgres"
)

type Repository struct {
	db postgres.DB
}

func NewRepository(db postgres.DB) audiofile.Repository {
	return &Repository{db: db}
}

func scanAudioFile(row pgx.Row, af *AudioFile) error {
	return row.Scan(
		&af.UUID,
		&af.UserID,

		&af.Filename,
		&af.OriginalFilename,
		&af.FilePath,
		&af.ContentType,
		&af.SizeBytes,

		&af.CreatedAt,
		&af.UpdatedAt,
	)
}

func (r *Repository) FetchUserAudioFiles(ctx context.Context, userID user.UUID) (audiofile.AudioFiles, error) {
	rows, err := r.db.Query(ctx, SelectUserAudioFiles, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var afs AudioFiles
	for rows.Next() {
		af := new(AudioFile)
		if err = scanAudioFile(rows, af); err != nil {
			return nil, err
		}
		afs = append(afs, af)
	}
	if err = rows.Err(); err != nil {
		return nil, err
	}

	return fromDBModels(&afs), nil
}

func (r *Repository) FetchAudioFile(ctx context.Context, id uuid.UUID, userID user.UUID) (*audiofile.AudioFile, error) {
	af := new(AudioFile)
	if err := scanAudioFile(r.db.QueryRow(ctx, SelectAudioFile, id, userID), af); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}

	return fromDBModel(af), nil
}

func (r *Repository) CreateAudioFile(ctx context.Context, req *audiofile.AudioFile) (*audiofile.AudioFile, error) {
	af := new(AudioFile)
	if err := scanAudioFile(r.db.QueryRow(ctx, InsertAudioFile,
		req.UserID, req.Filename, req.OriginalFilename, req.FilePath, req.ContentType, req.SizeBytes,
	), af); err != nil {
		return nil, err
	}

	return fromDBModel(af), nil
}

func (r *Repository) DeleteAudioFile(ctx context.Context, id uuid.UUID, userID user.UUID) (bool, error) {
	tag, err := r.db.Exec(ctx, DeleteAudioFileByID, id, userID)
	if err != nil {
		return false, err
	}

	return tag.RowsAffected() > 0, nil
}

func (r *Repository) DeleteUserAudioFiles(ctx context.Context, userID user.UUID) error {
	_, err := r.db.Exec(ctx, DeleteAudioFilesByUser, userID)
	return err
}
