package services

import (
	"context"
	"errors"
	"mime/multipart"
	"path"
	"path/filepath"
	"strings"
	"time"
	"unicode"
	"unicode/utf8"

	"github.com/google/uuid"
	"github.com/prometheus/client_golang/prometheus"
	"go.uber.org/zap"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"

	"audio-vault-api/config"
	"audio-vault-api/internal/application/ports"
	domain "audio-vault-api/internal/domain/audiofile"
	"audio-vault-api/internal/domain/user"
	"audio-vault-api/internal/infrastructure/mq"
	"audio-vault-api/internal/infrastructure/storage"
)

var (
	ErrUnsupportedMediaType = errors.New("unsupported file type")
	ErrFileTooLarge         = errors.New("file too large or empty")
	ErrFileGone             = errors.New("file no longer exists on server")
)

const maxBaseNameLen = 100

type AudioFileService struct {
	logger              *zap.Logger
	cfg                 config.Audio
	store               ports.BlobStore
	audioFileRepository domain.Repository
	mq                  ports.RabbitMQ
	mCounter            *prometheus.CounterVec
}

func NewAudioFileService(
	logger *zap.Logger,
	cfg config.Audio,
	store ports.BlobStore,
	audioFileRepository domain.Repository,
	rbMQ ports.RabbitMQ,
	mCounter *prometheus.CounterVec,
) ports.AudioService {
	return &AudioFileService{
		logger:              logger,
		cfg:                 cfg,
		store:               store,
		audioFileRepository: audioFileRepository,
		mq:                  rbMQ,
		mCounter:            mCounter,
	}
}

func (afs *AudioFileService) FindUserAudioFiles(ctx context.Context, owner user.UUID) (domain.AudioFiles, error) {
	fls, err := afs.audioFileRepository.FetchUserAudioFiles(ctx, owner)
	if err != nil {
		return nil, err
	}

	return fls, nil
}

// Upload validates the declared type and size before any byte lands on disk,
// stores the stream under a generated name (never the user-supplied one) and
// records the metadata row.
func (afs *AudioFileService) Upload(
	ctx context.Context,
	owner user.UUID,
	in *multipart.FileHeader,
) (*domain.AudioFile, error) {
	contentType := in.Header.Get("Content-Type")
	if !afs.typeAllowed(contentType) {
		return nil, ErrUnsupportedMediaType
	}
	if in.Size <= 0 || in.Size > afs.cfg.MaxFileSize {
		return nil, ErrFileTooLarge
	}

	original := sanitizeFileName(in.Filename)
	name := uuid.New().String() + strings.ToLower(filepath.Ext(original))

	f, err := in.Open()
	if err != nil {
		return nil, err
	}
	defer f.Close()

	// the declared size is untrusted, the store re-enforces the cap while
	// streaming
	size, err := afs.store.Save(name, f, afs.cfg.MaxFileSize)
	if err != nil {
		if errors.Is(err, storage.ErrTooLarge) {
			return nil, ErrFileTooLarge
		}
		return nil, err
	}

	out, err := afs.audioFileRepository.CreateAudioFile(ctx, &domain.AudioFile{
		UserID:           owner,
		Filename:         name,
		OriginalFilename: original,
		FilePath:         afs.store.Path(name),
		ContentType:      contentType,
		SizeBytes:        size,
	})
	if err != nil {
		if rmErr := afs.store.Remove(name); rmErr != nil {
			afs.logger.Warn("failed to remove orphaned upload",
				zap.String("filename", name), zap.Error(rmErr))
		}
		return nil, err
	}

	if afs.mq != nil {
		afs.mq.GetInputChan() <- mq.Event{
			Id:      uuid.New(),
			TS:      time.Now(),
			Action:  mq.ActionFileUploaded,
			UserID:  owner.String(),
			Payload: out.UUID.String(),
		}
	}

	afs.mCounter.WithLabelValues("audio_files_uploaded_total").Inc()

	return out, nil
}

func (afs *AudioFileService) Fetch(ctx context.Context, id uuid.UUID, owner user.UUID) (*domain.AudioFile, error) {
	return afs.audioFileRepository.FetchAudioFile(ctx, id, owner)
}

func (afs *AudioFileService) Download(ctx context.Context, id uuid.UUID, owner user.UUID) (*domain.AudioFile, string, error) {
	af, err := afs.audioFileRepository.FetchAudioFile(ctx, id, owner)
	if err != nil {
		return nil, "", err
	}
	if af == nil {
		return nil, "", nil
	}

	if err = afs.store.Stat(af.Filename); err != nil {
		if errors.Is(err, storage.ErrMissing) {
			// row survived, bytes did not: distinct from not-found
			return nil, "", ErrFileGone
		}
		return nil, "", err
	}

	return af, afs.store.Path(af.Filename), nil
}

// Delete unlinks the disk bytes first (failure logged, not fatal) and removes
// the row after.
func (afs *AudioFileService) Delete(ctx context.Context, id uuid.UUID, owner user.UUID) (bool, error) {
	af, err := afs.audioFileRepository.FetchAudioFile(ctx, id, owner)
	if err != nil {
		return false, err
	}
	if af == nil {
		return false, nil
	}

	if err = afs.store.Remove(af.Filename); err != nil {
		afs.logger.Warn("failed to remove audio bytes",
			zap.String("filename", af.Filename), zap.Error(err))
	}

	ok, err := afs.audioFileRepository.DeleteAudioFile(ctx, id, owner)
	if err != nil {
		return false, err
	}

	if ok {
		if afs.mq != nil {
			afs.mq.GetInputChan() <- mq.Event{
				Id:      uuid.New(),
				TS:      time.Now(),
				Action:  mq.ActionFileDeleted,
				UserID:  owner.String(),
				Payload: id.String(),
			}
		}
		afs.mCounter.WithLabelValues("audio_files_deleted_total").Inc()
	}

	return ok, nil
}

func (afs *AudioFileService) typeAllowed(contentType string) bool {
	for _, t := range afs.cfg.AllowedTypes {
		if strings.EqualFold(t, contentType) {
			return true
		}
	}
	return false
}

// sanitizeFileName makes the user-supplied name ASCII-safe for metadata and
// the download attachment header. The stored file never uses this name.
func sanitizeFileName(original string) string {
	if original == "" {
		return "file"
	}

	s := strings.TrimSpace(original)
	s = strings.ReplaceAll(s, "\\", "/")
	s = path.Base(s)

	if s == "." || s == ".." || s == "" {
		return "file"
	}

	t := transform.Chain(norm.NFD, transform.RemoveFunc(isMn), norm.NFC)
	s, _, _ = transform.String(t, s)

	ext := strings.ToLower(path.Ext(s))
	base := strings.TrimSuffix(s, ext)

	var b strings.Builder
	b.Grow(len(base))
	prevDash := false
	for _, r := range base {
		switch {
		case r >= '0' && r <= '9':
			b.WriteRune(r)
			prevDash = false
		case r >= 'a' && r <= 'z':
			b.WriteRune(r)
			prevDash = false
		case r >= 'A' && r <= 'Z':
			b.WriteRune(unicode.ToLower(r))
			prevDash = false
		case r == '-' || r == '_':
			if !prevDash {
				b.WriteRune('-')
				prevDash = true
			}
		case r == '.' || unicode.IsSpace(r):
			if !prevDash {
				b.WriteRune('-')
				prevDash = true
			}
		default:
		}
	}
	base = strings.Trim(b.String(), "-")

	if base == "" {
		base = "file"
	}

	for utf8.RuneCountInString(base)+len(ext) > maxBaseNameLen {
		_, size := utf8.DecodeLastRuneInString(base)
		if size <= 0 || size > len(base) {
			break
		}
		base = base[:len(base)-size]
	}

	return base + ext
}

func isMn(r rune) bool { return unicode.Is(unicode.Mn, r) }
