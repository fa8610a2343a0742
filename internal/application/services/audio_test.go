package services

import (
	"bytes"
	"context"
	"errors"
	"io"
	"mime/multipart"
	"net/textproto"
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"audio-vault-api/config"
	domain "audio-vault-api/internal/domain/audiofile"
	"audio-vault-api/internal/domain/user"
	"audio-vault-api/internal/infrastructure/storage"
)

type FakeAudioFileRepo struct {
	FetchUserAudioFilesFunc  func(ctx context.Context, userID user.UUID) (domain.AudioFiles, error)
	FetchAudioFileFunc       func(ctx context.Context, id uuid.UUID, userID user.UUID) (*domain.AudioFile, error)
	CreateAudioFileFunc      func(ctx context.Context, req *domain.AudioFile) (*domain.AudioFile, error)
	DeleteAudioFileFunc      func(ctx context.Context, id uuid.UUID, userID user.UUID) (bool, error)
	DeleteUserAudioFilesFunc func(ctx context.Context, userID user.UUID) error
}

func (f *FakeAudioFileRepo) FetchUserAudioFiles(ctx context.Context, userID user.UUID) (domain.AudioFiles, error) {
	return f.FetchUserAudioFilesFunc(ctx, userID)
}
func (f *FakeAudioFileRepo) FetchAudioFile(ctx context.Context, id uuid.UUID, userID user.UUID) (*domain.AudioFile, error) {
	return f.FetchAudioFileFunc(ctx, id, userID)
}
func (f *FakeAudioFileRepo) CreateAudioFile(ctx context.Context, req *domain.AudioFile) (*domain.AudioFile, error) {
	return f.CreateAudioFileFunc(ctx, req)
}
func (f *FakeAudioFileRepo) DeleteAudioFile(ctx context.Context, id uuid.UUID, userID user.UUID) (bool, error) {
	return f.DeleteAudioFileFunc(ctx, id, userID)
}
func (f *FakeAudioFileRepo) DeleteUserAudioFiles(ctx context.Context, userID user.UUID) error {
	return f.DeleteUserAudioFilesFunc(ctx, userID)
}

type FakeStore struct {
	SaveCalls  int
	SavedName  string
	RemoveErr  error
	Removed    []string
	StatErr    error
	SaveResult int64
	SaveErr    error
}

func (f *FakeStore) Save(name string, r io.Reader, max int64) (int64, error) {
	f.SaveCalls++
	f.SavedName = name
	if f.SaveErr != nil {
		return 0, f.SaveErr
	}
	n, _ := io.Copy(io.Discard, r)
	if f.SaveResult != 0 {
		return f.SaveResult, nil
	}
	return n, nil
}
func (f *FakeStore) Path(name string) string { return "static/audio_files/" + name }
func (f *FakeStore) Stat(name string) error  { return f.StatErr }
func (f *FakeStore) Remove(name string) error {
	f.Removed = append(f.Removed, name)
	return f.RemoveErr
}

func testCounter() *prometheus.CounterVec {
	return prometheus.NewCounterVec(prometheus.CounterOpts{Name: "test_counters"}, []string{"result"})
}

func audioCfg() config.Audio {
	return config.Audio{
		StorageDir:   "static/audio_files",
		MaxFileSize:  10 << 20,
		AllowedTypes: []string{"audio/mpeg", "audio/wav"},
	}
}

func makeFileHeader(t *testing.T, filename, contentType string, size int) *multipart.FileHeader {
	t.Helper()

	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)
	h := make(textproto.MIMEHeader)
	h.Set("Content-Disposition", `form-data; name="file"; filename="`+filename+`"`)
	h.Set("Content-Type", contentType)
	part, err := w.CreatePart(h)
	require.NoError(t, err)
	_, err = part.Write(bytes.Repeat([]byte("a"), size))
	require.NoError(t, err)
	require.NoError(t, w.Close())

	reader := multipart.NewReader(&buf, w.Boundary())
	form, err := reader.ReadForm(int64(size) + 1<<20)
	require.NoError(t, err)
	t.Cleanup(func() { _ = form.RemoveAll() })

	fhs := form.File["file"]
	require.Len(t, fhs, 1)
	return fhs[0]
}

func newAudioService(repo *FakeAudioFileRepo, store *FakeStore) *AudioFileService {
	return NewAudioFileService(zap.NewNop(), audioCfg(), store, repo, nil, testCounter()).(*AudioFileService)
}

func TestUpload_Success(t *testing.T) {
	owner := uuid.New()
	store := &FakeStore{}
	repo := &FakeAudioFileRepo{
		CreateAudioFileFunc: func(ctx context.Context, req *domain.AudioFile) (*domain.AudioFile, error) {
			out := *req
			out.UUID = uuid.New()
			return &out, nil
		},
	}
	svc := newAudioService(repo, store)

	fh := makeFileHeader(t, "My Song.mp3", "audio/mpeg", 5<<20)

	af, err := svc.Upload(context.Background(), owner, fh)
	require.NoError(t, err)
	require.NotNil(t, af)

	assert.Equal(t, owner, af.UserID)
	assert.Equal(t, "my-song.mp3", af.OriginalFilename)
	assert.NotEqual(t, "My Song.mp3", af.Filename, "stored name must be generated")
	assert.True(t, strings.HasSuffix(af.Filename, ".mp3"))
	assert.Equal(t, int64(5<<20), af.SizeBytes)
	assert.Equal(t, 1, store.SaveCalls)
}

func TestUpload_RejectsUnsupportedType(t *testing.T) {
	store := &FakeStore{}
	svc := newAudioService(&FakeAudioFileRepo{}, store)

	fh := makeFileHeader(t, "doc.pdf", "application/pdf", 100)

	_, err := svc.Upload(context.Background(), uuid.New(), fh)
	require.ErrorIs(t, err, ErrUnsupportedMediaType)
	assert.Zero(t, store.SaveCalls, "nothing may touch disk")
}

func TestUpload_RejectsOversizeBeforePersisting(t *testing.T) {
	store := &FakeStore{}
	svc := newAudioService(&FakeAudioFileRepo{}, store)

	fh := makeFileHeader(t, "big.mp3", "audio/mpeg", 64)
	fh.Size = 11 << 20 // declared size over the 10MB cap

	_, err := svc.Upload(context.Background(), uuid.New(), fh)
	require.ErrorIs(t, err, ErrFileTooLarge)
	assert.Zero(t, store.SaveCalls, "oversize must be rejected before any disk write")
}

func TestUpload_StreamCapBackstop(t *testing.T) {
	store := &FakeStore{SaveErr: storage.ErrTooLarge}
	svc := newAudioService(&FakeAudioFileRepo{}, store)

	fh := makeFileHeader(t, "sneaky.mp3", "audio/mpeg", 64)

	_, err := svc.Upload(context.Background(), uuid.New(), fh)
	require.ErrorIs(t, err, ErrFileTooLarge)
}

func TestUpload_RemovesBytesWhenInsertFails(t *testing.T) {
	store := &FakeStore{}
	repo := &FakeAudioFileRepo{
		CreateAudioFileFunc: func(ctx context.Context, req *domain.AudioFile) (*domain.AudioFile, error) {
			return nil, errors.New("insert failed")
		},
	}
	svc := newAudioService(repo, store)

	fh := makeFileHeader(t, "a.mp3", "audio/mpeg", 10)

	_, err := svc.Upload(context.Background(), uuid.New(), fh)
	require.Error(t, err)
	require.Len(t, store.Removed, 1)
	assert.Equal(t, store.SavedName, store.Removed[0])
}

func TestDownload_GoneWhenBytesMissing(t *testing.T) {
	fileID := uuid.New()
	owner := uuid.New()
	store := &FakeStore{StatErr: storage.ErrMissing}
	repo := &FakeAudioFileRepo{
		FetchAudioFileFunc: func(ctx context.Context, id uuid.UUID, userID user.UUID) (*domain.AudioFile, error) {
			return &domain.AudioFile{UUID: fileID, UserID: owner, Filename: "x.mp3"}, nil
		},
	}
	svc := newAudioService(repo, store)

	_, _, err := svc.Download(context.Background(), fileID, owner)
	require.ErrorIs(t, err, ErrFileGone)
}

func TestDownload_NotFound(t *testing.T) {
	repo := &FakeAudioFileRepo{
		FetchAudioFileFunc: func(ctx context.Context, id uuid.UUID, userID user.UUID) (*domain.AudioFile, error) {
			return nil, nil
		},
	}
	svc := newAudioService(repo, &FakeStore{})

	af, path, err := svc.Download(context.Background(), uuid.New(), uuid.New())
	require.NoError(t, err)
	assert.Nil(t, af)
	assert.Empty(t, path)
}

func TestDelete_DiskFirstThenRow(t *testing.T) {
	fileID := uuid.New()
	owner := uuid.New()
	store := &FakeStore{RemoveErr: errors.New("disk is on fire")}
	rowDeleted := false
	repo := &FakeAudioFileRepo{
		FetchAudioFileFunc: func(ctx context.Context, id uuid.UUID, userID user.UUID) (*domain.AudioFile, error) {
			return &domain.AudioFile{UUID: fileID, UserID: owner, Filename: "x.mp3"}, nil
		},
		DeleteAudioFileFunc: func(ctx context.Context, id uuid.UUID, userID user.UUID) (bool, error) {
			rowDeleted = true
			return true, nil
		},
	}
	svc := newAudioService(repo, store)

	ok, err := svc.Delete(context.Background(), fileID, owner)
	require.NoError(t, err, "disk unlink failure must not block the row delete")
	assert.True(t, ok)
	assert.True(t, rowDeleted)
	require.Len(t, store.Removed, 1)
}

func TestDelete_NotOwned(t *testing.T) {
	repo := &FakeAudioFileRepo{
		FetchAudioFileFunc: func(ctx context.Context, id uuid.UUID, userID user.UUID) (*domain.AudioFile, error) {
			return nil, nil
		},
	}
	svc := newAudioService(repo, &FakeStore{})

	ok, err := svc.Delete(context.Background(), uuid.New(), uuid.New())
	require.NoError(t, err)
	assert.False(t, ok)
}

func Test_sanitizeFileName(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"My Song.mp3", "my-song.mp3"},
		{"", "file"},
		{"..", "file"},
		{"../../etc/passwd", "passwd"},
		{`C:\tracks\song.wav`, "song.wav"},
		{"Música Ágil.MP3", "musica-agil.mp3"},
		{"___", "file"},
		{"noext", "noext"},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, sanitizeFileName(tt.in), "input %q", tt.in)
	}
}
