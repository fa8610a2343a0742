package services

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/prometheus/client_golang/prometheus"
	"go.uber.org/zap"

	"audio-vault-api/internal/application/ports"
	"audio-vault-api/internal/domain/audiofile"
	domain "audio-vault-api/internal/domain/user"
	"audio-vault-api/internal/infrastructure/mq"
)

type UserService struct {
	logger              *zap.Logger
	userRepository      domain.Repository
	audioFileRepository audiofile.Repository
	store               ports.BlobStore
	mq                  ports.RabbitMQ
	mCounter            *prometheus.CounterVec
}

func NewUserService(
	logger *zap.Logger,
	userRepository domain.Repository,
	audioFileRepository audiofile.Repository,
	store ports.BlobStore,
	rbMQ ports.RabbitMQ,
	mCounter *prometheus.CounterVec,
) ports.UserService {
	return &UserService{
		logger:              logger,
		userRepository:      userRepository,
		audioFileRepository: audioFileRepository,
		store:               store,
		mq:                  rbMQ,
		mCounter:            mCounter,
	}
}

func (us *UserService) FindUserByID(ctx context.Context, uuid domain.UUID) (*domain.User, error) {
	u, err := us.userRepository.FetchUserByID(ctx, uuid)
	if err != nil {
		return nil, err
	}

	return u, nil
}

func (us *UserService) FindUsers(ctx context.Context, page int) (domain.Users, error) {
	users, err := us.userRepository.FetchUsers(ctx, page)
	if err != nil {
		return nil, err
	}

	return users, nil
}

func (us *UserService) UpdateUser(ctx context.Context, u domain.User) (*domain.User, error) {
	uRet, err := us.userRepository.UpdateUser(ctx, u)
	if err != nil {
		return nil, err
	}

	us.mCounter.WithLabelValues("user_updated_total").Inc()

	return uRet, nil
}

// DeleteUser is the administrative hard delete: the user's audio bytes, audio
// rows and the user row all go. Disk failures are logged but do not stop the
// row deletes.
func (us *UserService) DeleteUser(ctx context.Context, userUUID domain.UUID) (bool, error) {
	files, err := us.audioFileRepository.FetchUserAudioFiles(ctx, userUUID)
	if err != nil {
		return false, err
	}
	for _, f := range files {
		if err = us.store.Remove(f.Filename); err != nil {
			us.logger.Warn("failed to remove audio bytes",
				zap.String("filename", f.Filename), zap.Error(err))
		}
	}

	if err = us.audioFileRepository.DeleteUserAudioFiles(ctx, userUUID); err != nil {
		return false, err
	}
	u, err := us.userRepository.DeleteUser(ctx, userUUID)
	if err != nil {
		return false, err
	}
	if u == nil {
		return false, nil
	}

	if us.mq != nil {
		us.mq.GetInputChan() <- mq.Event{
			Id:     uuid.New(),
			TS:     time.Now(),
			Action: mq.ActionUserDeleted,
			UserID: u.UUID.String(),
		}
	}

	us.mCounter.WithLabelValues("user_deleted_total").Inc()

	return true, nil
}
