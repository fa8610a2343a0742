package rest

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"audio-vault-api/internal/application/ports"
	"audio-vault-api/internal/application/services"
	"audio-vault-api/internal/interface/api/rest/dto/audiofile"
	"audio-vault-api/internal/interface/api/rest/middleware"
	"audio-vault-api/internal/interface/api/rest/validator"
)

type AudioController struct {
	audioService ports.AudioService
	logger       *zap.Logger
}

func NewAudioController(
	r *gin.Engine,
	audioService ports.AudioService,
	logger *zap.Logger,
	authMW gin.HandlerFunc,
) *AudioController {
	afc := &AudioController{
		audioService: audioService,
		logger:       logger,
	}

	r.POST(RouteAudioUpload, authMW, afc.UploadHandler)
	r.GET(RouteAudioMy, authMW, afc.GetMyAudioFilesHandler)
	r.GET(RouteAudioDownload, authMW, afc.DownloadHandler)
	r.DELETE(RouteAudioFile, authMW, afc.DeleteAudioFileHandler)

	return afc
}

func (afc *AudioController) UploadHandler(c *gin.Context) {
	u := middleware.CurrentUser(c)
	if u == nil {
		c.JSON(
			http.StatusUnauthorized,
			gin.H{"error": "not authenticated"},
		)
		return
	}

	fh, err := c.FormFile("file")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "file is required"})
		return
	}

	af, err := afc.audioService.Upload(c.Request.Context(), u.UUID, fh)
	if err != nil {
		switch {
		case errors.Is(err, services.ErrUnsupportedMediaType):
			c.JSON(http.StatusBadRequest, gin.H{"error": services.ErrUnsupportedMediaType.Error()})
		case errors.Is(err, services.ErrFileTooLarge):
			c.JSON(http.StatusRequestEntityTooLarge, gin.H{"error": services.ErrFileTooLarge.Error()})
		default:
			c.JSON(
				http.StatusInternalServerError,
				gin.H{"error": "failed to upload a file"},
			)
			afc.logger.Error("Upload() error", zap.Error(err))
		}
		return
	}

	c.JSON(http.StatusCreated, audiofile.ToResponseAudioFile(*af))
}

func (afc *AudioController) GetMyAudioFilesHandler(c *gin.Context) {
	u := middleware.CurrentUser(c)
	if u == nil {
		c.JSON(
			http.StatusUnauthorized,
			gin.H{"error": "not authenticated"},
		)
		return
	}

	files, err := afc.audioService.FindUserAudioFiles(c.Request.Context(), u.UUID)
	if err != nil {
		c.JSON(
			http.StatusInternalServerError,
			gin.H{"error": "failed to get files"},
		)
		afc.logger.Error("FindUserAudioFiles() error", zap.Error(err))
		return
	}

	c.JSON(http.StatusOK, audiofile.ResponseData{
		Data: audiofile.ToResponseAudioFiles(files),
	})
}

func (afc *AudioController) DownloadHandler(c *gin.Context) {
	u := middleware.CurrentUser(c)
	if u == nil {
		c.JSON(
			http.StatusUnauthorized,
			gin.H{"error": "not authenticated"},
		)
		return
	}

	ok, fileUUID := validator.IsUUID(c.Param("file_id"))
	if !ok {
		c.JSON(
			http.StatusBadRequest,
			gin.H{"error": "file_id must be a valid UUID"},
		)
		return
	}

	af, path, err := afc.audioService.Download(c.Request.Context(), fileUUID, u.UUID)
	if err != nil {
		if errors.Is(err, services.ErrFileGone) {
			c.JSON(http.StatusGone, gin.H{"error": services.ErrFileGone.Error()})
			return
		}
		c.JSON(
			http.StatusInternalServerError,
			gin.H{"error": "failed to download a file"},
		)
		afc.logger.Error("Download() error", zap.Error(err))
		return
	}
	if af == nil {
		c.JSON(
			http.StatusNotFound,
			gin.H{"error": "file not found"},
		)
		return
	}

	c.Header("Content-Type", af.ContentType)
	c.FileAttachment(path, af.OriginalFilename)
}

func (afc *AudioController) DeleteAudioFileHandler(c *gin.Context) {
	u := middleware.CurrentUser(c)
	if u == nil {
		c.JSON(
			http.StatusUnauthorized,
			gin.H{"error": "not authenticated"},
		)
		return
	}

	ok, fileUUID := validator.IsUUID(c.Param("file_id"))
	if !ok {
		c.JSON(
			http.StatusBadRequest,
			gin.H{"error": "file_id must be a valid UUID"},
		)
		return
	}

	deleted, err := afc.audioService.Delete(c.Request.Context(), fileUUID, u.UUID)
	if err != nil {
		c.JSON(
			http.StatusInternalServerError,
			gin.H{"error": "failed to delete a file"},
		)
		afc.logger.Error("Delete() error", zap.Error(err))
		return
	}
	if !deleted {
		c.JSON(
			http.StatusNotFound,
			gin.H{"error": "file not found"},
		)
		return
	}

	c.Status(http.StatusNoContent)
}
