package service

import (
	"context"
	"strconv"

	"lectoquiz/internal/cache"
	"lectoquiz/internal/config"
	"lectoquiz/internal/domain"
	"lectoquiz/internal/dto"
	"lectoquiz/internal/logger"
	"lectoquiz/internal/util"

	"go.uber.org/zap"
)

// Metadata hash fields parked alongside a pending upload.
const (
	uploadFieldFileName      = "file_name"
	uploadFieldTheme         = "theme"
	uploadFieldLectureNumber = "lecture_number"
	uploadFieldNumQuestions  = "num_questions"
	uploadFieldDifficulty    = "difficulty"
)

// UploadService issues presigned upload URLs for lecture documents and parks
// the generation parameters until the text-extraction pipeline reports back.
type UploadService interface {
	IssueUploadURL(ctx context.Context, req *dto.UploadRequest) (*dto.UploadResponse, error)

	// PendingUpload returns the parked generation parameters for objectKey,
	// or (nil, nil) when none are known (expired or never issued).
	PendingUpload(ctx context.Context, objectKey string) (*dto.UploadRequest, error)
}

type uploadService struct {
	issuer domain.UploadURLIssuer
	cache  domain.Cache
	cfg    *config.Config
}

// NewUploadService creates a new instance of uploadService.
func NewUploadService(issuer domain.UploadURLIssuer, cacheAdapter domain.Cache, cfg *config.Config) UploadService {
	return &uploadService{issuer: issuer, cache: cacheAdapter, cfg: cfg}
}

// IssueUploadURL implements UploadService. The object key is prefixed with a
// fresh ULID so concurrent uploads of the same file name never collide.
func (s *uploadService) IssueUploadURL(ctx context.Context, req *dto.UploadRequest) (*dto.UploadResponse, error) {
	objectKey := s.cfg.Storage.UploadPrefix + util.NewULID() + "-" + req.FileName

	uploadURL, err := s.issuer.IssueUploadURL(ctx, objectKey)
	if err != nil {
		return nil, domain.NewInternalError("Failed to issue upload URL", err)
	}

	metaKey := uploadMetaKey(objectKey)
	fields := map[string]string{
		uploadFieldFileName:      req.FileName,
		uploadFieldTheme:         req.Theme,
		uploadFieldLectureNumber: strconv.Itoa(req.LectureNumber),
		uploadFieldNumQuestions:  strconv.Itoa(req.NumQuestions),
		uploadFieldDifficulty:    req.Difficulty,
	}
	for field, value := range fields {
		if err := s.cache.HSet(ctx, metaKey, field, value); err != nil {
			return nil, domain.NewInternalError("Failed to park upload metadata", err)
		}
	}
	// Parked metadata outlives the presigned URL so a slow extraction
	// pipeline can still find it.
	if err := s.cache.Expire(ctx, metaKey, 2*s.cfg.Storage.UploadExpiry); err != nil {
		return nil, domain.NewInternalError("Failed to set upload metadata expiry", err)
	}

	logger.Get().Info("Issued upload URL",
		zap.String("object_key", objectKey),
		zap.String("theme", req.Theme),
		zap.Int("lecture_number", req.LectureNumber))

	return &dto.UploadResponse{
		UploadURL: uploadURL,
		ObjectKey: objectKey,
		ExpiresIn: int(s.cfg.Storage.UploadExpiry.Seconds()),
	}, nil
}

// PendingUpload implements UploadService.
func (s *uploadService) PendingUpload(ctx context.Context, objectKey string) (*dto.UploadRequest, error) {
	fields, err := s.cache.HGetAll(ctx, uploadMetaKey(objectKey))
	if err != nil {
		if err == domain.ErrCacheMiss {
			return nil, nil
		}
		return nil, domain.NewInternalError("Failed to read upload metadata", err)
	}
	if len(fields) == 0 {
		return nil, nil
	}

	lectureNumber, _ := strconv.Atoi(fields[uploadFieldLectureNumber])
	numQuestions, _ := strconv.Atoi(fields[uploadFieldNumQuestions])

	return &dto.UploadRequest{
		FileName:      fields[uploadFieldFileName],
		Theme:         fields[uploadFieldTheme],
		LectureNumber: lectureNumber,
		NumQuestions:  numQuestions,
		Difficulty:    fields[uploadFieldDifficulty],
	}, nil
}

func uploadMetaKey(objectKey string) string {
	return cache.GenerateCacheKey("upload_service", "pending", objectKey)
}
