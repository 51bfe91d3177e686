// Package generation orchestrates one tailoring request end to end: analyze
// the job description, resolve the candidate profile, tailor, render, upload,
// record, and deliver the document.
package generation

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"resumebot/internal/artifacts"
	"resumebot/internal/conversation"
	"resumebot/internal/jobdesc"
	"resumebot/internal/messaging"
	"resumebot/internal/profiles"
	"resumebot/internal/shared/util"
	"resumebot/internal/storage"
	"resumebot/resume/model"
	"resumebot/resume/render"
	"resumebot/resume/tailor"
)

// Renderer produces the final artifact for a tailored document.
type Renderer interface {
	Render(ctx context.Context, doc model.ResumeDocument) (render.Artifact, error)
}

// Uploader stores the artifact and always yields a deliverable URL.
type Uploader interface {
	Upload(ctx context.Context, artifact render.Artifact, key string, maxAttempts int) storage.UploadResult
}

// Recorder persists artifact metadata for history and retention.
type Recorder interface {
	Record(ctx context.Context, artifact render.Artifact, doc model.ResumeDocument, ownerID, storageKey, url string) (string, error)
}

// Notifier flags identities that tried to tailor without a stored profile, so
// someone can follow up. Optional.
type Notifier interface {
	NotifyUnregistered(ctx context.Context, email, phone string)
}

const (
	replyNotRegistered = "I couldn't find a profile for that email. " +
		"Please register and complete your profile first, then try again."
	replyRenderFailed = "Sorry, I couldn't produce your resume this time. " +
		"Please try again in a few minutes."
	replyDelivered       = "Done! Your tailored resume is ready above. Good luck!"
	replyDeliveryFailed  = "Your resume is ready but I couldn't deliver the file. Please try again shortly."
	documentCaption      = "Your tailored resume"
	defaultUploadRetries = 3
)

// Service runs the tailoring pipeline for collected conversation inputs.
type Service struct {
	Analyzer      jobdesc.Analyzer
	Profiles      profiles.Provider
	Tailor        *tailor.Engine
	Renderer      Renderer
	Uploader      Uploader
	Recorder      Recorder
	Gateway       messaging.Gateway
	Notifier      Notifier
	UploadRetries int
	Log           *zap.Logger
}

// NewService constructs a Service with default retry settings.
func NewService(
	analyzer jobdesc.Analyzer,
	provider profiles.Provider,
	engine *tailor.Engine,
	renderer Renderer,
	uploader Uploader,
	recorder Recorder,
	gateway messaging.Gateway,
	log *zap.Logger,
) *Service {
	return &Service{
		Analyzer:      analyzer,
		Profiles:      provider,
		Tailor:        engine,
		Renderer:      renderer,
		Uploader:      uploader,
		Recorder:      recorder,
		Gateway:       gateway,
		UploadRetries: defaultUploadRetries,
		Log:           log,
	}
}

// Run executes the pipeline. It never returns an error: every failure mode
// maps to a user-facing reply, and internal detail stays in the logs.
func (s *Service) Run(ctx context.Context, req conversation.PipelineRequest) conversation.PipelineResult {
	started := time.Now()

	profile, err := s.Profiles.FindByIdentity(ctx, req.Email, req.Phone)
	if err != nil {
		if errors.Is(err, profiles.ErrNotFound) {
			s.Log.Info("tailoring request from unregistered identity",
				zap.String("email", req.Email))
			if s.Notifier != nil {
				s.Notifier.NotifyUnregistered(ctx, req.Email, req.Phone)
			}
			return conversation.PipelineResult{Success: false, Reply: replyNotRegistered}
		}
		s.Log.Error("profile lookup failed", zap.Error(err))
		return conversation.PipelineResult{Success: false, Reply: replyRenderFailed}
	}

	requirements := s.Analyzer.Analyze(ctx, req.JobDescription)
	doc := s.Tailor.Tailor(profile.Normalize(), requirements)

	artifact, err := s.Renderer.Render(ctx, doc)
	if err != nil {
		s.Log.Error("rendering exhausted every strategy",
			zap.String("phone", req.Phone),
			zap.Error(err))
		return conversation.PipelineResult{Success: false, Reply: replyRenderFailed}
	}

	ownerID := util.HashOwnerKey(ownerIdentity(req))
	key := storageKey(ownerID)
	upload := s.Uploader.Upload(ctx, artifact, key, s.uploadRetries())

	if _, err := s.Recorder.Record(ctx, artifact, doc, ownerID, key, upload.URL); err != nil {
		// History is best-effort; the user still gets their resume.
		s.Log.Warn("artifact record failed", zap.Error(err))
	}

	if err := s.Gateway.SendDocument(ctx, req.Phone, upload.URL, documentCaption); err != nil {
		s.Log.Error("document delivery failed",
			zap.String("phone", req.Phone),
			zap.Error(err))
		return conversation.PipelineResult{Success: false, Reply: replyDeliveryFailed}
	}

	s.Log.Info("resume delivered",
		zap.String("owner_id", ownerID),
		zap.Bool("durable_upload", upload.Success),
		zap.Duration("elapsed", time.Since(started)))
	return conversation.PipelineResult{Success: true, Reply: replyDelivered}
}

func (s *Service) uploadRetries() int {
	if s.UploadRetries > 0 {
		return s.UploadRetries
	}
	return defaultUploadRetries
}

func storageKey(ownerID string) string {
	return fmt.Sprintf("resumes/%s/%s.pdf", ownerID, uuid.NewString())
}

// ownerIdentity picks the stable identity for history keys: email when the
// user supplied one, otherwise the phone key.
func ownerIdentity(req conversation.PipelineRequest) string {
	if req.Email != "" {
		return req.Email
	}
	return req.Phone
}

var (
	_ conversation.Pipeline = (*Service)(nil)
	_ Renderer              = (*render.Pipeline)(nil)
	_ Uploader              = (*storage.Uploader)(nil)
	_ Recorder              = (*artifacts.Recorder)(nil)
)
