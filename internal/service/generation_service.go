package service

import (
	"context"
	"encoding/hex"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"stageai/api/internal/gen"
	"stageai/api/internal/ids"
	"stageai/api/internal/models"
	"stageai/api/internal/repository"
	"stageai/api/internal/storage"
)

// GenerationService dispatches prompts to the gateway, stores image
// artifacts, and records every successful generation in the history
// ledger. History writes are best-effort: a failed append is logged and
// the generation result still goes back to the caller.
type GenerationService struct {
	text      gen.TextCompleter
	pipeline  *gen.ImagePipeline
	history   repository.HistoryStore
	artifacts storage.ArtifactStore
	log       zerolog.Logger
}

func NewGenerationService(
	text gen.TextCompleter,
	pipeline *gen.ImagePipeline,
	history repository.HistoryStore,
	artifacts storage.ArtifactStore,
	log zerolog.Logger,
) *GenerationService {
	return &GenerationService{
		text:      text,
		pipeline:  pipeline,
		history:   history,
		artifacts: artifacts,
		log:       log,
	}
}

func (s *GenerationService) GenerateText(ctx context.Context, username, prompt string) (string, error) {
	reply, err := s.text.Complete(ctx, prompt)
	if err != nil {
		return "", err
	}

	s.record(ctx, username, models.KindText, prompt, reply)
	return reply, nil
}

// GenerateImage synthesizes an image, stores it under a fresh random
// filename and returns the fetchable path.
func (s *GenerationService) GenerateImage(ctx context.Context, username, prompt string) (string, error) {
	data, err := s.pipeline.Synthesize(ctx, prompt)
	if err != nil {
		return "", err
	}

	filename := newArtifactFilename()
	if err := s.artifacts.Save(ctx, filename, data); err != nil {
		return "", fmt.Errorf("%w: store artifact: %v", gen.ErrGeneration, err)
	}

	imageURL := "/image/" + filename
	s.record(ctx, username, models.KindImage, prompt, imageURL)
	return imageURL, nil
}

func (s *GenerationService) History(ctx context.Context, username string) ([]models.HistoryEntry, error) {
	return s.history.ListByUser(ctx, username)
}

func (s *GenerationService) record(ctx context.Context, username string, kind models.GenerationKind, prompt, result string) {
	entry := models.HistoryEntry{
		ID:        ids.New(),
		Username:  username,
		Kind:      kind,
		Prompt:    prompt,
		Result:    result,
		CreatedAt: time.Now().UTC(),
	}
	if err := s.history.Append(ctx, entry); err != nil {
		s.log.Error().Err(err).
			Str("username", username).
			Str("kind", string(kind)).
			Msg("history append failed")
	}
}

// newArtifactFilename returns a random 128-bit hex name. Collisions are
// ruled out by randomness, not by a sequence.
func newArtifactFilename() string {
	u := uuid.New()
	return hex.EncodeToString(u[:]) + ".png"
}
