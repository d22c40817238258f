package service

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"stageai/api/internal/gen"
	"stageai/api/internal/models"
	"stageai/api/internal/repository"
	"stageai/api/internal/storage"
)

type fakeCompleter struct {
	reply string
	err   error
}

func (f *fakeCompleter) Complete(_ context.Context, prompt string) (string, error) {
	if f.err != nil {
		return "", f.err
	}
	return f.reply, nil
}

type echoBackend struct{}

func (echoBackend) Render(_ context.Context, prompt string) ([]byte, error) {
	return []byte("png:" + prompt), nil
}

type failingHistory struct{}

func (failingHistory) Append(context.Context, models.HistoryEntry) error {
	return errors.New("disk full")
}

func (failingHistory) ListByUser(context.Context, string) ([]models.HistoryEntry, error) {
	return nil, errors.New("disk full")
}

func newGenerationService(t *testing.T, text gen.TextCompleter, history repository.HistoryStore) *GenerationService {
	t.Helper()
	pipeline := gen.NewImagePipeline(func() (gen.Backend, error) {
		return echoBackend{}, nil
	}, zerolog.Nop())
	artifacts, err := storage.NewLocalStore(t.TempDir())
	require.NoError(t, err)
	return NewGenerationService(text, pipeline, history, artifacts, zerolog.Nop())
}

func TestGenerateTextRecordsHistory(t *testing.T) {
	ctx := context.Background()
	history := repository.NewMemoryHistoryStore()
	svc := newGenerationService(t, &fakeCompleter{reply: "bonjour"}, history)

	reply, err := svc.GenerateText(ctx, "alice", "hello")
	require.NoError(t, err)
	assert.Equal(t, "bonjour", reply)

	entries, err := svc.History(ctx, "alice")
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, models.KindText, entries[0].Kind)
	assert.Equal(t, "hello", entries[0].Prompt)
	assert.Equal(t, "bonjour", entries[0].Result)
	assert.False(t, entries[0].CreatedAt.IsZero())
}

func TestGenerateTextUpstreamFailureSkipsHistory(t *testing.T) {
	ctx := context.Background()
	history := repository.NewMemoryHistoryStore()
	svc := newGenerationService(t, &fakeCompleter{err: gen.ErrUpstream}, history)

	_, err := svc.GenerateText(ctx, "alice", "hello")
	assert.ErrorIs(t, err, gen.ErrUpstream)

	entries, err := history.ListByUser(ctx, "alice")
	require.NoError(t, err)
	assert.Empty(t, entries, "failed generations must not be recorded")
}

func TestGenerateImageStoresArtifactAndRecords(t *testing.T) {
	ctx := context.Background()
	history := repository.NewMemoryHistoryStore()
	svc := newGenerationService(t, &fakeCompleter{}, history)

	imageURL, err := svc.GenerateImage(ctx, models.AnonymousUser, "a cat")
	require.NoError(t, err)
	require.True(t, strings.HasPrefix(imageURL, "/image/"), imageURL)
	assert.Regexp(t, `^/image/[0-9a-f]{32}\.png$`, imageURL)

	entries, err := history.ListByUser(ctx, models.AnonymousUser)
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, models.KindImage, entries[0].Kind)
	assert.Equal(t, imageURL, entries[0].Result)
}

func TestGenerateImageFilenamesNeverRepeat(t *testing.T) {
	ctx := context.Background()
	svc := newGenerationService(t, &fakeCompleter{}, repository.NewMemoryHistoryStore())

	seen := make(map[string]struct{})
	for i := 0; i < 20; i++ {
		imageURL, err := svc.GenerateImage(ctx, "alice", "a cat")
		require.NoError(t, err)
		_, dup := seen[imageURL]
		require.False(t, dup, "artifact name reused: %s", imageURL)
		seen[imageURL] = struct{}{}
	}
}

func TestHistoryFailureDoesNotFailGeneration(t *testing.T) {
	ctx := context.Background()
	svc := newGenerationService(t, &fakeCompleter{reply: "ok"}, failingHistory{})

	reply, err := svc.GenerateText(ctx, "alice", "hello")
	require.NoError(t, err, "history append is best-effort")
	assert.Equal(t, "ok", reply)

	imageURL, err := svc.GenerateImage(ctx, "alice", "a cat")
	require.NoError(t, err)
	assert.NotEmpty(t, imageURL)
}

func TestGenerateImageEmptyPrompt(t *testing.T) {
	svc := newGenerationService(t, &fakeCompleter{}, repository.NewMemoryHistoryStore())

	_, err := svc.GenerateImage(context.Background(), "alice", "")
	assert.ErrorIs(t, err, gen.ErrEmptyPrompt)
}
