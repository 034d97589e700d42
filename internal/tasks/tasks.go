package tasks

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"path"
	"strings"
	"time"

	"github.com/charmbracelet/log"

	"github.com/desertthunder/mvx/internal/media"
	"github.com/desertthunder/mvx/internal/models"
	"github.com/desertthunder/mvx/internal/repositories"
	"github.com/desertthunder/mvx/internal/services"
	"github.com/desertthunder/mvx/internal/shared"
)

// Engine orchestrates video generation against the repositories, media
// store and external tools.
type Engine struct {
	videos    *repositories.VideoRepository
	audio     *repositories.AudioRepository
	logs      *repositories.GenerationLogRepository
	activity  *repositories.ActivityRepository
	jobs      *repositories.JobRepository
	providers *repositories.ProviderRepository
	store     *media.Store
	composer  *services.Composer
	ai        *services.AIClient
	logger    *log.Logger
}

// NewEngine creates an Engine over the given database and collaborators.
func NewEngine(db *sql.DB, store *media.Store, composer *services.Composer, ai *services.AIClient, logger *log.Logger) *Engine {
	return &Engine{
		videos:    repositories.NewVideoRepository(db),
		audio:     repositories.NewAudioRepository(db),
		logs:      repositories.NewGenerationLogRepository(db),
		activity:  repositories.NewActivityRepository(db),
		jobs:      repositories.NewJobRepository(db),
		providers: repositories.NewProviderRepository(db),
		store:     store,
		composer:  composer,
		ai:        ai,
		logger:    logger,
	}
}

// sendProgress sends a progress update through the channel without blocking.
// Uses select with default to ensure progress reporting never blocks execution.
func (e *Engine) sendProgress(progress chan<- ProgressUpdate, update ProgressUpdate) {
	if progress == nil {
		return
	}
	select {
	case progress <- update:
	default:
	}
}

// recordLog persists a per-stage log row, logging instead of failing
// when the write itself errors.
func (e *Engine) recordLog(videoID, stage string, status models.LogStatus, message, detail string) {
	entry := models.NewGenerationLog(0, videoID, stage, status, message, detail)
	if err := e.logs.Create(entry); err != nil && e.logger != nil {
		e.logger.Warn("failed to record generation log", "video", videoID, "error", err)
	}
}

// recordActivity persists an audit row, logging instead of failing
// when the write itself errors.
func (e *Engine) recordActivity(actor, action, objectType, objectID, description string) {
	entry := models.NewActivityLog(0, actor, action, objectType, objectID, description)
	if err := e.activity.Create(entry); err != nil && e.logger != nil {
		e.logger.Warn("failed to record activity", "action", action, "error", err)
	}
}

// Generate composes a real MP4 for a video by muxing its audio track
// over the given background clip (a media-root-relative path).
//
// The status flow is processing (progress 10) to ready (100), or
// failed (0) with the error message and code persisted on the video.
// Handled generation failures are reported on the returned video, not
// as an error.
func (e *Engine) Generate(ctx context.Context, progress chan<- ProgressUpdate, videoID, backgroundRel string) (*models.Video, error) {
	return e.generate(ctx, progress, videoID, backgroundRel, false)
}

// GenerateLyrics composes a lyric video: the audio track's lyrics are
// drawn centered over the background clip, scaled to 1280x720. The
// background clip is required. Status flow matches Generate.
func (e *Engine) GenerateLyrics(ctx context.Context, progress chan<- ProgressUpdate, videoID, backgroundRel string) (*models.Video, error) {
	return e.generate(ctx, progress, videoID, backgroundRel, true)
}

func (e *Engine) generate(ctx context.Context, progress chan<- ProgressUpdate, videoID, backgroundRel string, lyricMode bool) (*models.Video, error) {
	video, err := e.videos.Get(videoID)
	if err != nil {
		return nil, err
	}

	if video.Status() == models.StatusProcessing {
		return nil, fmt.Errorf("%w: video %s", shared.ErrGenerationBusy, videoID)
	}

	started := time.Now()
	if e.logger != nil {
		e.logger.Info("starting video generation", "video", videoID)
	}

	video.SetStatus(models.StatusProcessing)
	video.SetGenerationProgress(10)
	video.SetErrorMessage("")
	video.SetErrorCode("")
	video.SetLastError("", nil)
	if err := e.videos.Update(video); err != nil {
		return nil, err
	}

	var entries []string
	logStep := func(message string) {
		if e.logger != nil {
			e.logger.Info(message)
		}
		entries = append(entries, message)
	}

	fail := func(phase Phase, step int, code, message string) (*models.Video, error) {
		logStep(fmt.Sprintf("Generation failed: %s", message))
		video.SetStatus(models.StatusFailed)
		video.SetErrorMessage(message)
		video.SetErrorCode(code)
		now := time.Now()
		video.SetLastError(message, &now)
		video.SetGenerationProgress(0)
		video.AppendGenerationLog(strings.Join(entries, "\n"))
		if err := e.videos.Update(video); err != nil {
			return nil, err
		}
		e.recordLog(videoID, phase.String(), models.LogFailed, message, code)
		e.sendProgress(progress, failureUpdate(phase, step, 4, message))
		return video, nil
	}

	e.sendProgress(progress, validateInputsUpdate(1, 4))
	e.recordLog(videoID, ValidateInputs.String(), models.LogStarted, "Validating generation inputs", "")

	track, err := e.audio.Get(video.AudioTrackID())
	if err != nil {
		return fail(ValidateInputs, 1, services.CodeAudioMissing, "Audio track is missing for this video.")
	}

	audioRel := track.AudioFile()
	if audioRel == "" {
		return fail(ValidateInputs, 1, services.CodeAudioMissing, "Audio file is missing for this video.")
	}
	if !e.store.Exists(audioRel) {
		return fail(ValidateInputs, 1, services.CodeAudioMissing, "Audio file not found on disk.")
	}

	if backgroundRel == "" {
		if lyricMode {
			return fail(ValidateInputs, 1, services.CodeBackgroundMissing, "Background video is required for lyric generation.")
		}
		return fail(ValidateInputs, 1, services.CodeBackgroundMissing, "Background video is missing for this video.")
	}
	if !e.store.Exists(backgroundRel) {
		return fail(ValidateInputs, 1, services.CodeBackgroundMissing, "Background video file not found on disk.")
	}

	audioPath, err := e.store.Path(audioRel)
	if err != nil {
		return fail(ValidateInputs, 1, services.CodeAudioMissing, err.Error())
	}
	backgroundPath, err := e.store.Path(backgroundRel)
	if err != nil {
		return fail(ValidateInputs, 1, services.CodeBackgroundMissing, err.Error())
	}

	logStep(fmt.Sprintf("Loading background video from %s", backgroundPath))
	logStep(fmt.Sprintf("Loading audio from %s", audioPath))

	e.sendProgress(progress, probeMediaUpdate(2, 4))

	backgroundProbe, err := e.composer.Probe(ctx, backgroundPath)
	if err != nil {
		return fail(ProbeMedia, 2, errorCode(err), err.Error())
	}

	audioProbe, err := e.composer.Probe(ctx, audioPath)
	if err != nil {
		return fail(ProbeMedia, 2, errorCode(err), err.Error())
	}

	duration := min(backgroundProbe.Duration, audioProbe.Duration)
	if duration <= 0 {
		return fail(ProbeMedia, 2, services.CodeDurationInvalid, "Unable to determine duration for composition.")
	}

	e.sendProgress(progress, composeUpdate(3, 4, video.Title()))

	outputRel := path.Join(media.DirGenerated, fmt.Sprintf("generated_%s.mp4", video.ID()))
	outputPath, err := e.store.Path(outputRel)
	if err != nil {
		return fail(Compose, 3, services.CodeOutputMissing, err.Error())
	}

	if lyricMode {
		logStep(fmt.Sprintf("Writing lyric video to %s", outputPath))
		err = e.composer.MuxLyrics(ctx, backgroundPath, audioPath, track.Lyrics(), outputPath, duration)
	} else {
		logStep(fmt.Sprintf("Writing composed video to %s", outputPath))
		err = e.composer.Mux(ctx, backgroundPath, audioPath, outputPath, duration)
	}
	if err != nil {
		return fail(Compose, 3, errorCode(err), err.Error())
	}

	if !e.store.Exists(outputRel) {
		if lyricMode {
			return fail(Compose, 3, services.CodeOutputMissing, "Lyric video file was not created.")
		}
		return fail(Compose, 3, services.CodeOutputMissing, "Generated video file was not created.")
	}

	e.sendProgress(progress, finalizeUpdate(4, 4))

	size, err := e.store.Stat(outputRel)
	if err != nil {
		return fail(Finalize, 4, services.CodeOutputMissing, err.Error())
	}

	resolution, aspect := backgroundProbe.Resolution(), backgroundProbe.AspectRatio()
	if lyricMode {
		resolution, aspect = "1280x720", "16:9"
	}

	video.SetVideoFile(outputRel)
	video.SetFileSizeBytes(size)
	video.SetDurationSeconds(int(duration))
	video.SetResolution(resolution)
	video.SetAspectRatio(aspect)
	video.SetStatus(models.StatusReady)
	video.SetGenerationProgress(100)
	video.SetGenerationTimeMS(int(time.Since(started).Milliseconds()))
	video.SetErrorMessage("")
	video.SetErrorCode("")
	video.SetLastError("", nil)

	logStep("Video generation succeeded")
	video.AppendGenerationLog(strings.Join(entries, "\n"))

	if err := e.videos.Update(video); err != nil {
		return nil, err
	}

	e.recordLog(videoID, Compose.String(), models.LogSuccess, "Video generation succeeded", "")
	e.recordActivity("engine", "generate", "video", videoID, fmt.Sprintf("Generated video %q", video.Title()))

	return video, nil
}

// RunJob executes a provider-backed generation job: sends the request,
// downloads the result into the media store and attaches a ready video.
//
// Handled provider failures are reported on the returned job, not as
// an error.
func (e *Engine) RunJob(ctx context.Context, progress chan<- ProgressUpdate, jobID string) (*models.GenerationJob, error) {
	job, err := e.jobs.Get(jobID)
	if err != nil {
		return nil, err
	}

	failJob := func(message string) (*models.GenerationJob, error) {
		job.SetStatus(models.JobFailed)
		job.SetErrorMessage(message)
		if err := e.jobs.Update(job); err != nil {
			return nil, err
		}
		return job, nil
	}

	provider, err := e.providers.Get(job.ProviderID())
	if err != nil {
		return failJob(err.Error())
	}

	if !provider.IsActive() {
		return failJob("Selected provider is inactive.")
	}

	job.SetStatus(models.JobRunning)
	job.SetErrorMessage("")
	if err := e.jobs.Update(job); err != nil {
		return nil, err
	}

	track, err := e.audio.Get(job.AudioTrackID())
	if err != nil {
		return failJob(err.Error())
	}

	audioPath := ""
	if track.AudioFile() != "" {
		if audioPath, err = e.store.Path(track.AudioFile()); err != nil {
			return failJob(err.Error())
		}
	}

	backgroundPath := ""
	if job.BackgroundVideoID() != "" {
		background, err := e.videos.Get(job.BackgroundVideoID())
		if err != nil {
			return failJob(err.Error())
		}
		if background.VideoFile() != "" {
			if backgroundPath, err = e.store.Path(background.VideoFile()); err != nil {
				return failJob(err.Error())
			}
		}
	}

	e.sendProgress(progress, providerRequestUpdate(1, 3, provider.Name()))

	result, err := e.ai.Generate(ctx, provider, services.GenerateRequest{
		Prompt:         job.Prompt(),
		AudioPath:      audioPath,
		BackgroundPath: backgroundPath,
	})
	if result != nil {
		job.SetRequestPayload(result.RequestPayload)
		job.SetResponseRaw(result.ResponseRaw)
	}
	if err != nil {
		return failJob(err.Error())
	}

	e.sendProgress(progress, providerDownloadUpdate(2, 3))

	filename := fmt.Sprintf("ai_video_job_%d.mp4", job.Sequence())
	rel, size, err := e.ai.Download(ctx, result.VideoURL, e.store, filename)
	if err != nil {
		return failJob(err.Error())
	}

	video, err := e.attachJobVideo(job, provider, rel, size)
	if err != nil {
		return failJob(err.Error())
	}

	job.SetVideoID(video.ID())
	job.SetStatus(models.JobSuccess)
	job.SetErrorMessage("")
	if err := e.jobs.Update(job); err != nil {
		return nil, err
	}

	e.sendProgress(progress, finalizeUpdate(3, 3))
	e.recordActivity("engine", "ai_generate", "video", video.ID(),
		fmt.Sprintf("Generated video via provider %q", provider.Name()))

	return job, nil
}

// attachJobVideo links the downloaded provider output to the job's
// video, creating a new ready video when the job has none.
func (e *Engine) attachJobVideo(job *models.GenerationJob, provider *models.Provider, rel string, size int64) (*models.Video, error) {
	if job.VideoID() != "" {
		video, err := e.videos.Get(job.VideoID())
		if err != nil {
			return nil, err
		}
		video.SetVideoFile(rel)
		video.SetFileSizeBytes(size)
		video.SetStatus(models.StatusReady)
		video.SetErrorMessage("")
		video.SetPromptUsed(job.Prompt())
		video.SetGenerationProgress(100)
		if err := e.videos.Update(video); err != nil {
			return nil, err
		}
		return video, nil
	}

	video := models.NewVideo(0, models.VideoData{
		AudioTrackID: job.AudioTrackID(),
		Title:        fmt.Sprintf("AI Video #%d - %s", job.Sequence(), provider.Name()),
		VideoFile:    rel,
		Status:       models.StatusReady,
		PromptUsed:   job.Prompt(),
	})
	video.SetFileSizeBytes(size)
	video.SetGenerationProgress(100)

	if err := e.videos.Create(video); err != nil {
		return nil, err
	}
	return video, nil
}

// errorCode extracts the machine-readable code from a generation
// error, defaulting to the generic ffmpeg failure code.
func errorCode(err error) string {
	var genErr *services.GenerationError
	if errors.As(err, &genErr) && genErr.Code != "" {
		return genErr.Code
	}
	return services.CodeFFmpegFailed
}
