package resumes

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"

	"resumind-backend/internal/capability"
	"resumind-backend/internal/convert"
	"resumind-backend/internal/extract"
	"resumind-backend/internal/llm"
	"resumind-backend/internal/shared/metrics"
	"resumind-backend/internal/shared/storage/object"
	"resumind-backend/internal/shared/telemetry"
)

// Service runs the analysis pipeline: upload, classify, convert, persist,
// infer, validate, overwrite. The pending record written before inference is
// the durability checkpoint; everything after it mutates that same key.
type Service struct {
	records    *RecordStore
	objects    object.ObjectStore
	converter  convert.Converter
	llm        llm.Client
	classifier capability.Classifier

	// conversionFatal makes a failed preview render abort the submission
	// instead of degrading to an imageless record.
	conversionFatal bool

	now   func() time.Time
	newID func() string
}

// NewService wires the pipeline collaborators.
func NewService(records *RecordStore, objects object.ObjectStore, converter convert.Converter, client llm.Client, classifier capability.Classifier, conversionFatal bool) *Service {
	return &Service{
		records:         records,
		objects:         objects,
		converter:       converter,
		llm:             client,
		classifier:      classifier,
		conversionFatal: conversionFatal,
		now:             time.Now,
		newID:           uuid.NewString,
	}
}

// AnalyzeInput is one resume submission.
type AnalyzeInput struct {
	UserID         string
	FileName       string
	File           io.Reader
	CompanyName    string
	JobTitle       string
	JobDescription string
	Signals        capability.Signals
}

// Analyze runs the full pipeline for one submission. On inference or
// validation failure the returned record still exists in the store with
// feedback pending; the caller gets both the record and the stage error.
func (s *Service) Analyze(ctx context.Context, in AnalyzeInput) (ResumeRecord, error) {
	started := s.now()
	metrics.IncAnalysisStarted()

	telemetry.Info("resume.status", map[string]any{"status": "Uploading the file...", "user_id": in.UserID})

	data, err := io.ReadAll(in.File)
	if err != nil {
		metrics.IncAnalysisFailed()
		return ResumeRecord{}, fmt.Errorf("%w: read upload: %v", ErrUploadFailed, err)
	}

	resumeKey, _, mimeType, err := s.objects.Save(ctx, in.UserID, in.FileName, bytes.NewReader(data))
	if err != nil {
		metrics.IncAnalysisFailed()
		return ResumeRecord{}, fmt.Errorf("%w: %v", ErrUploadFailed, err)
	}

	// Capability is decided exactly once per submission.
	tier := s.classifier.Classify(in.Signals)

	imageKey := ""
	if tier == capability.FullFidelity {
		telemetry.Info("resume.status", map[string]any{"status": "Converting to image...", "user_id": in.UserID})
		imageKey, err = s.renderPreview(ctx, resumeKey, data)
		if err != nil {
			metrics.IncConversionFailed()
			if s.conversionFatal {
				metrics.IncAnalysisFailed()
				telemetry.Error("resume.status", map[string]any{"status": "Error: Failed to convert PDF to image", "error": err.Error()})
				return ResumeRecord{}, fmt.Errorf("%w: %v", ErrConversionFailed, err)
			}
			telemetry.Warn("resume.convert_degraded", map[string]any{"resume_key": resumeKey, "error": err.Error()})
			imageKey = ""
		}
	} else {
		metrics.IncConversionSkipped()
		telemetry.Info("resume.convert_skipped", map[string]any{"resume_key": resumeKey, "capability": string(tier)})
	}

	telemetry.Info("resume.status", map[string]any{"status": "Preparing data...", "user_id": in.UserID})

	record := ResumeRecord{
		ID:             s.newID(),
		UserID:         in.UserID,
		ResumePath:     resumeKey,
		ImagePath:      imageKey,
		CompanyName:    in.CompanyName,
		JobTitle:       in.JobTitle,
		JobDescription: in.JobDescription,
		CreatedAt:      s.now().UTC(),
	}
	if err := s.checkpoint(ctx, record); err != nil {
		metrics.IncAnalysisFailed()
		return ResumeRecord{}, err
	}

	telemetry.Info("resume.status", map[string]any{"status": "Analyzing...", "resume_id": record.ID})

	raw, err := s.requestFeedback(ctx, record, mimeType, in.FileName)
	if err != nil {
		metrics.IncAnalysisFailed()
		telemetry.Error("resume.status", map[string]any{"status": "Error: Failed to analyze resume", "resume_id": record.ID, "error": err.Error()})
		return record, fmt.Errorf("%w: %v", ErrInferenceFailed, err)
	}

	report, err := ParseReport(raw)
	if err != nil {
		metrics.IncAnalysisFailed()
		telemetry.Error("resume.status", map[string]any{"status": "Error: Failed to analyze resume", "resume_id": record.ID, "error": err.Error()})
		return record, err
	}

	record.Feedback = Populated(report)
	if err := s.records.Put(ctx, record); err != nil {
		metrics.IncAnalysisFailed()
		return record, fmt.Errorf("persist feedback for %s: %w", record.ID, err)
	}

	metrics.IncAnalysisCompleted()
	metrics.ObserveAnalysisDurationMs(float64(s.now().Sub(started).Milliseconds()))
	telemetry.Info("resume.status", map[string]any{"status": "Analysis complete", "resume_id": record.ID, "overall_score": report.OverallScore})
	return record, nil
}

// checkpoint persists the pending record and its listing index entry. The
// pipeline must not reach inference until this write has completed.
func (s *Service) checkpoint(ctx context.Context, record ResumeRecord) error {
	if err := s.records.Put(ctx, record); err != nil {
		return fmt.Errorf("persist pending record: %w", err)
	}
	if err := s.records.Index(ctx, record.UserID, record.ID); err != nil {
		return fmt.Errorf("index record %s: %w", record.ID, err)
	}
	return nil
}

func (s *Service) renderPreview(ctx context.Context, resumeKey string, document []byte) (string, error) {
	image, err := s.converter.Convert(ctx, document)
	if err != nil {
		return "", err
	}
	imageKey := resumeKey + ".preview" + previewExt(image.ContentType)
	if _, err := s.objects.SaveWithKey(ctx, imageKey, image.ContentType, bytes.NewReader(image.Data)); err != nil {
		return "", fmt.Errorf("upload preview: %w", err)
	}
	return imageKey, nil
}

func previewExt(contentType string) string {
	switch {
	case strings.HasPrefix(contentType, "image/png"):
		return ".png"
	case strings.HasPrefix(contentType, "image/jpeg"):
		return ".jpg"
	case strings.HasPrefix(contentType, "image/webp"):
		return ".webp"
	default:
		return ".img"
	}
}

func (s *Service) requestFeedback(ctx context.Context, record ResumeRecord, mimeType, fileName string) (string, error) {
	text, err := extract.Text(ctx, s.objects, record.ResumePath, mimeType, fileName)
	if err != nil {
		return "", err
	}

	instructions := llm.BuildInstructions(record.JobTitle, record.JobDescription)
	resp, err := s.llm.Feedback(ctx, llm.FeedbackInput{
		ResumeText:   text,
		Instructions: instructions,
	})
	if err != nil {
		return "", err
	}
	return resp.Text()
}

// Get loads one record.
func (s *Service) Get(ctx context.Context, id string) (ResumeRecord, error) {
	return s.records.Get(ctx, id)
}

// List returns the user's records, newest first.
func (s *Service) List(ctx context.Context, userID string) ([]ResumeRecord, error) {
	return s.records.ListByUser(ctx, userID)
}

// LoadedResume is a record together with its stored artifacts.
type LoadedResume struct {
	Record       ResumeRecord
	Document     []byte
	DocumentType string
	Image        []byte
	ImageType    string
}

// Load retrieves a record and its blobs. A record whose source document is
// gone is unusable and reported as not found; a missing preview image only
// degrades the result.
func (s *Service) Load(ctx context.Context, id string) (LoadedResume, error) {
	record, err := s.records.Get(ctx, id)
	if err != nil {
		return LoadedResume{}, err
	}

	document, documentType, err := s.readBlob(ctx, record.ResumePath)
	if err != nil {
		telemetry.Error("resume.load", map[string]any{"resume_id": id, "key": record.ResumePath, "error": err.Error()})
		return LoadedResume{}, fmt.Errorf("%w: source document unreadable", ErrNotFound)
	}

	loaded := LoadedResume{Record: record, Document: document, DocumentType: documentType}
	if record.ImagePath != "" {
		image, imageType, err := s.readBlob(ctx, record.ImagePath)
		if err != nil {
			telemetry.Warn("resume.load", map[string]any{"resume_id": id, "key": record.ImagePath, "error": err.Error()})
		} else {
			loaded.Image = image
			loaded.ImageType = imageType
		}
	}
	return loaded, nil
}

// OpenImage returns the preview image blob, or ErrNoPreview when the record
// was stored without one.
func (s *Service) OpenImage(ctx context.Context, id string) ([]byte, string, error) {
	record, err := s.records.Get(ctx, id)
	if err != nil {
		return nil, "", err
	}
	if record.ImagePath == "" {
		return nil, "", ErrNoPreview
	}
	return s.readBlob(ctx, record.ImagePath)
}

// OpenDocument returns the source resume blob.
func (s *Service) OpenDocument(ctx context.Context, id string) ([]byte, string, error) {
	record, err := s.records.Get(ctx, id)
	if err != nil {
		return nil, "", err
	}
	data, contentType, err := s.readBlob(ctx, record.ResumePath)
	if err != nil {
		return nil, "", fmt.Errorf("%w: source document unreadable", ErrNotFound)
	}
	return data, contentType, nil
}

func (s *Service) readBlob(ctx context.Context, key string) ([]byte, string, error) {
	body, err := s.objects.Open(ctx, key)
	if err != nil {
		return nil, "", err
	}
	defer body.Close()
	data, err := io.ReadAll(body)
	if err != nil {
		return nil, "", err
	}
	return data, http.DetectContentType(data), nil
}
